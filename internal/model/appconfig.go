package model

// AppConfig holds application-wide preferences and default planner
// settings.
type AppConfig struct {
	// Default planner config applied to new projects.
	DefaultAlgorithm       string  `json:"default_algorithm"`
	DefaultPopulationSize  int     `json:"default_population_size"`
	DefaultGenerations     int     `json:"default_generations"`
	DefaultMutationRate    float64 `json:"default_mutation_rate"`
	DefaultTimeoutSeconds  int     `json:"default_timeout_seconds"`
	DefaultClearanceCM     float64 `json:"default_clearance_cm"`
	DefaultMinSupportRatio float64 `json:"default_min_support_ratio"`
	DefaultTariffProfile   string  `json:"default_tariff_profile"`

	// Application preferences.
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultPlannerConfig().
func DefaultAppConfig() AppConfig {
	defaults := DefaultPlannerConfig()
	return AppConfig{
		DefaultAlgorithm:       defaults.Algorithm,
		DefaultPopulationSize:  defaults.PopulationSize,
		DefaultGenerations:     defaults.Generations,
		DefaultMutationRate:    defaults.MutationRate,
		DefaultTimeoutSeconds:  defaults.TimeoutSeconds,
		DefaultClearanceCM:     defaults.ClearanceCM,
		DefaultMinSupportRatio: defaults.MinSupportRatio,
		DefaultTariffProfile:   "Generic",
		AutoSaveInterval:       0,
		RecentProjects:         []string{},
		Theme:                  "system",
	}
}

// ApplyToConfig copies the default values from AppConfig into a
// PlannerConfig, used when creating a new project so it inherits the
// user's saved defaults.
func (c AppConfig) ApplyToConfig(cfg *PlannerConfig) {
	cfg.Algorithm = c.DefaultAlgorithm
	cfg.PopulationSize = c.DefaultPopulationSize
	cfg.Generations = c.DefaultGenerations
	cfg.MutationRate = c.DefaultMutationRate
	cfg.TimeoutSeconds = c.DefaultTimeoutSeconds
	cfg.ClearanceCM = c.DefaultClearanceCM
	cfg.MinSupportRatio = c.DefaultMinSupportRatio
}
