// Package tariff computes transport cost breakdowns for scenarios
// produced by the fleet partitioner, and persists reusable cost
// profiles per truck class, grounded on the reference implementation's
// CostCalculator.
package tariff

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Profile holds the cost scalars for one truck class: a fixed
// mobilization cost, a per-kilometer transport rate, an hourly
// immobilization rate while loading, and the estimated loading hours.
type Profile struct {
	ID           string  `json:"id"`
	TruckClass   string  `json:"truck_class"`
	Name         string  `json:"name"`
	FixedCost    float64 `json:"fixed_cost"`
	PerKmCost    float64 `json:"per_km_cost"`
	PerHourCost  float64 `json:"per_hour_cost"`
	LoadingHours float64 `json:"loading_hours"`
	IsBuiltIn    bool    `json:"is_built_in"`
}

// AdditionalFees holds the global surcharges applied across a whole
// scenario rather than per truck.
type AdditionalFees struct {
	InsuranceRate     float64 `json:"insurance_rate"`
	HandlingPerTon    float64 `json:"handling_per_ton"`
	OvernightStorage  float64 `json:"overnight_storage"`
	EscortConvoy      float64 `json:"escort_convoy"`
	WeekendSurcharge  float64 `json:"weekend_surcharge"`
}

// DefaultAdditionalFees mirrors the reference implementation's ADDITIONAL_FEES table.
func DefaultAdditionalFees() AdditionalFees {
	return AdditionalFees{
		InsuranceRate:    0.02,
		HandlingPerTon:   2500,
		OvernightStorage: 15000,
		EscortConvoy:     50000,
		WeekendSurcharge: 0.25,
	}
}

// BuiltinProfiles returns one profile per catalog truck class, with
// rates scaled from the reference implementation's four reference
// tariffs (van/19t/26t/40t) up to the full five-class catalog.
func BuiltinProfiles() []Profile {
	return []Profile{
		{ID: "van", TruckClass: "van", Name: "Camionnette 3.5T", FixedCost: 75000, PerKmCost: 200, PerHourCost: 3000, LoadingHours: 1, IsBuiltIn: true},
		{ID: "19t", TruckClass: "19t", Name: "Camion 19T", FixedCost: 150000, PerKmCost: 350, PerHourCost: 5000, LoadingHours: 2, IsBuiltIn: true},
		{ID: "26t", TruckClass: "26t", Name: "Camion 26T", FixedCost: 200000, PerKmCost: 450, PerHourCost: 6500, LoadingHours: 3, IsBuiltIn: true},
		{ID: "40t", TruckClass: "40t", Name: "Semi-remorque 40T", FixedCost: 300000, PerKmCost: 600, PerHourCost: 8000, LoadingHours: 4, IsBuiltIn: true},
		{ID: "lowbed", TruckClass: "lowbed", Name: "Porte-char surbaissé", FixedCost: 380000, PerKmCost: 700, PerHourCost: 9000, LoadingHours: 5, IsBuiltIn: true},
	}
}

// FindByClass returns the first profile matching a truck class, or nil.
func FindByClass(profiles []Profile, class string) *Profile {
	for i := range profiles {
		if profiles[i].TruckClass == class {
			return &profiles[i]
		}
	}
	return nil
}

// DefaultProfilesDir returns the directory for storing custom tariff profiles.
func DefaultProfilesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "loadplanner"), nil
}

// DefaultProfilesPath returns the default file path for custom tariff profiles.
func DefaultProfilesPath() (string, error) {
	dir, err := DefaultProfilesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tariffs.json"), nil
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []Profile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file. Returns an
// empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Profile{}, nil
		}
		return nil, err
	}
	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// SaveCustomProfilesToDefault saves custom profiles to the default path.
func SaveCustomProfilesToDefault(profiles []Profile) error {
	path, err := DefaultProfilesPath()
	if err != nil {
		return err
	}
	return SaveCustomProfiles(path, profiles)
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path.
func LoadCustomProfilesFromDefault() ([]Profile, error) {
	path, err := DefaultProfilesPath()
	if err != nil {
		return nil, err
	}
	return LoadCustomProfiles(path)
}
