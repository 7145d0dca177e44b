package engine

import (
	"fmt"
	"sort"

	"github.com/cargoplan/loadplanner/internal/model"
)

// Optimize is the core's public entry point: `optimize(items, truck,
// config) -> Result` from spec §6. It normalizes quantities, sorts the
// manifest by volume then weight (descending, the "terrain" order used
// as a deterministic fallback for the simple algorithm and as the GA's
// seed), dispatches to the constructive placer or the genetic search,
// and assembles the result.
func Optimize(items []model.Item, truck model.TruckSpecs, cfg model.PlannerConfig) (model.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return model.Result{}, err
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return model.Result{}, err
		}
	}

	units := model.ExpandItems(items)
	sort.SliceStable(units, func(i, j int) bool {
		vi, vj := units[i].VolumeCM3(), units[j].VolumeCM3()
		if vi != vj {
			return vi > vj
		}
		return units[i].Weight > units[j].Weight
	})

	if len(units) == 0 {
		return model.AssembleResult(truck, units, nil), nil
	}

	var placements []model.Placement
	switch cfg.Algorithm {
	case "simple":
		placements = Place(units, truck, cfg)
	case "genetic", "":
		placements = OptimizeGenetic(units, truck, cfg)
	default:
		return model.Result{}, fmt.Errorf("unknown algorithm %q", cfg.Algorithm)
	}

	return model.AssembleResult(truck, units, placements), nil
}

func validateConfig(cfg model.PlannerConfig) error {
	switch cfg.Algorithm {
	case "simple", "genetic", "":
	default:
		return fmt.Errorf("unknown algorithm %q", cfg.Algorithm)
	}
	if cfg.PopulationSize < 0 || cfg.Generations < 0 {
		return fmt.Errorf("invalid config: population_size and generations must be non-negative")
	}
	if cfg.MinSupportRatio < 0 || cfg.MinSupportRatio > 1 {
		return fmt.Errorf("invalid config: min_support_ratio must be within [0,1]")
	}
	if cfg.MaxHeightRatio <= 0 {
		return fmt.Errorf("invalid config: max_height_ratio must be positive")
	}
	return nil
}
