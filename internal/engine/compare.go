package engine

import "github.com/cargoplan/loadplanner/internal/model"

// ComparisonRun names a planner configuration to evaluate against the
// same manifest and truck.
type ComparisonRun struct {
	Name   string
	Config model.PlannerConfig
}

// ComparisonResult holds the optimize() result and a few summary
// figures for a single comparison run.
type ComparisonResult struct {
	Run           ComparisonRun
	Result        model.Result
	UnplacedCount int
}

// CompareRuns runs Optimize for each named configuration against the
// same items/truck, so a caller can show e.g. "simple vs genetic" or
// "genetic, generations=50 vs generations=200" side by side.
func CompareRuns(runs []ComparisonRun, items []model.Item, truck model.TruckSpecs) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(runs))
	for _, run := range runs {
		result, err := Optimize(items, truck, run.Config)
		if err != nil {
			return nil, err
		}
		results = append(results, ComparisonResult{
			Run:           run,
			Result:        result,
			UnplacedCount: result.ItemsTotal - result.ItemsPlaced,
		})
	}
	return results, nil
}

// BuildAlgorithmComparison builds the two canonical runs ("simple" and
// "genetic") against a base configuration, varying only the algorithm.
func BuildAlgorithmComparison(base model.PlannerConfig) []ComparisonRun {
	simple := base
	simple.Algorithm = "simple"
	genetic := base
	genetic.Algorithm = "genetic"
	return []ComparisonRun{
		{Name: "Constructive (simple)", Config: simple},
		{Name: "Genetic search", Config: genetic},
	}
}
