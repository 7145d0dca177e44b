package engine

import (
	"testing"

	"github.com/cargoplan/loadplanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleConfig() model.PlannerConfig {
	cfg := model.DefaultPlannerConfig()
	cfg.Algorithm = "simple"
	return cfg
}

// S1 — Perfect single-layer.
func TestScenarioS1PerfectSingleLayer(t *testing.T) {
	truck := model.NewTruckSpecs("S1", 1000, 200, 200, 10000)
	var items []model.Item
	for i := 0; i < 10; i++ {
		it := model.NewItem(itemRef("S1", i), 100, 100, 50, 50, 1)
		items = append(items, it)
	}

	result, err := Optimize(items, truck, simpleConfig())
	require.NoError(t, err)
	assert.Equal(t, 10, result.ItemsPlaced)
	for _, p := range result.Placements {
		assert.Equal(t, 0.0, p.Z)
	}
	assert.InDelta(t, 12.5, result.VolumeEfficiency, 0.5)
	assert.InDelta(t, 5.0, result.WeightEfficiency, 0.01)
	assertNoOverlaps(t, result.Placements)
}

// S2 — Stacking.
func TestScenarioS2Stacking(t *testing.T) {
	truck := model.NewTruckSpecs("S2", 200, 100, 200, 1000)
	var items []model.Item
	for i := 0; i < 4; i++ {
		items = append(items, model.NewItem(itemRef("S2", i), 100, 100, 100, 100, 1))
	}

	result, err := Optimize(items, truck, simpleConfig())
	require.NoError(t, err)
	assert.Equal(t, 4, result.ItemsPlaced)

	var atFloor, atHeight int
	for _, p := range result.Placements {
		assert.LessOrEqual(t, p.Top(), 200.0+model.Epsilon)
		if p.Z == 0 {
			atFloor++
		} else {
			atHeight++
			assert.InDelta(t, 100, p.Z, 0.01)
		}
	}
	assert.True(t, atFloor > 0 && atHeight > 0, "expected both floor and stacked placements")
	assertNoOverlaps(t, result.Placements)
}

// S3 — Non-stackable blocks top.
func TestScenarioS3NonStackableBlocksTop(t *testing.T) {
	truck := model.NewTruckSpecs("S3", 200, 100, 200, 10000)
	bottom := model.NewItem("BOTTOM", 100, 100, 50, 100, 1)
	bottom.Stackable = false
	top := model.NewItem("TOP", 100, 100, 50, 50, 1)

	result, err := Optimize([]model.Item{bottom, top}, truck, simpleConfig())
	require.NoError(t, err)
	require.Equal(t, 2, result.ItemsPlaced)

	var topPlacement model.Placement
	for _, p := range result.Placements {
		if p.ItemID == top.ID {
			topPlacement = p
		}
	}
	assert.Equal(t, 0.0, topPlacement.Z, "non-stackable supporter must force the second item beside it, not above it")
}

// S4 — Rotation needed.
func TestScenarioS4RotationNeeded(t *testing.T) {
	truck := model.NewTruckSpecs("S4", 1200, 250, 260, 50000)
	item := model.NewItem("BIG", 240, 1100, 100, 500, 1)

	noRotation := simpleConfig()
	noRotation.AllowRotation = false
	result, err := Optimize([]model.Item{item}, truck, noRotation)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ItemsPlaced, "240x1100 footprint does not fit without rotation")

	withRotation := simpleConfig()
	withRotation.AllowRotation = true
	result, err = Optimize([]model.Item{item}, truck, withRotation)
	require.NoError(t, err)
	require.Equal(t, 1, result.ItemsPlaced)
	p := result.Placements[0]
	assert.True(t, p.Rotated)
	assert.InDelta(t, 1100, p.Length, 0.01)
	assert.InDelta(t, 240, p.Width, 0.01)
}

// S5 — Weight cap dominates.
func TestScenarioS5WeightCapDominates(t *testing.T) {
	truck := model.NewTruckSpecs("S5", 1360, 248, 270, 19000)
	var items []model.Item
	for i := 0; i < 25; i++ {
		items = append(items, model.NewItem(itemRef("S5", i), 100, 100, 100, 1000, 1))
	}

	result, err := Optimize(items, truck, simpleConfig())
	require.NoError(t, err)
	assert.Equal(t, 19, result.ItemsPlaced)

	var totalWeight float64
	for _, p := range result.Placements {
		totalWeight += p.Weight
	}
	assert.LessOrEqual(t, totalWeight, truck.MaxWeight)
}

func TestOptimizeGeneticMatchesOrBeatsSimple(t *testing.T) {
	truck := model.NewTruckSpecs("GA", 1000, 200, 200, 10000)
	var items []model.Item
	for i := 0; i < 12; i++ {
		items = append(items, model.NewItem(itemRef("GA", i), 90, 90, 60, 40, 1))
	}

	geneticCfg := model.DefaultPlannerConfig()
	geneticCfg.Generations = 5
	geneticCfg.PopulationSize = 8
	geneticCfg.Seed = 42

	simpleResult, err := Optimize(items, truck, simpleConfig())
	require.NoError(t, err)
	geneticResult, err := Optimize(items, truck, geneticCfg)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, geneticResult.ItemsPlaced, simpleResult.ItemsPlaced)
	assertNoOverlaps(t, geneticResult.Placements)
}

func TestOptimizeDeterministicWithFixedSeed(t *testing.T) {
	truck := model.NewTruckSpecs("DET", 1000, 200, 200, 10000)
	var items []model.Item
	for i := 0; i < 10; i++ {
		items = append(items, model.NewItem(itemRef("DET", i), 80, 80, 60, 30, 1))
	}

	cfg := model.DefaultPlannerConfig()
	cfg.Generations = 4
	cfg.PopulationSize = 6
	cfg.Seed = 7

	r1, err := Optimize(items, truck, cfg)
	require.NoError(t, err)
	r2, err := Optimize(items, truck, cfg)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
}

func TestOptimizeRejectsInvalidInput(t *testing.T) {
	truck := model.NewTruckSpecs("BAD", 100, 100, 100, 1000)
	bad := model.NewItem("BAD", -1, 100, 100, 10, 1)
	_, err := Optimize([]model.Item{bad}, truck, simpleConfig())
	assert.Error(t, err)
}

func TestOptimizeRejectsUnknownAlgorithm(t *testing.T) {
	truck := model.NewTruckSpecs("BAD-ALG", 100, 100, 100, 1000)
	cfg := model.DefaultPlannerConfig()
	cfg.Algorithm = "quantum"
	_, err := Optimize(nil, truck, cfg)
	assert.Error(t, err)
}

func itemRef(prefix string, i int) string {
	return prefix + "-" + string(rune('A'+i))
}

func assertNoOverlaps(t *testing.T, placements []model.Placement) {
	t.Helper()
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i], placements[j]
			assert.False(t, Intersects(a.X, a.Y, a.Z, a.Length, a.Width, a.Height, b.X, b.Y, b.Z, b.Length, b.Width, b.Height, 0),
				"placements %s and %s overlap", a.ItemID, b.ItemID)
		}
	}
}
