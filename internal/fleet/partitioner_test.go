package fleet

import (
	"testing"

	"github.com/cargoplan/loadplanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCompatibleTrucksExcludesTooSmall(t *testing.T) {
	small := model.NewTruckSpecs("small", 100, 100, 100, 500)
	big := model.NewTruckSpecs("big", 1000, 300, 300, 20000)
	item := model.NewItem("OVERSIZE", 500, 200, 200, 100, 1)

	compatible := filterCompatibleTrucks([]model.Item{item}, []model.TruckSpecs{small, big})
	require.Len(t, compatible, 1)
	assert.Equal(t, "big", compatible[0].Name)
}

func TestFilterCompatibleTrucksAllowsRotatedFit(t *testing.T) {
	truck := model.NewTruckSpecs("rotatable", 100, 300, 300, 20000)
	item := model.NewItem("ROTATE", 300, 90, 90, 10, 1)
	compatible := filterCompatibleTrucks([]model.Item{item}, []model.TruckSpecs{truck})
	assert.Len(t, compatible, 1)
}

func TestSuggestFleetNoSolutionWhenNoTruckFits(t *testing.T) {
	tiny := model.NewTruckSpecs("tiny", 50, 50, 50, 10)
	item := model.NewItem("HUGE", 500, 500, 500, 1000, 1)
	scenarios := SuggestFleet([]model.Item{item}, []model.TruckSpecs{tiny}, 100)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "no_solution", scenarios[0].ID)
	assert.True(t, scenarios[0].Buckets[0].Exception)
}

// S6 — Fleet split: min-trucks should draw the large truck (B) before
// the small ones (A).
func TestScenarioS6FleetSplit(t *testing.T) {
	truckA := model.TruckSpecs{ID: "A", Name: "Truck A", Length: 700, Width: 250, Height: 200, MaxWeight: 15000, BaseCost: 10000, CostPerKm: 50}
	truckB := model.TruckSpecs{ID: "B", Name: "Truck B", Length: 1200, Width: 300, Height: 250, MaxWeight: 26000, BaseCost: 40000, CostPerKm: 120}

	// ~60 m3, 25000 kg total, as whole-number-friendly unit items.
	var items []model.Item
	for i := 0; i < 60; i++ {
		it := model.NewItem(itemRef(i), 100, 100, 100, 25000.0/60, 1)
		items = append(items, it)
	}

	scenarios := SuggestFleet(items, []model.TruckSpecs{truckA, truckB}, 500)
	require.Len(t, scenarios, 3)

	var minTrucks Scenario
	for _, s := range scenarios {
		if s.ID == "min_trucks" {
			minTrucks = s
		}
	}
	require.NotEmpty(t, minTrucks.Buckets)
	assert.Equal(t, "B", minTrucks.Buckets[0].Truck.ID, "min-trucks should prefer the single larger truck first")

	var recommendedCount int
	for _, s := range scenarios {
		if s.Recommended {
			recommendedCount++
		}
	}
	assert.Equal(t, 1, recommendedCount)
}

func TestAllocateRespectsSoftCapacities(t *testing.T) {
	truck := model.NewTruckSpecs("cap", 500, 500, 500, 1000)
	var items []model.Item
	for i := 0; i < 20; i++ {
		items = append(items, model.NewItem(itemRef(i), 100, 100, 100, 100, 1))
	}

	buckets := allocate(items, []model.TruckSpecs{truck})
	for _, b := range buckets {
		if b.Exception {
			continue
		}
		assert.LessOrEqual(t, b.Metrics.WeightKG, truck.MaxWeight*softWeightCap+0.01)
		assert.LessOrEqual(t, b.Metrics.VolumeM3, truck.VolumeM3()*softVolumeCap+0.01)
	}
}

func TestClassRank(t *testing.T) {
	assert.Less(t, classRank("26t"), classRank("19t"))
	assert.Less(t, classRank("19t"), classRank("40t"))
	assert.Less(t, classRank("40t"), classRank("lowbed"))
	assert.Less(t, classRank("lowbed"), classRank("van"))
}

func itemRef(i int) string {
	return "ITEM-" + string(rune('A'+(i%26))) + string(rune('0'+(i/26)))
}
