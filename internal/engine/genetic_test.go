package engine

import (
	"math/rand"
	"testing"

	"github.com/cargoplan/loadplanner/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSeedOrderingSortsByVolumeThenWeightDescending(t *testing.T) {
	small := model.NewItem("SMALL", 10, 10, 10, 5, 1)
	bigLight := model.NewItem("BIG-LIGHT", 100, 100, 100, 1, 1)
	bigHeavy := model.NewItem("BIG-HEAVY", 100, 100, 100, 50, 1)

	ordered := seedOrdering([]model.Item{small, bigLight, bigHeavy})
	assert.Equal(t, "BIG-HEAVY", ordered[0].Reference)
	assert.Equal(t, "BIG-LIGHT", ordered[1].Reference)
	assert.Equal(t, "SMALL", ordered[2].Reference)
}

func TestCrossoverKeepsOriginalRelativeOrder(t *testing.T) {
	units := []model.Item{
		model.NewItem("A", 10, 10, 10, 1, 1),
		model.NewItem("B", 10, 10, 10, 1, 1),
		model.NewItem("C", 10, 10, 10, 1, 1),
	}
	for i := range units {
		units[i].ID = units[i].Reference
	}

	p1 := []model.Placement{{ItemID: "A"}, {ItemID: "C"}}
	p2 := []model.Placement{{ItemID: "B"}}

	g := &geneticOptimizer{rng: rand.New(rand.NewSource(1))}
	child := g.crossover(units, p1, p2)

	assert.Len(t, child, 3)
	// Every original unit must survive the crossover exactly once.
	ids := map[string]bool{}
	for _, u := range child {
		ids[u.ID] = true
	}
	assert.Len(t, ids, 3)

	// Head and tail each keep the original relative order, so the child
	// splits into at most two ascending runs of original positions.
	pos := map[string]int{"A": 0, "B": 1, "C": 2}
	descents := 0
	for i := 1; i < len(child); i++ {
		if pos[child[i].ID] < pos[child[i-1].ID] {
			descents++
		}
	}
	assert.LessOrEqual(t, descents, 1)
}

func TestTournamentPicksFittest(t *testing.T) {
	units := []model.Item{model.NewItem("A", 10, 10, 10, 1, 1)}
	units[0].ID = "A"

	weak := []model.Placement{}
	strong := []model.Placement{{ItemID: "A", Weight: 10}}

	g := &geneticOptimizer{rng: rand.New(rand.NewSource(2))}
	population := [][]model.Placement{weak, weak, strong}
	winner := g.tournament(population, units)
	assert.Equal(t, strong, winner)
}

func TestBestOfSelectsHighestFitness(t *testing.T) {
	units := []model.Item{model.NewItem("A", 10, 10, 10, 1, 1)}
	units[0].ID = "A"
	a := []model.Placement{}
	b := []model.Placement{{ItemID: "A", Weight: 1}}
	best := bestOf([][]model.Placement{a, b}, units)
	assert.Equal(t, b, best)
}
