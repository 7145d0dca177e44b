package engine

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/cargoplan/loadplanner/internal/model"
)

// geneticOptimizer runs the seeded genetic search (component D) over
// item orderings, using Place as its deterministic decoder. The search
// variable is the order; geometry itself never varies given an order.
type geneticOptimizer struct {
	truck model.TruckSpecs
	cfg   model.PlannerConfig
	rng   *rand.Rand
}

// newGeneticOptimizer constructs a geneticOptimizer seeded from
// cfg.Seed (or a fixed default when Seed is zero, so behavior is
// reproducible by default).
func newGeneticOptimizer(truck model.TruckSpecs, cfg model.PlannerConfig) *geneticOptimizer {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	return &geneticOptimizer{truck: truck, cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// fitness implements the lexicographic fitness from spec §4.D: placed
// count dominates, then total weight, then total volume.
func fitness(units []model.Item, placements []model.Placement) float64 {
	placedIDs := make(map[string]bool, len(placements))
	var weight, volume float64
	for _, p := range placements {
		placedIDs[p.ItemID] = true
		weight += p.Weight
		volume += p.VolumeCM3()
	}
	return float64(len(placedIDs))*1e9 + weight*1e3 + volume
}

// OptimizeGenetic runs the full GA loop and returns the best placement
// set found across all generations.
func OptimizeGenetic(units []model.Item, truck model.TruckSpecs, cfg model.PlannerConfig) []model.Placement {
	g := newGeneticOptimizer(truck, cfg)
	return g.run(units)
}

func (g *geneticOptimizer) run(units []model.Item) []model.Placement {
	start := time.Now()
	timeout := time.Duration(g.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 300 * time.Second
	}

	seedOrder := seedOrdering(units)
	population := [][]model.Placement{Place(seedOrder, g.truck, g.cfg)}

	popSize := g.cfg.PopulationSize
	if popSize < 1 {
		popSize = 1
	}
	for i := 1; i < popSize; i++ {
		perm := shuffled(units, g.rng)
		population = append(population, Place(perm, g.truck, g.cfg))
	}

	best := bestOf(population, units)

	for gen := 0; gen < g.cfg.Generations; gen++ {
		if time.Since(start) > timeout {
			break
		}

		sort.Slice(population, func(i, j int) bool {
			return fitness(units, population[i]) > fitness(units, population[j])
		})

		eliteCount := int(math.Ceil(g.cfg.ElitismRate * float64(len(population))))
		if eliteCount < 1 {
			eliteCount = 1
		}
		newPop := append([][]model.Placement{}, population[:eliteCount]...)

		for len(newPop) < popSize {
			p1 := g.tournament(population, units)
			p2 := g.tournament(population, units)
			childOrder := g.crossover(units, p1, p2)
			if g.rng.Float64() < g.cfg.MutationRate {
				g.rng.Shuffle(len(childOrder), func(i, j int) {
					childOrder[i], childOrder[j] = childOrder[j], childOrder[i]
				})
			}
			newPop = append(newPop, Place(childOrder, g.truck, g.cfg))
		}

		population = newPop
		currentBest := bestOf(population, units)
		if fitness(units, currentBest) > fitness(units, best) {
			best = currentBest
		}
	}

	return best
}

// tournament picks the fittest of k=3 randomly sampled individuals.
func (g *geneticOptimizer) tournament(population [][]model.Placement, units []model.Item) []model.Placement {
	const k = 3
	n := k
	if n > len(population) {
		n = len(population)
	}
	idx := g.rng.Perm(len(population))[:n]
	best := population[idx[0]]
	for _, i := range idx[1:] {
		if fitness(units, population[i]) > fitness(units, best) {
			best = population[i]
		}
	}
	return best
}

// crossover implements the order crossover from spec §4.D: each item
// present in p1's placements is taken into the "head" set with
// probability 0.6; an item not taken that way is taken with probability
// 0.3 if it is present in p2's placements; head items keep the manifest's original relative order, followed
// by the remaining items in their original order.
func (g *geneticOptimizer) crossover(units []model.Item, p1, p2 []model.Placement) []model.Item {
	placed1 := placedSet(p1)
	placed2 := placedSet(p2)

	take := make(map[string]bool)
	for _, u := range units {
		if placed1[u.ID] && g.rng.Float64() < 0.6 {
			take[u.ID] = true
		} else if placed2[u.ID] && g.rng.Float64() < 0.3 {
			take[u.ID] = true
		}
	}

	head := make([]model.Item, 0, len(units))
	tail := make([]model.Item, 0, len(units))
	for _, u := range units {
		if take[u.ID] {
			head = append(head, u)
		} else {
			tail = append(tail, u)
		}
	}
	return append(head, tail...)
}

func placedSet(placements []model.Placement) map[string]bool {
	out := make(map[string]bool, len(placements))
	for _, p := range placements {
		out[p.ItemID] = true
	}
	return out
}

// seedOrdering returns the deterministic seed individual: items sorted
// by volume descending, weight descending as tiebreak.
func seedOrdering(units []model.Item) []model.Item {
	sorted := append([]model.Item{}, units...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].VolumeCM3(), sorted[j].VolumeCM3()
		if vi != vj {
			return vi > vj
		}
		return sorted[i].Weight > sorted[j].Weight
	})
	return sorted
}

func shuffled(units []model.Item, rng *rand.Rand) []model.Item {
	perm := append([]model.Item{}, units...)
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm
}

func bestOf(population [][]model.Placement, units []model.Item) []model.Placement {
	best := population[0]
	bestFit := fitness(units, best)
	for _, candidate := range population[1:] {
		if f := fitness(units, candidate); f > bestFit {
			best, bestFit = candidate, f
		}
	}
	return best
}
