// Package fleet implements the fleet partitioner (component E): given a
// manifest and a truck catalog, it classifies compatible trucks and
// allocates items into per-truck buckets across three priority
// orderings, producing scored, comparable scenarios.
package fleet

import (
	"sort"
	"strings"

	"github.com/cargoplan/loadplanner/internal/model"
	"github.com/cargoplan/loadplanner/internal/tariff"
)

// Bucket is one truck's share of items within a scenario.
type Bucket struct {
	Truck   model.TruckSpecs `json:"truck"`
	Items   []model.Item     `json:"items"`
	Metrics BucketMetrics    `json:"metrics"`
	// Exception is true when this bucket holds unserved items because
	// no truck in the catalog could accept them (spec's InfeasibleCatalog).
	Exception bool `json:"exception,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// BucketMetrics reports fill levels for a single bucket.
type BucketMetrics struct {
	WeightKG       float64 `json:"weight_kg"`
	VolumeM3       float64 `json:"volume_m3"`
	FloorAreaM2    float64 `json:"floor_area_m2"`
	FillWeightPct  float64 `json:"fill_weight_pct"`
	FillVolumePct  float64 `json:"fill_volume_pct"`
	FillFloorPct   float64 `json:"fill_floor_pct"`
}

// Scenario is one complete partitioning of items across trucks.
type Scenario struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Statistics  model.Statistics  `json:"statistics"`
	Buckets     []Bucket          `json:"buckets"`
	TotalCost   *float64          `json:"total_cost,omitempty"`
	Recommended bool              `json:"recommended"`
}

// Soft capacity factors: a bucket is considered "full" below 100% of its
// true capacity to leave loading-practicality margin. Not derived from
// first principles — tunable heuristics ported from the reference
// implementation.
const (
	softVolumeCap = 0.88
	softWeightCap = 0.95
	softFloorCap  = 0.90
)

// SuggestFleet runs suggest_fleet(items, trucks, distance_km, config)
// from spec §6: classify compatible trucks, then build cost-optimal,
// min-trucks, and balanced scenarios, marking the cheapest as recommended.
func SuggestFleet(items []model.Item, trucks []model.TruckSpecs, distanceKM float64) []Scenario {
	stats := model.CalculateStatistics(items)
	compatible := filterCompatibleTrucks(items, trucks)

	if len(compatible) == 0 {
		return []Scenario{{
			ID:         "no_solution",
			Name:       "No compatible truck",
			Statistics: stats,
			Buckets: []Bucket{{
				Exception: true,
				Reason:    "items exceed the dimensional or weight capacity of every truck in the catalog",
				Items:     model.ExpandItems(items),
			}},
		}}
	}

	costSorted := append([]model.TruckSpecs{}, compatible...)
	sort.SliceStable(costSorted, func(i, j int) bool {
		return truckCostScore(costSorted[i], distanceKM) < truckCostScore(costSorted[j], distanceKM)
	})
	s1 := buildScenario("cost_optimal", "Cost-optimal", items, costSorted, distanceKM, stats)

	minTrucksSorted := append([]model.TruckSpecs{}, compatible...)
	sort.SliceStable(minTrucksSorted, func(i, j int) bool {
		a, b := minTrucksSorted[i], minTrucksSorted[j]
		if a.VolumeM3() != b.VolumeM3() {
			return a.VolumeM3() > b.VolumeM3()
		}
		return a.MaxWeight > b.MaxWeight
	})
	s2 := buildScenario("min_trucks", "Minimum trucks", items, minTrucksSorted, distanceKM, stats)

	balancedSorted := append([]model.TruckSpecs{}, compatible...)
	sort.SliceStable(balancedSorted, func(i, j int) bool {
		a, b := balancedSorted[i], balancedSorted[j]
		ra, rb := classRank(a.ID), classRank(b.ID)
		if ra != rb {
			return ra < rb
		}
		return a.VolumeM3() > b.VolumeM3()
	})
	s3 := buildScenario("balanced", "Balanced", items, balancedSorted, distanceKM, stats)

	scenarios := []Scenario{s1, s2, s3}

	named := make([]tariff.NamedCost, 0, len(scenarios))
	for _, s := range scenarios {
		if s.TotalCost == nil {
			continue
		}
		named = append(named, tariff.NamedCost{ID: s.ID, Cost: *s.TotalCost})
	}
	if cmp := tariff.CompareScenarios(named); cmp != nil {
		for i := range scenarios {
			if scenarios[i].ID == cmp.Recommendation {
				scenarios[i].Recommended = true
				break
			}
		}
	}
	return scenarios
}

func buildScenario(id, name string, items []model.Item, priority []model.TruckSpecs, distanceKM float64, stats model.Statistics) Scenario {
	buckets := allocate(items, priority)

	totalCost, hasCost := scenarioCost(buckets, distanceKM)

	scenario := Scenario{ID: id, Name: name, Statistics: stats, Buckets: buckets}
	if hasCost {
		rounded := round0(totalCost)
		scenario.TotalCost = &rounded
	}
	return scenario
}

// scenarioCost prices a scenario's non-exception buckets through the
// tariff catalog (component H): buckets whose truck resolves to a known
// tariff class (catalog trucks carry their class in TruckSpecs.ID, see
// TruckPreset.ToTruckSpecs) are grouped by class and priced in one
// tariff.CalculateScenarioCost call; buckets with a custom, unclassed
// truck fall back to that truck's own base/per-km rate.
func scenarioCost(buckets []Bucket, distanceKM float64) (float64, bool) {
	profiles := tariff.BuiltinProfiles()
	fees := tariff.DefaultAdditionalFees()

	quantities := map[string]int{}
	var order []string
	var fallback float64
	hasCost := false

	for _, b := range buckets {
		if b.Exception {
			continue
		}
		hasCost = true

		if profile := tariff.FindByClass(profiles, b.Truck.ID); profile != nil {
			if _, seen := quantities[profile.TruckClass]; !seen {
				order = append(order, profile.TruckClass)
			}
			quantities[profile.TruckClass]++
			continue
		}
		fallback += truckCost(b.Truck, distanceKM)
	}

	if !hasCost {
		return 0, false
	}

	total := fallback
	if len(order) > 0 {
		trucks := make([]tariff.TruckQuantity, 0, len(order))
		for _, class := range order {
			trucks = append(trucks, tariff.TruckQuantity{TruckClass: class, Quantity: quantities[class]})
		}
		sc := tariff.CalculateScenarioCost(profiles, fees, trucks, distanceKM, 1, 0, false, false)
		total += sc.TotalCost
	}
	return total, true
}

// allocate implements the soft-cap greedy bucket loop from spec §4.E:
// repeatedly open a bucket for the highest-priority truck that can
// admit the first (largest-volume) remaining unit, then greedily fill it
// until nothing else fits, leaving the rest for the next bucket.
func allocate(items []model.Item, priority []model.TruckSpecs) []Bucket {
	units := model.ExpandItems(items)
	sort.SliceStable(units, func(i, j int) bool {
		vi, vj := units[i].VolumeCM3(), units[j].VolumeCM3()
		if vi != vj {
			return vi > vj
		}
		return units[i].Weight > units[j].Weight
	})

	var buckets []Bucket
	remaining := units

	for len(remaining) > 0 {
		placedAny := false

		for _, truck := range priority {
			if !canFitMaxItem(remaining[0], truck) {
				continue
			}

			var bucketItems []model.Item
			var volUsed, wUsed, floorUsed float64
			volCap := truck.VolumeM3() * softVolumeCap
			wCap := truck.MaxWeight * softWeightCap
			floorCap := truck.FloorAreaM2() * softFloorCap

			var newRemaining []model.Item
			for _, u := range remaining {
				if !canFitMaxItem(u, truck) {
					newRemaining = append(newRemaining, u)
					continue
				}

				floorWeight := model.FloorAreaWeightStackable
				if !u.Stackable {
					floorWeight = model.FloorAreaWeightNonStackable
				}
				uFloor := (u.FootprintCM2() / 10_000.0) * floorWeight
				uVol := u.VolumeM3()

				if volUsed+uVol <= volCap && wUsed+u.Weight <= wCap && floorUsed+uFloor <= floorCap {
					bucketItems = append(bucketItems, u)
					volUsed += uVol
					wUsed += u.Weight
					floorUsed += uFloor
					placedAny = true
				} else {
					newRemaining = append(newRemaining, u)
				}
			}

			if len(bucketItems) > 0 {
				buckets = append(buckets, Bucket{
					Truck: truck,
					Items: bucketItems,
					Metrics: BucketMetrics{
						WeightKG:      round2(wUsed),
						VolumeM3:      round4(volUsed),
						FloorAreaM2:   round4(floorUsed),
						FillWeightPct: pct(wUsed, truck.MaxWeight),
						FillVolumePct: pct(volUsed, truck.VolumeM3()),
						FillFloorPct:  pct(floorUsed, truck.FloorAreaM2()),
					},
				})
				remaining = newRemaining
				break
			}
		}

		if !placedAny {
			buckets = append(buckets, Bucket{
				Exception: true,
				Reason:    "remaining items exceed the capacity of every available truck",
				Items:     remaining,
			})
			break
		}
	}

	return buckets
}

// filterCompatibleTrucks excludes any truck whose envelope cannot admit
// the largest item (rotation-tolerant in the L/W plane, strict on
// height) or whose payload is below the heaviest item.
func filterCompatibleTrucks(items []model.Item, trucks []model.TruckSpecs) []model.TruckSpecs {
	units := model.ExpandItems(items)
	if len(units) == 0 || len(trucks) == 0 {
		return nil
	}

	var maxL, maxW, maxH, maxWt float64
	for _, u := range units {
		maxL = max64(maxL, u.Length)
		maxW = max64(maxW, u.Width)
		maxH = max64(maxH, u.Height)
		maxWt = max64(maxWt, u.Weight)
	}

	var out []model.TruckSpecs
	for _, t := range trucks {
		dimOK := (maxL <= t.Length && maxW <= t.Width) || (maxW <= t.Length && maxL <= t.Width)
		if !dimOK || maxH > t.Height || maxWt > t.MaxWeight {
			continue
		}
		out = append(out, t)
	}
	return out
}

func canFitMaxItem(item model.Item, truck model.TruckSpecs) bool {
	dimOK := (item.Length <= truck.Length && item.Width <= truck.Width) ||
		(item.Width <= truck.Length && item.Length <= truck.Width)
	if !dimOK {
		return false
	}
	if item.Height > truck.Height {
		return false
	}
	return item.Weight <= truck.MaxWeight
}

func truckCost(t model.TruckSpecs, distanceKM float64) float64 {
	return t.BaseCost + t.CostPerKm*distanceKM
}

// truckCostScore is cost per useful m³ (lower is better); used to order
// the cost-optimal scenario's truck priority.
func truckCostScore(t model.TruckSpecs, distanceKM float64) float64 {
	cap := t.VolumeM3()
	if cap < 1e-9 {
		cap = 1e-9
	}
	return truckCost(t, distanceKM) / cap
}

// classRank implements the "balanced" scenario's fixed class-rank
// heuristic: mid-tier class first, then smaller, then larger, then
// specialty, then van, by convention encoded in truck IDs/names.
func classRank(truckID string) int {
	id := strings.ToLower(truckID)
	switch {
	case strings.Contains(id, "26"):
		return 1
	case strings.Contains(id, "19"):
		return 2
	case strings.Contains(id, "40"):
		return 3
	case strings.Contains(id, "low"), strings.Contains(id, "45"):
		return 4
	case strings.Contains(id, "van"):
		return 5
	default:
		return 9
	}
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func pct(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return round2((used / total) * 100)
}

func round2(v float64) float64 { return roundTo(v, 100) }
func round4(v float64) float64 { return roundTo(v, 10000) }
func round0(v float64) float64 { return roundTo(v, 1) }

func roundTo(v, scale float64) float64 {
	return float64(int64(v*scale+0.5)) / scale
}
