// Package model defines the value types shared by every layer of the
// planner: items, truck envelopes, placements, and the results produced
// by the placement engine and the fleet partitioner.
package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Epsilon is the fixed tolerance used for all floating-point comparisons
// in the geometry and support logic (cm).
const Epsilon = 1e-6

// Item is a single unit of cargo (cm / kg) prior to quantity expansion.
type Item struct {
	ID          string  `json:"id"`
	Reference   string  `json:"reference"`
	Description string  `json:"description,omitempty"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Quantity    int     `json:"quantity"`
	Fragile     bool    `json:"fragile"`
	Stackable   bool    `json:"stackable"`
}

// NewItem constructs an Item with a generated reference-derived ID and
// sane quantity/stackable defaults.
func NewItem(reference string, length, width, height, weight float64, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}
	return Item{
		ID:        reference,
		Reference: reference,
		Length:    length,
		Width:     width,
		Height:    height,
		Weight:    weight,
		Quantity:  quantity,
		Stackable: true,
	}
}

// Validate reports InvalidInput-class errors: non-positive dimensions,
// non-finite numbers, or negative weight.
func (it Item) Validate() error {
	for name, v := range map[string]float64{"length": it.Length, "width": it.Width, "height": it.Height} {
		if !isFinite(v) || v <= 0 {
			return fmt.Errorf("item %q: %s must be a finite positive number, got %v", it.Reference, name, v)
		}
	}
	if !isFinite(it.Weight) || it.Weight < 0 {
		return fmt.Errorf("item %q: weight must be a finite non-negative number, got %v", it.Reference, it.Weight)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// VolumeCM3 returns the item's unit volume in cubic centimeters.
func (it Item) VolumeCM3() float64 {
	return it.Length * it.Width * it.Height
}

// VolumeM3 returns the item's unit volume in cubic meters.
func (it Item) VolumeM3() float64 {
	return it.VolumeCM3() / 1_000_000.0
}

// FootprintCM2 returns the item's floor footprint (L×W) in square centimeters.
func (it Item) FootprintCM2() float64 {
	return it.Length * it.Width
}

// Rotations returns the set of (L,W,H) orientations permitted for this
// item. Only 0°/90° rotation about the vertical axis is allowed; the
// height face never rotates to the base. Square footprints collapse to
// a single orientation.
func (it Item) Rotations(allowRotation bool) [][3]float64 {
	l, w, h := it.Length, it.Width, it.Height
	if !allowRotation || math.Abs(l-w) < Epsilon {
		return [][3]float64{{l, w, h}}
	}
	return [][3]float64{{l, w, h}, {w, l, h}}
}

// ExpandItems unfolds a manifest's quantity-N items into Quantity=1 unit
// items with deterministic identifiers "<reference>__<k>", deduping on
// conflict. Items that already carry Quantity=1 and a unique, non-empty
// ID are kept unmodified (already-expanded input is idempotent).
func ExpandItems(items []Item) []Item {
	seen := make(map[string]bool)
	units := make([]Item, 0, len(items))
	for _, raw := range items {
		ref := raw.Reference
		if ref == "" {
			ref = raw.ID
		}
		if ref == "" {
			ref = "ITEM"
		}
		qty := raw.Quantity
		if qty < 1 {
			qty = 1
		}

		if qty == 1 && raw.ID != "" && !seen[raw.ID] {
			seen[raw.ID] = true
			unit := raw
			unit.Reference = ref
			unit.Quantity = 1
			units = append(units, unit)
			continue
		}

		for k := 1; k <= qty; k++ {
			uid := fmt.Sprintf("%s__%d", ref, k)
			for seen[uid] {
				uid = fmt.Sprintf("%s__%d_%d", ref, k, len(seen))
			}
			seen[uid] = true
			unit := raw
			unit.ID = uid
			unit.Reference = ref
			unit.Quantity = 1
			units = append(units, unit)
		}
	}
	return units
}

// TruckSpecs describes a truck's loadable interior envelope (cm/kg) and
// optional cost scalars.
type TruckSpecs struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	MaxWeight     float64 `json:"max_weight"`
	BaseCost      float64 `json:"base_cost,omitempty"`
	CostPerKm     float64 `json:"cost_per_km,omitempty"`
}

// NewTruckSpecs constructs a TruckSpecs with a generated ID.
func NewTruckSpecs(name string, length, width, height, maxWeight float64) TruckSpecs {
	return TruckSpecs{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Length:    length,
		Width:     width,
		Height:    height,
		MaxWeight: maxWeight,
	}
}

// VolumeCM3 returns the truck's interior volume in cubic centimeters.
func (t TruckSpecs) VolumeCM3() float64 {
	return t.Length * t.Width * t.Height
}

// VolumeM3 returns the truck's interior volume in cubic meters.
func (t TruckSpecs) VolumeM3() float64 {
	return t.VolumeCM3() / 1_000_000.0
}

// FloorAreaM2 returns the truck's floor area in square meters.
func (t TruckSpecs) FloorAreaM2() float64 {
	return (t.Length * t.Width) / 10_000.0
}

// Placement is a single unit item placed within a truck's envelope.
type Placement struct {
	ItemID    string  `json:"item_id"`
	Reference string  `json:"reference"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rotated   bool    `json:"rotated"`
	Weight    float64 `json:"weight"`
	Stackable bool    `json:"stackable"`
}

// Top returns the z coordinate of the placement's top face.
func (p Placement) Top() float64 {
	return p.Z + p.Height
}

// VolumeCM3 returns the volume occupied by this placement.
func (p Placement) VolumeCM3() float64 {
	return p.Length * p.Width * p.Height
}

// PlannerConfig holds every tunable recognized by optimize/suggest_fleet,
// with the defaults from spec §6.
type PlannerConfig struct {
	Algorithm       string  `json:"algorithm"`
	PopulationSize  int     `json:"population_size"`
	Generations     int     `json:"generations"`
	MutationRate    float64 `json:"mutation_rate"`
	CrossoverRate   float64 `json:"crossover_rate"`
	ElitismRate     float64 `json:"elitism_rate"`
	TimeoutSeconds  int     `json:"timeout_seconds"`
	GridStepCM      int     `json:"grid_step_cm"`
	AllowRotation   bool    `json:"allow_rotation"`
	MinSupportRatio float64 `json:"min_support_ratio"`
	ClearanceCM     float64 `json:"clearance_cm"`
	MaxHeightRatio  float64 `json:"max_height_ratio"`
	// Seed pins the GA's random source for deterministic tests/reruns.
	// Zero means "derive from a process-level default seed".
	Seed int64 `json:"seed,omitempty"`
}

// DefaultPlannerConfig returns the spec-mandated defaults.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		Algorithm:       "genetic",
		PopulationSize:  30,
		Generations:     50,
		MutationRate:    0.1,
		CrossoverRate:   0.8,
		ElitismRate:     0.1,
		TimeoutSeconds:  300,
		GridStepCM:      5,
		AllowRotation:   true,
		MinSupportRatio: 0.7,
		ClearanceCM:     0.0,
		MaxHeightRatio:  1.0,
	}
}

// Result is the output of optimize(): a placement set for one truck plus
// efficiency metrics.
type Result struct {
	TruckSpecs        TruckSpecs  `json:"truck_specs"`
	ItemsTotal        int         `json:"items_total"`
	ItemsPlaced       int         `json:"items_placed"`
	WeightEfficiency  float64     `json:"weight_efficiency"`
	VolumeEfficiency  float64     `json:"volume_efficiency"`
	Placements        []Placement `json:"placements"`
	UnplacedItemIDs   []string    `json:"unplaced_item_ids,omitempty"`
}

// AssembleResult computes the component-F efficiency metrics and shapes
// the final Result from a placement list produced by the Placer/GA.
func AssembleResult(truck TruckSpecs, units []Item, placements []Placement) Result {
	placedIDs := make(map[string]bool, len(placements))
	var totalWeight, totalVolume float64
	for _, p := range placements {
		placedIDs[p.ItemID] = true
		totalWeight += p.Weight
		totalVolume += p.VolumeCM3()
	}

	var unplaced []string
	for _, u := range units {
		if !placedIDs[u.ID] {
			unplaced = append(unplaced, u.ID)
		}
	}

	var weightEff, volEff float64
	if truck.MaxWeight > 0 {
		weightEff = (totalWeight / truck.MaxWeight) * 100
	}
	if truck.VolumeCM3() > 0 {
		volEff = (totalVolume / truck.VolumeCM3()) * 100
	}

	return Result{
		TruckSpecs:       truck,
		ItemsTotal:       len(units),
		ItemsPlaced:      len(placedIDs),
		WeightEfficiency: round2(weightEff),
		VolumeEfficiency: round2(volEff),
		Placements:       placements,
		UnplacedItemIDs:  unplaced,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Statistics aggregates a manifest's unit-expanded shape, independent of
// any particular truck.
type Statistics struct {
	TotalItems        int     `json:"total_items"`
	TotalWeight       float64 `json:"total_weight"`
	TotalVolumeM3     float64 `json:"total_volume_m3"`
	TotalFloorAreaM2  float64 `json:"total_floor_area_m2"`
	MaxLengthCM       float64 `json:"max_length_cm"`
	MaxWidthCM        float64 `json:"max_width_cm"`
	MaxHeightCM       float64 `json:"max_height_cm"`
	MaxWeightItem     float64 `json:"max_weight_item"`
	NonStackableItems int     `json:"non_stackable_items"`
	OversizedItems    int     `json:"oversized_items"`
}

// OversizedEnvelope is the reference envelope (cm) beyond which an item
// is flagged "oversized" for manual handling review, ported from the
// original implementation's hardcoded reference trailer dimensions.
var OversizedEnvelope = struct{ Length, Width, Height float64 }{Length: 1200, Width: 248, Height: 260}

// FloorAreaWeight is the per-unit floor-area consumption multiplier: a
// non-stackable item claims its full footprint, a stackable one only a
// fraction of it since other items can share the column above it.
const (
	FloorAreaWeightNonStackable = 1.0
	FloorAreaWeightStackable    = 0.35
)

// CalculateStatistics computes aggregate manifest statistics over the
// unit-expanded item set.
func CalculateStatistics(items []Item) Statistics {
	units := ExpandItems(items)
	if len(units) == 0 {
		return Statistics{}
	}

	var stats Statistics
	stats.TotalItems = len(units)
	for _, u := range units {
		stats.TotalWeight += u.Weight
		stats.TotalVolumeM3 += u.VolumeM3()
		floorWeight := FloorAreaWeightStackable
		if !u.Stackable {
			floorWeight = FloorAreaWeightNonStackable
		}
		stats.TotalFloorAreaM2 += (u.FootprintCM2() / 10_000.0) * floorWeight

		if u.Length > stats.MaxLengthCM {
			stats.MaxLengthCM = u.Length
		}
		if u.Width > stats.MaxWidthCM {
			stats.MaxWidthCM = u.Width
		}
		if u.Height > stats.MaxHeightCM {
			stats.MaxHeightCM = u.Height
		}
		if u.Weight > stats.MaxWeightItem {
			stats.MaxWeightItem = u.Weight
		}
		if !u.Stackable {
			stats.NonStackableItems++
		}
		if u.Length > OversizedEnvelope.Length || u.Width > OversizedEnvelope.Width || u.Height > OversizedEnvelope.Height {
			stats.OversizedItems++
		}
	}
	return stats
}

// Project ties a manifest, truck catalog, and planner configuration
// together for save/load.
type Project struct {
	Name    string        `json:"name"`
	Items   []Item        `json:"items"`
	Trucks  []TruckSpecs  `json:"trucks"`
	Config  PlannerConfig `json:"config"`
	Results []Result      `json:"results,omitempty"`
}

// NewProject returns an empty project with default planner config.
func NewProject() Project {
	return Project{
		Name:   "Untitled",
		Items:  []Item{},
		Trucks: []TruckSpecs{},
		Config: DefaultPlannerConfig(),
	}
}
