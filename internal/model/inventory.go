package model

import "github.com/google/uuid"

// ItemTemplate represents a reusable cargo-item definition, e.g. a
// recurring SKU a shipper loads repeatedly.
type ItemTemplate struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	Fragile   bool    `json:"fragile"`
	Stackable bool    `json:"stackable"`
}

// NewItemTemplate creates a new ItemTemplate with a generated ID.
func NewItemTemplate(name string, length, width, height, weight float64) ItemTemplate {
	return ItemTemplate{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Length:    length,
		Width:     width,
		Height:    height,
		Weight:    weight,
		Stackable: true,
	}
}

// ToItem converts an ItemTemplate into a manifest Item with the given
// quantity, using the template name as its reference and ID.
func (it ItemTemplate) ToItem(quantity int) Item {
	item := NewItem(it.Name, it.Length, it.Width, it.Height, it.Weight, quantity)
	item.Fragile = it.Fragile
	item.Stackable = it.Stackable
	return item
}

// TruckPreset represents a reusable truck definition for the catalog.
type TruckPreset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Class     string  `json:"class"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	MaxWeight float64 `json:"max_weight"`
	BaseCost  float64 `json:"base_cost"`
	CostPerKm float64 `json:"cost_per_km"`
}

// NewTruckPreset creates a new TruckPreset with a generated ID.
func NewTruckPreset(name, class string, length, width, height, maxWeight, baseCost, costPerKm float64) TruckPreset {
	return TruckPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Class:     class,
		Length:    length,
		Width:     width,
		Height:    height,
		MaxWeight: maxWeight,
		BaseCost:  baseCost,
		CostPerKm: costPerKm,
	}
}

// ToTruckSpecs converts a TruckPreset into a TruckSpecs. The resulting
// ID is the preset's class slug (e.g. "19t"), not its catalog-entry
// UUID: the fleet partitioner's balanced-scenario class-rank heuristic
// matches on this ID, and within one catalog each class appears once.
func (tp TruckPreset) ToTruckSpecs() TruckSpecs {
	return TruckSpecs{
		ID:        tp.Class,
		Name:      tp.Name,
		Length:    tp.Length,
		Width:     tp.Width,
		Height:    tp.Height,
		MaxWeight: tp.MaxWeight,
		BaseCost:  tp.BaseCost,
		CostPerKm: tp.CostPerKm,
	}
}

// Inventory holds the user's saved item templates and truck presets.
type Inventory struct {
	Items  []ItemTemplate `json:"items"`
	Trucks []TruckPreset  `json:"trucks"`
}

// DefaultInventory returns an inventory populated with common defaults,
// mirroring the teacher's DefaultInventory but for cargo items/trucks
// rather than cutting tools/stock sheets.
func DefaultInventory() Inventory {
	return Inventory{
		Items: []ItemTemplate{
			NewItemTemplate("Europallet 120x80", 120, 80, 144, 25),
			NewItemTemplate("Drum 58x58", 58, 58, 90, 180),
			NewItemTemplate("Crate 100x100x100", 100, 100, 100, 300),
		},
		Trucks: []TruckPreset{
			NewTruckPreset("Van 3.5T", "van", 400, 190, 190, 1200, 45000, 350),
			NewTruckPreset("Flatbed 19T", "19t", 720, 245, 240, 10000, 120000, 550),
			NewTruckPreset("Flatbed 26T", "26t", 900, 248, 250, 17000, 160000, 650),
			NewTruckPreset("Semi-trailer 40T", "40t", 1360, 248, 270, 24000, 220000, 800),
			NewTruckPreset("Lowbed 45T", "lowbed", 1200, 300, 180, 30000, 260000, 950),
		},
	}
}

// FindItemByID returns a pointer to the item template with the given ID, or nil.
func (inv *Inventory) FindItemByID(id string) *ItemTemplate {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return &inv.Items[i]
		}
	}
	return nil
}

// FindTruckByID returns a pointer to the truck preset with the given ID, or nil.
func (inv *Inventory) FindTruckByID(id string) *TruckPreset {
	for i := range inv.Trucks {
		if inv.Trucks[i].ID == id {
			return &inv.Trucks[i]
		}
	}
	return nil
}

// ItemNames returns item template names for UI dropdowns.
func (inv *Inventory) ItemNames() []string {
	names := make([]string, len(inv.Items))
	for i, it := range inv.Items {
		names[i] = it.Name
	}
	return names
}

// TruckNames returns truck preset names for UI dropdowns.
func (inv *Inventory) TruckNames() []string {
	names := make([]string, len(inv.Trucks))
	for i, t := range inv.Trucks {
		names[i] = t.Name
	}
	return names
}

// FindTruckByName returns a pointer to the first truck preset with the given name, or nil.
func (inv *Inventory) FindTruckByName(name string) *TruckPreset {
	for i := range inv.Trucks {
		if inv.Trucks[i].Name == name {
			return &inv.Trucks[i]
		}
	}
	return nil
}
