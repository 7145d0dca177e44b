package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cargoplan/loadplanner/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path, err := DefaultInventoryPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == "" {
		t.Fatal("expected non-empty path")
	}
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".loadplanner" {
		t.Errorf("expected parent dir .loadplanner, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_inventory.json")

	inv := model.Inventory{
		Items: []model.ItemTemplate{
			model.NewItemTemplate("Test Pallet", 120, 80, 144, 25),
		},
		Trucks: []model.TruckPreset{
			model.NewTruckPreset("Test Flatbed", "19t", 720, 245, 240, 10000, 120000, 550),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(loaded.Items))
	}
	if loaded.Items[0].Name != "Test Pallet" {
		t.Errorf("expected item name 'Test Pallet', got %q", loaded.Items[0].Name)
	}
	if loaded.Items[0].Length != 120 {
		t.Errorf("expected length 120, got %f", loaded.Items[0].Length)
	}

	if len(loaded.Trucks) != 1 {
		t.Errorf("expected 1 truck, got %d", len(loaded.Trucks))
	}
	if loaded.Trucks[0].Name != "Test Flatbed" {
		t.Errorf("expected truck name 'Test Flatbed', got %q", loaded.Trucks[0].Name)
	}
	if loaded.Trucks[0].Length != 720 {
		t.Errorf("expected length 720, got %f", loaded.Trucks[0].Length)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nonexistent", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(inv.Items) == 0 {
		t.Error("expected default items, got none")
	}
	if len(inv.Trucks) == 0 {
		t.Error("expected default trucks, got none")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default inventory file to be created")
	}
}

func TestImportInventory(t *testing.T) {
	tmpDir := t.TempDir()

	existing := model.Inventory{
		Items: []model.ItemTemplate{
			{ID: "item-001", Name: "Existing Pallet", Length: 120},
		},
		Trucks: []model.TruckPreset{
			{ID: "truck-001", Name: "Existing Flatbed", Length: 720, MaxWeight: 10000},
		},
	}

	imported := model.Inventory{
		Items: []model.ItemTemplate{
			{ID: "item-001", Name: "Duplicate Pallet", Length: 120}, // same ID, should be skipped
			{ID: "item-002", Name: "New Crate", Length: 100},        // new, should be added
		},
		Trucks: []model.TruckPreset{
			{ID: "truck-002", Name: "New Van", Length: 400, MaxWeight: 1200}, // new
		},
	}

	importPath := filepath.Join(tmpDir, "import.json")
	data, _ := json.MarshalIndent(imported, "", "  ")
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	merged, err := ImportInventory(importPath, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Items) != 2 {
		t.Errorf("expected 2 items after merge, got %d", len(merged.Items))
	}
	if merged.Items[0].Name != "Existing Pallet" {
		t.Errorf("expected first item to be 'Existing Pallet', got %q", merged.Items[0].Name)
	}
	if merged.Items[1].Name != "New Crate" {
		t.Errorf("expected second item to be 'New Crate', got %q", merged.Items[1].Name)
	}

	if len(merged.Trucks) != 2 {
		t.Errorf("expected 2 trucks after merge, got %d", len(merged.Trucks))
	}
}

func TestExportInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "export.json")

	inv := model.DefaultInventory()
	if err := ExportInventory(path, inv); err != nil {
		t.Fatalf("ExportInventory failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}

	var loaded model.Inventory
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to unmarshal exported inventory: %v", err)
	}

	if len(loaded.Items) != len(inv.Items) {
		t.Errorf("expected %d items, got %d", len(inv.Items), len(loaded.Items))
	}
	if len(loaded.Trucks) != len(inv.Trucks) {
		t.Errorf("expected %d trucks, got %d", len(inv.Trucks), len(loaded.Trucks))
	}
}

func TestItemTemplateToItem(t *testing.T) {
	it := model.ItemTemplate{
		Name: "Drum 58x58", Length: 58, Width: 58, Height: 90, Weight: 180,
		Fragile: true, Stackable: false,
	}

	item := it.ToItem(4)
	if item.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", item.Quantity)
	}
	if item.Length != 58 || item.Weight != 180 {
		t.Errorf("expected dimensions/weight copied from template, got %+v", item)
	}
	if !item.Fragile || item.Stackable {
		t.Errorf("expected Fragile=true, Stackable=false copied from template, got %+v", item)
	}
}

func TestTruckPresetToTruckSpecs(t *testing.T) {
	tp := model.NewTruckPreset("Semi-trailer 40T", "40t", 1360, 248, 270, 24000, 220000, 800)
	specs := tp.ToTruckSpecs()

	if specs.ID != "40t" {
		t.Errorf("expected TruckSpecs ID to be the class slug '40t', got %q", specs.ID)
	}
	if specs.Length != 1360 || specs.MaxWeight != 24000 {
		t.Errorf("expected dimensions/weight copied from preset, got %+v", specs)
	}
}

func TestInventoryFindByName(t *testing.T) {
	inv := model.DefaultInventory()

	truck := inv.FindTruckByName("Van 3.5T")
	if truck == nil {
		t.Fatal("expected to find 'Van 3.5T'")
	}
	if truck.MaxWeight != 1200 {
		t.Errorf("expected max weight 1200, got %f", truck.MaxWeight)
	}

	missing := inv.FindTruckByName("Nonexistent Truck")
	if missing != nil {
		t.Error("expected nil for nonexistent truck")
	}
}

func TestInventoryItemAndTruckNames(t *testing.T) {
	inv := model.DefaultInventory()

	itemNames := inv.ItemNames()
	if len(itemNames) != len(inv.Items) {
		t.Errorf("expected %d item names, got %d", len(inv.Items), len(itemNames))
	}

	truckNames := inv.TruckNames()
	if len(truckNames) != len(inv.Trucks) {
		t.Errorf("expected %d truck names, got %d", len(inv.Trucks), len(truckNames))
	}
}
