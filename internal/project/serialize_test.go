package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cargoplan/loadplanner/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.loadplan")

	proj := model.NewProject()
	proj.Name = "Spring Run"
	proj.Items = append(proj.Items, model.NewItem("Pallet", 120, 100, 100, 250, 4))
	proj.Trucks = append(proj.Trucks, model.NewTruckSpecs("Box Truck", 600, 240, 250, 5000))

	if err := SaveProject(path, proj); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if loaded.Name != "Spring Run" {
		t.Errorf("expected name 'Spring Run', got %q", loaded.Name)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Reference != "Pallet" {
		t.Errorf("expected 1 item 'Pallet', got %+v", loaded.Items)
	}
	if len(loaded.Trucks) != 1 || loaded.Trucks[0].Name != "Box Truck" {
		t.Errorf("expected 1 truck 'Box Truck', got %+v", loaded.Trucks)
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "nope.loadplan"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadProjectInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.loadplan")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSaveProjectCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "run.loadplan")

	proj := model.NewProject()
	if err := SaveProject(path, proj); err != nil {
		t.Fatalf("SaveProject should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("project file was not created")
	}
}

func TestExportAndImportShared(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.loadplanshare")

	proj := model.NewProject()
	proj.Name = "Shared Run"
	proj.Items = append(proj.Items, model.NewItem("Crate", 80, 60, 60, 40, 1))

	if err := ExportShared(path, proj, "Dana", "Fragile, keep upright"); err != nil {
		t.Fatalf("ExportShared failed: %v", err)
	}

	shared, err := ImportShared(path)
	if err != nil {
		t.Fatalf("ImportShared failed: %v", err)
	}
	if shared.Author != "Dana" {
		t.Errorf("expected author 'Dana', got %q", shared.Author)
	}
	if shared.Notes != "Fragile, keep upright" {
		t.Errorf("expected notes to round-trip, got %q", shared.Notes)
	}
	if shared.Project.Name != "Shared Run" {
		t.Errorf("expected project name 'Shared Run', got %q", shared.Project.Name)
	}
	if shared.SharedAt == "" {
		t.Error("expected non-empty SharedAt timestamp")
	}
}

func TestImportSharedMissingFile(t *testing.T) {
	_, err := ImportShared(filepath.Join(t.TempDir(), "nope.loadplanshare"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
