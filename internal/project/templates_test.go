package project

import (
	"path/filepath"
	"testing"

	"github.com/cargoplan/loadplanner/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	items := []model.Item{model.NewItem("Pallet", 120, 100, 100, 250, 2)}
	trucks := []model.TruckSpecs{model.NewTruckSpecs("Box Truck", 600, 240, 250, 5000)}
	cfg := model.DefaultPlannerConfig()

	tmpl := model.NewProjectTemplate("Retail Run", "Standard pallet run", items, trucks, cfg)
	store.Add(tmpl)

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	if loaded.Templates[0].Name != "Retail Run" {
		t.Errorf("expected 'Retail Run', got %q", loaded.Templates[0].Name)
	}
	if len(loaded.Templates[0].Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(loaded.Templates[0].Items))
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestSaveAndLoadTemplates_Multiple(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	cfg := model.DefaultPlannerConfig()
	store.Add(model.NewProjectTemplate("T1", "First", nil, nil, cfg))
	store.Add(model.NewProjectTemplate("T2", "Second", nil, nil, cfg))
	store.Add(model.NewProjectTemplate("T3", "Third", nil, nil, cfg))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(loaded.Templates))
	}
}
