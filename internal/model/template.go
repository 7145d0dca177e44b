package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate represents a reusable project configuration that
// captures a manifest, truck catalog, and planner config but not
// optimization results.
type ProjectTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Items       []Item        `json:"items"`
	Trucks      []TruckSpecs  `json:"trucks"`
	Config      PlannerConfig `json:"config"`
}

// NewProjectTemplate creates a new template from the given project data.
// It copies items, trucks, and config but intentionally excludes results.
func NewProjectTemplate(name, description string, items []Item, trucks []TruckSpecs, config PlannerConfig) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       copyItems(items),
		Trucks:      copyTrucks(trucks),
		Config:      config,
	}
}

// ToProject creates a new Project from this template. Items are rebuilt
// with NewItem, so each item's ID is reset to its reference.
func (t ProjectTemplate) ToProject(projectName string) Project {
	items := make([]Item, len(t.Items))
	for i, it := range t.Items {
		item := NewItem(it.Reference, it.Length, it.Width, it.Height, it.Weight, it.Quantity)
		item.Fragile = it.Fragile
		item.Stackable = it.Stackable
		items[i] = item
	}

	trucks := make([]TruckSpecs, len(t.Trucks))
	copy(trucks, t.Trucks)

	return Project{
		Name:   projectName,
		Items:  items,
		Trucks: trucks,
		Config: t.Config,
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ProjectTemplate{}}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	return cp
}

func copyTrucks(trucks []TruckSpecs) []TruckSpecs {
	if trucks == nil {
		return []TruckSpecs{}
	}
	cp := make([]TruckSpecs, len(trucks))
	copy(cp, trucks)
	return cp
}
