package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cargoplan/loadplanner/internal/model"
)

// SaveProject writes a project manifest, truck catalog, and config to a
// JSON file at path, creating parent directories as needed.
func SaveProject(path string, proj model.Project) error {
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project JSON file from path.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var proj model.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	return proj, nil
}

// SharedProject wraps a project with sharing metadata for hand-off
// between planners.
type SharedProject struct {
	Project  model.Project `json:"project"`
	Author   string        `json:"author,omitempty"`
	Notes    string        `json:"notes,omitempty"`
	SharedAt string        `json:"shared_at"`
}

// ExportShared writes a project plus sharing metadata to path.
func ExportShared(path string, proj model.Project, author, notes string) error {
	shared := SharedProject{
		Project:  proj,
		Author:   author,
		Notes:    notes,
		SharedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(shared, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal shared project: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write shared project file: %w", err)
	}
	return nil
}

// ImportShared reads a shared project file from path.
func ImportShared(path string) (SharedProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SharedProject{}, fmt.Errorf("failed to read shared project file: %w", err)
	}
	var shared SharedProject
	if err := json.Unmarshal(data, &shared); err != nil {
		return SharedProject{}, fmt.Errorf("failed to parse shared project file: %w", err)
	}
	return shared, nil
}
