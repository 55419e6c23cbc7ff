package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/roomfit/internal/model"
)

// FileExtension is the extension used for saved project files.
const FileExtension = ".roomfit"

// SaveProject writes a project as JSON, creating parent directories.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project file. Missing settings fall back to defaults
// and a stored result must belong to a boundary with at least three vertices.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}

	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}

	if p.Boundary.Outline == nil {
		p.Boundary.Outline = model.Outline{}
	}
	if len(p.Boundary.Outline) > 0 {
		if err := p.Boundary.Outline.Validate(); err != nil {
			return model.Project{}, fmt.Errorf("invalid project boundary: %w", err)
		}
	}
	if p.Result != nil && len(p.Boundary.Outline) == 0 {
		return model.Project{}, fmt.Errorf("invalid project: result without a boundary")
	}
	p.Settings = p.Settings.Normalize()
	return p, nil
}
