package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/roomfit/internal/model"
)

// boundaryDocument is the on-disk shape of a JSON or YAML boundary file.
type boundaryDocument struct {
	Name   string          `json:"name" yaml:"name"`
	Points []model.Point2D `json:"points" yaml:"points"`
}

// ImportJSON imports a boundary from a JSON document of the form
// {"name": "...", "points": [{"x": 0, "y": 0}, ...]}.
func ImportJSON(path string) ImportResult {
	return importDocument(path, "JSON", json.Unmarshal)
}

// ImportYAML imports a boundary from a YAML document with a name and a
// points list.
func ImportYAML(path string) ImportResult {
	return importDocument(path, "YAML", yaml.Unmarshal)
}

// ParseBoundaryYAML decodes a boundary document held in memory.
func ParseBoundaryYAML(data []byte) ImportResult {
	return parseDocument(data, "YAML", yaml.Unmarshal)
}

func importDocument(path, format string, unmarshal func([]byte, any) error) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return parseDocument(data, format, unmarshal)
}

func parseDocument(data []byte, format string, unmarshal func([]byte, any) error) ImportResult {
	result := ImportResult{}

	var doc boundaryDocument
	if err := unmarshal(data, &doc); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse %s: %v", format, err))
		return result
	}
	if len(doc.Points) == 0 {
		result.Errors = append(result.Errors, "Document has no points")
		return result
	}

	result.Boundary.Name = doc.Name
	return finishOutline(result, model.Outline(doc.Points))
}
