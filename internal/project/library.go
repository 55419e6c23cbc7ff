package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/roomfit/internal/model"
)

// DefaultLibraryPath returns the default file path for the boundary library.
// This is located at ~/.roomfit/boundaries.json.
func DefaultLibraryPath() string {
	return filepath.Join(DefaultConfigDir(), "boundaries.json")
}

// SaveLibrary writes the boundary library to a JSON file.
func SaveLibrary(path string, lib model.BoundaryLibrary) error {
	return writeJSON(path, lib)
}

// LoadLibrary reads a boundary library from a JSON file.
// If the file does not exist, returns an empty library.
func LoadLibrary(path string) (model.BoundaryLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewBoundaryLibrary(), nil
		}
		return model.BoundaryLibrary{}, err
	}
	var lib model.BoundaryLibrary
	if err := json.Unmarshal(data, &lib); err != nil {
		return model.BoundaryLibrary{}, err
	}
	if lib.Boundaries == nil {
		lib.Boundaries = []model.SavedBoundary{}
	}
	return lib, nil
}
