package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/roomfit/internal/model"
)

// WriteJSON writes the fit result as indented JSON.
func WriteJSON(w io.Writer, result model.FitResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode fit result: %w", err)
	}
	return nil
}

// ExportJSON writes the fit result to a JSON file.
func ExportJSON(path string, result model.FitResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteJSON(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
