package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/roomfit/internal/model"
)

// LoadSettings reads fit settings from a TOML file. Keys that are absent keep
// their default values; unknown keys are rejected so typos do not go unnoticed.
func LoadSettings(path string) (model.FitSettings, error) {
	return LoadSettingsOnto(path, model.DefaultFitSettings())
}

// LoadSettingsOnto decodes a TOML settings file over base. Keys that are
// absent keep the value from base. base's slices are not modified.
func LoadSettingsOnto(path string, base model.FitSettings) (model.FitSettings, error) {
	settings := base
	settings.Angles = append([]float64(nil), base.Angles...)
	settings.AspectRatios = append([]float64(nil), base.AspectRatios...)
	md, err := toml.DecodeFile(path, &settings)
	if err != nil {
		return model.FitSettings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return model.FitSettings{}, fmt.Errorf("unknown settings in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := validateSettings(settings); err != nil {
		return model.FitSettings{}, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings.Normalize(), nil
}

// SaveSettings writes fit settings as TOML, creating parent directories.
func SaveSettings(path string, settings model.FitSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(settings); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return f.Close()
}

// validateSettings rejects values Normalize would silently replace.
func validateSettings(s model.FitSettings) error {
	if s.SeedPointCount < 0 {
		return errors.New("seed_point_count must not be negative")
	}
	if s.MinimumHeightGain < 0 {
		return errors.New("minimum_height_gain must not be negative")
	}
	for _, r := range s.AspectRatios {
		if r <= 0 {
			return fmt.Errorf("aspect ratio %g must be positive", r)
		}
	}
	return nil
}
