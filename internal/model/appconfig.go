package model

import "hash/fnv"

// SeedName is hashed to produce the default fitter seed, so every run on the
// same boundary picks the same random starting points.
const SeedName = "roomfit"

// DefaultSeed returns the FNV-1a hash of SeedName.
func DefaultSeed() int64 {
	return SeedFromString(SeedName)
}

// SeedFromString derives a fitter seed from an arbitrary string.
func SeedFromString(s string) int64 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int64(h.Sum32())
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default fitter settings applied to new projects
	DefaultSeed              int64   `json:"default_seed"`
	DefaultSeedPointCount    int     `json:"default_seed_point_count"`
	DefaultMinimumHeightGain float64 `json:"default_minimum_height_gain"`
	DefaultMaxSeedAttempts   int     `json:"default_max_seed_attempts"`
	DefaultParallel          bool    `json:"default_parallel"`

	// Application preferences
	LogLevel       string   `json:"log_level"` // "debug", "info", "warn", "error"
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultFitSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultFitSettings()
	return AppConfig{
		DefaultSeed:              DefaultSeed(),
		DefaultSeedPointCount:    defaults.SeedPointCount,
		DefaultMinimumHeightGain: defaults.MinimumHeightGain,
		DefaultMaxSeedAttempts:   defaults.MaxSeedAttempts,
		DefaultParallel:          defaults.Parallel,
		LogLevel:                 "info",
		RecentProjects:           []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a FitSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *FitSettings) {
	s.SeedPointCount = c.DefaultSeedPointCount
	s.MinimumHeightGain = c.DefaultMinimumHeightGain
	s.MaxSeedAttempts = c.DefaultMaxSeedAttempts
	s.Parallel = c.DefaultParallel
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
