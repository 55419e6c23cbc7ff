package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/piwi3910/roomfit/internal/model"
)

// ComparisonScenario defines a named seed and set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Seed     int64
	Settings model.FitSettings
}

// ComparisonResult holds the fit result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Result   model.FitResult
	Area     float64
	Coverage float64 // percent of the boundary area
}

// CompareScenarios runs the fitter for each scenario and returns the results
// in scenario order. This enables side-by-side comparison of different
// search parameters (e.g., seeds, angle steps, parallel search).
func CompareScenarios(scenarios []ComparisonScenario, boundary model.Outline) []ComparisonResult {
	return CompareScenariosWithLogger(logrus.StandardLogger(), scenarios, boundary)
}

// CompareScenariosWithLogger is CompareScenarios with every fit logging to
// log, tagged with the scenario name.
func CompareScenariosWithLogger(log logrus.FieldLogger, scenarios []ComparisonScenario, boundary model.Outline) []ComparisonResult {
	edges := boundary.Edges()
	boundaryArea := boundary.Area()
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		f := New(scenario.Settings)
		f.Log = log.WithField("scenario", scenario.Name)
		rect := f.Fit(edges, scenario.Seed)
		result := rect.Result()

		results = append(results, ComparisonResult{
			Scenario: scenario,
			Result:   result,
			Area:     result.Area(),
			Coverage: result.Coverage(boundaryArea),
		})
	}

	return results
}

// BestScenario returns the index of the result with the largest valid area,
// or -1 when no scenario found a rectangle.
func BestScenario(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if !r.Result.Valid {
			continue
		}
		if best < 0 || r.Area > results[best].Area {
			best = i
		}
	}
	return best
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current seed and settings, varying key parameters to show what-if
// alternatives.
func BuildDefaultScenarios(seed int64, baseSettings model.FitSettings) []ComparisonScenario {
	baseSettings = baseSettings.Normalize()
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Seed:     seed,
			Settings: baseSettings,
		},
	}

	// Scenario: different random starting points
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Seed %d", seed+1),
		Seed:     seed + 1,
		Settings: baseSettings,
	})

	// Scenario: twice as many starting points
	moreSeeds := baseSettings
	moreSeeds.SeedPointCount = baseSettings.SeedPointCount * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("%d Seed Points", moreSeeds.SeedPointCount),
		Seed:     seed,
		Settings: moreSeeds,
	})

	// Scenario: finer angle sweep
	fineAngles := baseSettings
	fineAngles.Angles = model.SteppedRange(0, 175, 5)
	scenarios = append(scenarios, ComparisonScenario{
		Name:     "Angles every 5°",
		Seed:     seed,
		Settings: fineAngles,
	})

	// Scenario: the other search mode
	otherMode := baseSettings
	otherMode.Parallel = !baseSettings.Parallel
	name := "Parallel Search"
	if baseSettings.Parallel {
		name = "Sequential Search"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Seed:     seed,
		Settings: otherMode,
	})

	return scenarios
}
