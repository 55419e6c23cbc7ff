package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/roomfit/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios(7, model.DefaultFitSettings())

	require.Len(t, scenarios, 5)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, int64(7), scenarios[0].Seed)
	assert.Equal(t, int64(8), scenarios[1].Seed)
	assert.Equal(t, 60, scenarios[2].Settings.SeedPointCount)
	assert.Len(t, scenarios[3].Settings.Angles, 36)
	assert.Equal(t, "Parallel Search", scenarios[4].Name)
	assert.True(t, scenarios[4].Settings.Parallel)

	// The base settings are not modified by the variations
	assert.Equal(t, 30, scenarios[0].Settings.SeedPointCount)
	assert.Len(t, scenarios[0].Settings.Angles, 12)
	assert.False(t, scenarios[0].Settings.Parallel)
}

func TestBuildDefaultScenariosFromParallel(t *testing.T) {
	base := model.DefaultFitSettings()
	base.Parallel = true
	scenarios := BuildDefaultScenarios(1, base)

	last := scenarios[len(scenarios)-1]
	assert.Equal(t, "Sequential Search", last.Name)
	assert.False(t, last.Settings.Parallel)
}

func TestCompareScenarios(t *testing.T) {
	preset, ok := model.GetPreset("rectangle")
	require.True(t, ok)

	scenarios := []ComparisonScenario{
		{Name: "A", Seed: 1, Settings: model.DefaultFitSettings()},
		{Name: "B", Seed: 2, Settings: model.DefaultFitSettings()},
	}
	results := CompareScenarios(scenarios, preset.Outline)

	require.Len(t, results, 2)
	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name, "results keep scenario order")
		assert.True(t, r.Result.Valid)
		assert.Greater(t, r.Area, 0.0)
		assert.LessOrEqual(t, r.Area, 32.0)
		assert.InDelta(t, r.Area/32.0*100, r.Coverage, 1e-9)
	}

	best := BestScenario(results)
	require.GreaterOrEqual(t, best, 0)
	for _, r := range results {
		assert.GreaterOrEqual(t, results[best].Area, r.Area)
	}
}

func TestBestScenarioNoValidResults(t *testing.T) {
	results := []ComparisonResult{
		{Result: model.FitResult{Valid: false}},
		{Result: model.FitResult{Valid: false}},
	}
	assert.Equal(t, -1, BestScenario(results))
	assert.Equal(t, -1, BestScenario(nil))
}

func TestCompareScenariosWithLoggerTagsScenario(t *testing.T) {
	preset, ok := model.GetPreset("square")
	require.True(t, ok)

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	scenarios := []ComparisonScenario{{Name: "Only", Seed: 1, Settings: model.DefaultFitSettings()}}
	results := CompareScenariosWithLogger(log, scenarios, preset.Outline)

	require.Len(t, results, 1)
	require.NotEmpty(t, hook.AllEntries())
	for _, e := range hook.AllEntries() {
		assert.Equal(t, "Only", e.Data["scenario"])
	}
}
