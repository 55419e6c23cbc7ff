package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/roomfit/internal/model"
)

func TestFitParallelFindsRectangle(t *testing.T) {
	edges := presetEdges(t, "u-room")

	rect, err := FitParallel(context.Background(), edges, testSeed, model.DefaultFitSettings())
	require.NoError(t, err)
	require.True(t, rect.IsValid())
	assert.LessOrEqual(t, rect.Area(), 42.0, "cannot exceed the U room's area")
	assertCornersInside(t, edges, rect)
}

func TestFitParallelIsReproducible(t *testing.T) {
	edges := presetEdges(t, "l-room")
	settings := model.DefaultFitSettings()

	a, err := FitParallel(context.Background(), edges, testSeed, settings)
	require.NoError(t, err)
	b, err := FitParallel(context.Background(), edges, testSeed, settings)
	require.NoError(t, err)

	assert.Equal(t, a.Result(), b.Result(), "scheduling must not change the result")
}

func TestFitParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rect, err := FitParallel(ctx, squareEdges(10), testSeed, model.DefaultFitSettings())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, rect.IsValid())
}

func TestFitParallelEmptyEdges(t *testing.T) {
	f, _ := quietFitter(model.FitSettings{Parallel: true})
	rect, err := f.FitContext(context.Background(), nil, testSeed)

	require.NoError(t, err, "invalid input is logged, not returned")
	assert.False(t, rect.IsValid())
}

func TestFitParallelNeverWorseThanSequential(t *testing.T) {
	if testing.Short() {
		t.Skip("sweeps every preset over many seeds")
	}
	for _, name := range model.GetPresetNames() {
		edges := presetEdges(t, name)
		for seed := int64(0); seed < 20; seed++ {
			sequential := NewInscribedRectangle(edges, seed)
			parallel, err := FitParallel(context.Background(), edges, seed, model.DefaultFitSettings())
			require.NoError(t, err)

			assert.GreaterOrEqual(t, parallel.Area(), sequential.Area(), "%s seed %d", name, seed)
			assert.Equal(t, sequential.IsValid(), parallel.IsValid(), "%s seed %d", name, seed)
		}
	}
}

func TestSearchParallelMatchesSearchChain(t *testing.T) {
	edges := presetEdges(t, "l-room")
	f, _ := quietFitter(model.DefaultFitSettings())

	points, ok := f.seedPoints(edges, testSeed)
	require.True(t, ok)

	parallel, err := f.searchParallel(context.Background(), edges, points)
	require.NoError(t, err)
	sequential, err := f.searchChain(context.Background(), edges, points, f.Settings.Angles, candidate{})
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}
