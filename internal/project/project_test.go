package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/roomfit/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "office"+FileExtension)

	p := model.NewProject()
	p.Name = "Office"
	p.Boundary = model.NewBoundary("Office", model.Outline{model.Pt(0, 0), model.Pt(8, 0), model.Pt(8, 4), model.Pt(0, 4)})
	p.Seed = 42
	center := model.Pt(4, 2)
	p.Result = &model.FitResult{Valid: true, Center: &center, Width: 7.5, Height: 3.75, Seed: 42}

	require.NoError(t, SaveProject(path, p))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, "Office", loaded.Name)
	assert.Equal(t, p.Boundary, loaded.Boundary)
	assert.Equal(t, int64(42), loaded.Seed)
	require.NotNil(t, loaded.Result)
	assert.Equal(t, *p.Result.Center, *loaded.Result.Center)
	assert.Equal(t, p.Settings, loaded.Settings)
}

func TestLoadProjectFillsDefaultSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.roomfit")
	data := `{"id":"abc","name":"Bare","boundary":{"outline":[{"x":0,"y":0},{"x":2,"y":0},{"x":2,"y":2}]},"seed":1}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSeedPointCount, loaded.Settings.SeedPointCount)
	assert.Len(t, loaded.Settings.Angles, 12)
	assert.Len(t, loaded.Boundary.Outline, 3)
}

func TestLoadProjectEmptyBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.roomfit")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Empty"}`), 0644))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Boundary.Outline)
	assert.Empty(t, loaded.Boundary.Outline)
}

func TestLoadProjectRejectsBadBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.roomfit")
	data := `{"boundary":{"outline":[{"x":0,"y":0},{"x":2,"y":0}]}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadProject(path)
	assert.Error(t, err)
}

func TestLoadProjectRejectsOrphanResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orphan.roomfit")
	require.NoError(t, os.WriteFile(path, []byte(`{"result":{"valid":true}}`), 0644))

	_, err := LoadProject(path)
	assert.Error(t, err)
}

func TestLoadProjectErrors(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "missing.roomfit"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.roomfit")
	require.NoError(t, os.WriteFile(path, []byte("{{"), 0644))
	_, err = LoadProject(path)
	assert.Error(t, err)
}
