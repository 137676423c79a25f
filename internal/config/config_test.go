package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Lattice.Size)
	assert.Equal(t, 500, cfg.Lattice.MaxSteps)
	assert.Equal(t, 0.85, cfg.Lattice.Margin)
	assert.True(t, cfg.Environment.UseCurves)
	assert.Equal(t, "grayscale", cfg.Render.Scheme)
	assert.Equal(t, "snowflake.png", cfg.Output.Image)
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Lattice.Size)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sfgen.yaml")
	body := "lattice:\n  size: 64\n  seed: 7\nrender:\n  scheme: blackwhite\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Lattice.Size)
	assert.Equal(t, int64(7), cfg.Lattice.Seed)
	assert.Equal(t, "blackwhite", cfg.Render.Scheme)
	// Untouched values keep their defaults.
	assert.Equal(t, 500, cfg.Lattice.MaxSteps)
	assert.Equal(t, 0.85, cfg.Lattice.Margin)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lattice:\n  size: -3\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)

	cfg := base
	cfg.Lattice.Margin = 1.2
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.Environment.MinGamma = 0.9
	cfg.Environment.MaxGamma = 0.5
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.Environment.CurveSteps = 100
	cfg.Lattice.MaxSteps = 500
	assert.Error(t, cfg.Validate(), "curve budget below max_steps must fail")

	cfg = base
	cfg.Render.Layers = -1
	assert.Error(t, cfg.Validate())
}

func TestCurveStepBudget(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, cfg.Lattice.MaxSteps+1, cfg.CurveStepBudget())

	cfg.Environment.CurveSteps = 1000
	assert.Equal(t, 1000, cfg.CurveStepBudget())
}
