package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorustyt/gonavgrid/common"
	"github.com/gorustyt/gonavgrid/navgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "navgen.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, navgrid.DefaultParams(), cfg.Params())
	assert.Equal(t, filepath.Join("NavData", "data.txt"), cfg.OutputPath())
	assert.False(t, cfg.HasBounds())
	assert.Equal(t, DefaultInterval, cfg.StepInterval)
	assert.Equal(t, "info", cfg.Log.Level)

	exp := cfg.Exporter()
	assert.Equal(t, navgrid.FormatText, exp.Format)
	assert.False(t, exp.LegacyHeight)
}

func TestLoadOverrides(t *testing.T) {
	p := writeConfig(t, `
cell_spacing: 25
obstacle_cost: 20
diffusion_mode: synchronized
step_interval: 10ms
budget:
  cells_per_step: 50
bounds:
  origin: [1, 2, 3]
  extent: [100, 50, 10]
trace:
  top: 500
output:
  dir: out
  format: proto
  legacy_height_quirk: true
log:
  level: debug
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.CellSpacing)
	assert.Equal(t, 10*time.Millisecond, cfg.StepInterval)

	params := cfg.Params()
	assert.Equal(t, 20, params.ObstacleCost)
	assert.Equal(t, 50, params.CellsPerStep)
	assert.Equal(t, navgrid.DefaultCellsPerStep, params.HeightCellsPerStep)
	assert.Equal(t, navgrid.DiffusionSynchronized, params.DiffusionMode)

	require.True(t, cfg.HasBounds())
	origin, extent := cfg.BoundsVec()
	assert.Equal(t, common.Vec3{1, 2, 3}, origin)
	assert.Equal(t, common.Vec3{100, 50, 10}, extent)

	opts := cfg.TraceOptions()
	assert.Equal(t, float32(500), opts.Top)
	assert.Equal(t, float32(-1000), opts.Bottom)

	exp := cfg.Exporter()
	assert.Equal(t, filepath.Join("out", "data.txt"), exp.Path)
	assert.Equal(t, navgrid.FormatProto, exp.Format)
	assert.True(t, exp.LegacyHeight)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadClampsSpacing(t *testing.T) {
	cfg, err := Load(writeConfig(t, "cell_spacing: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, MinCellSpacing, cfg.CellSpacing)

	cfg, err = Load(writeConfig(t, "cell_spacing: 500\n"))
	require.NoError(t, err)
	assert.Equal(t, MaxCellSpacing, cfg.CellSpacing)
}

func TestLoadInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"mode":     "diffusion_mode: parallel\n",
		"format":   "output:\n  format: xml\n",
		"origin":   "bounds:\n  origin: [1, 2]\n",
		"extent":   "bounds:\n  extent: [1, 2, 3, 4]\n",
		"trace":    "trace:\n  top: -5\n  bottom: 5\n",
		"interval": "step_interval: -1s\n",
	} {
		_, err := Load(writeConfig(t, body))
		assert.ErrorIs(t, err, ErrInvalid, name)
	}

	_, err := Load(writeConfig(t, "budget:\n  obstacles_per_step: 0\n"))
	assert.ErrorIs(t, err, navgrid.ErrBadParams)

	_, err = Load(writeConfig(t, "cell_spacing: [\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
