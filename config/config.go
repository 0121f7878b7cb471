package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorustyt/gonavgrid/common"
	"github.com/gorustyt/gonavgrid/common/log"
	"github.com/gorustyt/gonavgrid/navgrid"
	"github.com/gorustyt/gonavgrid/sampler"
	"gopkg.in/yaml.v3"
)

const (
	MinCellSpacing     = 1
	MaxCellSpacing     = 100
	DefaultCellSpacing = 10
	DefaultOutputFile  = "data.txt"
	DefaultOutputDir   = "NavData"
	DefaultInterval    = 50 * time.Millisecond
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	CellSpacing           int           `yaml:"cell_spacing"`
	ObstacleCost          int           `yaml:"obstacle_cost"`
	HeightDifferenceLimit float64       `yaml:"height_difference_limit"`
	DiffusionMode         string        `yaml:"diffusion_mode"`
	StepInterval          time.Duration `yaml:"step_interval"`
	Budget                BudgetConfig  `yaml:"budget"`
	Bounds                BoundsConfig  `yaml:"bounds"`
	Trace                 TraceConfig   `yaml:"trace"`
	Output                OutputConfig  `yaml:"output"`
	Scene                 string        `yaml:"scene"`
	Log                   log.Options   `yaml:"log"`
}

type BudgetConfig struct {
	CellsPerStep       int `yaml:"cells_per_step"`
	HeightCellsPerStep int `yaml:"height_cells_per_step"`
	ObstaclesPerStep   int `yaml:"obstacles_per_step"`
}

// BoundsConfig is the bounding volume. When empty, the scene bounds are used.
type BoundsConfig struct {
	Origin []float32 `yaml:"origin"`
	Extent []float32 `yaml:"extent"`
}

type TraceConfig struct {
	Top       float32 `yaml:"top"`
	Bottom    float32 `yaml:"bottom"`
	ChunkSize float32 `yaml:"chunk_size"`
}

type OutputConfig struct {
	Dir               string `yaml:"dir"`
	File              string `yaml:"file"`
	Format            string `yaml:"format"`
	LegacyHeightQuirk bool   `yaml:"legacy_height_quirk"`
	Heatmap           string `yaml:"heatmap"`
	HeatmapScale      int    `yaml:"heatmap_scale"`
}

func NewConfig() *Config {
	c := &Config{}
	c.Reset()
	return c
}

func (cfg *Config) Reset() {
	cfg.CellSpacing = DefaultCellSpacing
	cfg.ObstacleCost = navgrid.DefaultObstacleCost
	cfg.HeightDifferenceLimit = navgrid.DefaultHeightDifferenceLimit
	cfg.DiffusionMode = navgrid.DiffusionSequential.String()
	cfg.StepInterval = DefaultInterval
	cfg.Budget = BudgetConfig{
		CellsPerStep:       navgrid.DefaultCellsPerStep,
		HeightCellsPerStep: navgrid.DefaultCellsPerStep,
		ObstaclesPerStep:   navgrid.DefaultObstaclesPerStep,
	}
	cfg.Bounds = BoundsConfig{}
	cfg.Trace = TraceConfig{
		Top:       sampler.DefaultTraceTop,
		Bottom:    sampler.DefaultTraceBottom,
		ChunkSize: sampler.DefaultChunkSize,
	}
	cfg.Output = OutputConfig{
		Dir:          DefaultOutputDir,
		File:         DefaultOutputFile,
		Format:       navgrid.FormatText.String(),
		HeatmapScale: 4,
	}
	cfg.Scene = ""
	cfg.Log.Reset()
}

// Load reads a YAML file over the defaults and clamps the result.
func Load(p string) (*Config, error) {
	cfg := NewConfig()
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", p, err)
	}
	cfg.Clamp()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clamp forces the cell spacing into its editable range.
func (cfg *Config) Clamp() {
	cfg.CellSpacing = common.Clamp(cfg.CellSpacing, MinCellSpacing, MaxCellSpacing)
}

func (cfg *Config) Validate() error {
	if _, err := navgrid.ParseDiffusionMode(cfg.DiffusionMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := navgrid.ParseFormat(cfg.Output.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if n := len(cfg.Bounds.Origin); n != 0 && n != 3 {
		return fmt.Errorf("%w: bounds.origin needs 3 values, got %d", ErrInvalid, n)
	}
	if n := len(cfg.Bounds.Extent); n != 0 && n != 3 {
		return fmt.Errorf("%w: bounds.extent needs 3 values, got %d", ErrInvalid, n)
	}
	if cfg.Trace.Top < cfg.Trace.Bottom {
		return fmt.Errorf("%w: trace.top %g below trace.bottom %g", ErrInvalid, cfg.Trace.Top, cfg.Trace.Bottom)
	}
	if cfg.StepInterval < 0 {
		return fmt.Errorf("%w: negative step_interval", ErrInvalid)
	}
	return cfg.Params().Validate()
}

// Params converts the config into generator params. Call Validate first.
func (cfg *Config) Params() navgrid.Params {
	mode, _ := navgrid.ParseDiffusionMode(cfg.DiffusionMode)
	return navgrid.Params{
		ObstacleCost:          cfg.ObstacleCost,
		HeightDifferenceLimit: cfg.HeightDifferenceLimit,
		CellsPerStep:          cfg.Budget.CellsPerStep,
		HeightCellsPerStep:    cfg.Budget.HeightCellsPerStep,
		ObstaclesPerStep:      cfg.Budget.ObstaclesPerStep,
		DiffusionMode:         mode,
	}
}

// HasBounds reports whether the config carries an explicit bounding volume.
func (cfg *Config) HasBounds() bool {
	return len(cfg.Bounds.Origin) == 3 && len(cfg.Bounds.Extent) == 3
}

func (cfg *Config) BoundsVec() (origin, extent common.Vec3) {
	copy(origin[:], cfg.Bounds.Origin)
	copy(extent[:], cfg.Bounds.Extent)
	return origin, extent
}

func (cfg *Config) OutputPath() string {
	return filepath.Join(cfg.Output.Dir, cfg.Output.File)
}

// Exporter builds the file exporter described by the output section.
func (cfg *Config) Exporter() *navgrid.FileExporter {
	format, _ := navgrid.ParseFormat(cfg.Output.Format)
	return &navgrid.FileExporter{
		Path:         cfg.OutputPath(),
		Format:       format,
		LegacyHeight: cfg.Output.LegacyHeightQuirk,
	}
}

func (cfg *Config) TraceOptions() sampler.TraceOptions {
	return sampler.TraceOptions{Top: cfg.Trace.Top, Bottom: cfg.Trace.Bottom, ChunkSize: cfg.Trace.ChunkSize}
}
