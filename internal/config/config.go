// Package config provides configuration loading and validation for the
// snowflake tools. Values come from an embedded defaults file, optionally
// overlaid with a user YAML file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tool configuration.
type Config struct {
	Lattice     LatticeConfig     `yaml:"lattice"`
	Environment EnvironmentConfig `yaml:"environment"`
	Render      RenderConfig      `yaml:"render"`
	Output      OutputConfig      `yaml:"output"`
}

// LatticeConfig mirrors lattice.Config.
type LatticeConfig struct {
	Size     int     `yaml:"size"`
	MaxSteps int     `yaml:"max_steps"`
	Margin   float64 `yaml:"margin"`
	Seed     int64   `yaml:"seed"`
}

// EnvironmentConfig controls how the physical constants are produced.
type EnvironmentConfig struct {
	// UseCurves drives the constants from generated spline trajectories
	// instead of the fixed defaults.
	UseCurves  bool    `yaml:"use_curves"`
	CurveSteps int     `yaml:"curve_steps"`
	MinGamma   float64 `yaml:"min_gamma"`
	MaxGamma   float64 `yaml:"max_gamma"`
}

// RenderConfig controls image export.
type RenderConfig struct {
	Scheme       string `yaml:"scheme"`
	ShowBoundary bool   `yaml:"show_boundary"`
	Rotate       bool   `yaml:"rotate"`
	Scale        bool   `yaml:"scale"`
	Crop         bool   `yaml:"crop"`
	CropMargin   int    `yaml:"crop_margin"`
	Resize       int    `yaml:"resize"`
	Layers       int    `yaml:"layers"`
	Paper        bool   `yaml:"paper"`
}

// OutputConfig names the produced files.
type OutputConfig struct {
	Image        string `yaml:"image"`
	LayerPattern string `yaml:"layer_pattern"`
	Telemetry    string `yaml:"telemetry"`
}

// Default returns the embedded default configuration.
func Default() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the validated defaults unchanged.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the constraints that must fail fast at construction.
func (c *Config) Validate() error {
	if c.Lattice.Size <= 0 {
		return fmt.Errorf("config: lattice size must be positive, got %d", c.Lattice.Size)
	}
	if c.Lattice.MaxSteps < 0 {
		return fmt.Errorf("config: max_steps must be non-negative, got %d", c.Lattice.MaxSteps)
	}
	if c.Lattice.Margin <= 0 || c.Lattice.Margin > 1 {
		return fmt.Errorf("config: margin %v not in (0, 1]", c.Lattice.Margin)
	}
	if c.Environment.MinGamma > c.Environment.MaxGamma {
		return fmt.Errorf("config: min_gamma %v exceeds max_gamma %v",
			c.Environment.MinGamma, c.Environment.MaxGamma)
	}
	if c.Environment.UseCurves && c.Environment.CurveSteps != 0 &&
		c.Environment.CurveSteps < c.Lattice.MaxSteps {
		return fmt.Errorf("config: curve_steps %d below max_steps %d",
			c.Environment.CurveSteps, c.Lattice.MaxSteps)
	}
	if c.Render.Layers < 0 {
		return fmt.Errorf("config: layers must be non-negative, got %d", c.Render.Layers)
	}
	return nil
}

// CurveStepBudget resolves the curve step budget: the explicit value, or
// max_steps+1 so every environment refresh stays in range.
func (c *Config) CurveStepBudget() int {
	if c.Environment.CurveSteps > 0 {
		return c.Environment.CurveSteps
	}
	return c.Lattice.MaxSteps + 1
}
