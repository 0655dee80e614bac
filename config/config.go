// Package config holds icegeom configuration, loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value outside its domain.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all icegeom configuration.
type Config struct {
	// Geometry options of the sub-shelf melt parameterization
	Pico Pico `yaml:"pico"`

	// Process group settings
	Run Run `yaml:"run"`

	// Logging
	Logging Logging `yaml:"logging"`
}

// Pico configures the geometry decomposition.
type Pico struct {
	// Treat ice rises as part of the shelf they are embedded in.
	ExcludeIceRises bool `yaml:"exclude_ice_rises"`

	// Bed elevation (m) above which ice-free ocean counts as continental shelf.
	ContinentalShelfDepth float64 `yaml:"continental_shelf_depth"`

	// Maximum number of boxes per ice shelf.
	NumberOfBoxes int `yaml:"number_of_boxes"`

	// Upper bound on wavefront rounds; 0 disables the bound.
	MaxDistanceRounds int `yaml:"max_distance_rounds"`
}

// Run configures the cooperating ranks.
type Run struct {
	Ranks int `yaml:"ranks"`
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Pico: Pico{
			ExcludeIceRises:       true,
			ContinentalShelfDepth: -800,
			NumberOfBoxes:         5,
		},
		Run: Run{
			Ranks: 1,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied after parsing.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks every value against its domain.
func (c *Config) Validate() error {
	if c.Pico.NumberOfBoxes < 1 {
		return fmt.Errorf("%w: pico.number_of_boxes must be >= 1, got %d", ErrInvalidConfig, c.Pico.NumberOfBoxes)
	}
	if c.Pico.MaxDistanceRounds < 0 {
		return fmt.Errorf("%w: pico.max_distance_rounds must be >= 0, got %d", ErrInvalidConfig, c.Pico.MaxDistanceRounds)
	}
	if c.Run.Ranks < 1 {
		return fmt.Errorf("%w: run.ranks must be >= 1, got %d", ErrInvalidConfig, c.Run.Ranks)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format must be json or console, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// applyEnvOverrides applies ICEGEOM_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ICEGEOM_RANKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Run.Ranks = n
		}
	}
	if v := os.Getenv("ICEGEOM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
