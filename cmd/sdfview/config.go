package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
	"github.com/soypat/sdfcat/catalog"
	"github.com/soypat/sdfcat/sdfeval"
	"gopkg.in/yaml.v3"
)

// Config holds the evaluation defaults. Command line flags override values
// loaded from a YAML file.
type Config struct {
	Resolution int     `yaml:"resolution"`
	Time       float32 `yaml:"time"`
	Seed       uint32  `yaml:"seed"`
	// Workers limits evaluation goroutines. Zero uses all available processors.
	Workers int          `yaml:"workers"`
	Bounds  BoundsConfig `yaml:"bounds"`
}

// BoundsConfig is the sampled box, in the YAML form `min: [x, y, z]`.
type BoundsConfig struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	bb := catalog.Bounds()
	return &Config{
		Resolution: sdfeval.DefaultResolution,
		Seed:       sdfcat.DefaultSeed,
		Bounds: BoundsConfig{
			Min: [3]float32{bb.Min.X, bb.Min.Y, bb.Min.Z},
			Max: [3]float32{bb.Max.X, bb.Max.Y, bb.Max.Z},
		},
	}
}

// LoadConfig reads a YAML configuration file. Fields absent from the file keep
// their default values. Unknown fields are an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration describes a usable grid.
func (cfg *Config) Validate() error {
	if cfg.Workers < 0 {
		return fmt.Errorf("negative worker count %d", cfg.Workers)
	}
	return cfg.Grid().Validate()
}

// Context returns the evaluation context.
func (cfg *Config) Context() sdfcat.Context {
	return sdfcat.Context{Time: cfg.Time, Seed: cfg.Seed}
}

// Box returns the configured bounds.
func (cfg *Config) Box() ms3.Box {
	return ms3.Box{
		Min: ms3.Vec{X: cfg.Bounds.Min[0], Y: cfg.Bounds.Min[1], Z: cfg.Bounds.Min[2]},
		Max: ms3.Vec{X: cfg.Bounds.Max[0], Y: cfg.Bounds.Max[1], Z: cfg.Bounds.Max[2]},
	}
}

// Grid returns the node grid over the configured bounds.
func (cfg *Config) Grid() sdfeval.NodeGrid {
	return sdfeval.NodeGrid{Bounds: cfg.Box(), Resolution: cfg.Resolution}
}
