// Package config holds mazegen configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/samdwyer/mazegen/internal/maze"
)

// Environment variables read by FromEnv.
const (
	EnvWidth     = "MAZEGEN_WIDTH"
	EnvHeight    = "MAZEGEN_HEIGHT"
	EnvSeed      = "MAZEGEN_SEED"
	EnvAlgorithm = "MAZEGEN_ALGORITHM"
	EnvStepDelay = "MAZEGEN_STEP_DELAY"
)

const (
	DefaultWidth     = 30
	DefaultHeight    = 20
	DefaultStepDelay = 10 * time.Millisecond
)

// ErrInvalidConfig is returned by Validate and FromEnv.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds maze generation options.
type Config struct {
	Width  int
	Height int

	// Seed for the random source. Used for reproducible mazes.
	// A seed of 0 means a seed is derived from the wall clock.
	Seed int64

	Algorithm maze.Algorithm

	// StepDelay is the pause after each cell joins the maze while animating.
	StepDelay time.Duration

	// Headless prints the finished maze instead of opening the terminal UI.
	Headless bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Algorithm: maze.DefaultAlgorithm,
		StepDelay: DefaultStepDelay,
	}
}

// FromEnv returns Default overridden by any MAZEGEN_* environment variables.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvWidth); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvWidth, v, ErrInvalidConfig)
		}
		cfg.Width = n
	}
	if v, ok := lookup(EnvHeight); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvHeight, v, ErrInvalidConfig)
		}
		cfg.Height = n
	}
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvSeed, v, ErrInvalidConfig)
		}
		cfg.Seed = n
	}
	if v, ok := lookup(EnvAlgorithm); ok {
		a, err := maze.ParseAlgorithm(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w: %w", EnvAlgorithm, ErrInvalidConfig, err)
		}
		cfg.Algorithm = a
	}
	if v, ok := lookup(EnvStepDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvStepDelay, v, ErrInvalidConfig)
		}
		cfg.StepDelay = d
	}

	return cfg, nil
}

// Validate checks the configuration before a maze is generated.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size %dx%d: %w: %w", c.Width, c.Height, ErrInvalidConfig, maze.ErrInvalidDimension)
	}
	if c.StepDelay < 0 {
		return fmt.Errorf("step delay %v is negative: %w", c.StepDelay, ErrInvalidConfig)
	}
	if _, err := maze.ParseAlgorithm(string(c.Algorithm)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// GeneratorOptions returns the maze options implied by the config.
// A zero Seed leaves seeding to the generator's wall-clock default.
func (c Config) GeneratorOptions() []maze.Option {
	algorithm := c.Algorithm
	if algorithm == "" {
		algorithm = maze.DefaultAlgorithm
	}
	opts := []maze.Option{maze.WithAlgorithm(algorithm)}
	if c.Seed != 0 {
		opts = append(opts, maze.WithSeed(c.Seed))
	}
	return opts
}
