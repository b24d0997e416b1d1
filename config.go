package montecarlo

import (
	"fmt"
	"math"
	"runtime"
)

// MaxWorkers is the largest number of workers a run can use.
const MaxWorkers = 256

// Config holds the parameters of a run. It is read-only once the run starts.
type Config struct {
	// RelativeTolerance is the target relative 1-sigma error of the mean.
	RelativeTolerance float64 `mapstructure:"rtol" yaml:"rtol"`

	// MaxTrials caps the total number of trials across all workers.
	// The cap is checked after each merge, so it can be exceeded by up to one batch per worker.
	MaxTrials int64 `mapstructure:"max_trials" yaml:"max_trials"`

	// BatchSize is the number of samples a worker draws before merging into the global accumulator.
	BatchSize int `mapstructure:"batch" yaml:"batch"`

	// Workers is the number of parallel workers, in [1, MaxWorkers].
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Verbosity controls how much the command line tool prints. Zero prints only the result.
	Verbosity int `mapstructure:"verbose" yaml:"verbose"`

	// Seed initializes the master entropy source the per-worker seeds are drawn from.
	// Zero seeds it from the clock.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		RelativeTolerance: 1e-4,
		MaxTrials:         10_000_000,
		BatchSize:         5000,
		Workers:           min(runtime.NumCPU(), MaxWorkers),
		Verbosity:         1,
	}
}

// ConfigError reports a configuration value that was rejected before the run started.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Validate checks that the configuration can be used for a run.
// It returns a *ConfigError describing the first offending field.
func (c Config) Validate() error {
	switch {
	case !(c.RelativeTolerance > 0) || math.IsInf(c.RelativeTolerance, 0):
		return &ConfigError{Field: "rtol", Value: c.RelativeTolerance, Reason: "must be positive"}
	case c.MaxTrials < 1:
		return &ConfigError{Field: "max_trials", Value: c.MaxTrials, Reason: "must be positive"}
	case c.BatchSize < 1:
		return &ConfigError{Field: "batch", Value: c.BatchSize, Reason: "must be positive"}
	case c.Workers < 1 || c.Workers > MaxWorkers:
		return &ConfigError{Field: "workers", Value: c.Workers, Reason: fmt.Sprintf("must be in [1,%d]", MaxWorkers)}
	}

	return nil
}
