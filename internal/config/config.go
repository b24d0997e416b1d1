// Package config loads run settings from defaults, an optional YAML file, the environment and command line flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/destel/montecarlo"
)

// EnvPrefix is the prefix of environment variables, e.g. MC_WORKERS.
const EnvPrefix = "MC"

// Settings is everything the command needs to perform and report a run.
type Settings struct {
	montecarlo.Config `mapstructure:",squash" yaml:",inline"`

	Backend      string `mapstructure:"backend" yaml:"backend"`
	Coordination string `mapstructure:"coordination" yaml:"coordination"`
	Output       string `mapstructure:"output" yaml:"output"`
	Hist         string `mapstructure:"hist" yaml:"hist"`
	Progress     bool   `mapstructure:"progress" yaml:"progress"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// Options returns the run options selected by the settings.
func (s Settings) Options() ([]montecarlo.Option, error) {
	backend, err := montecarlo.ParseBackend(s.Backend)
	if err != nil {
		return nil, &montecarlo.ConfigError{Field: "backend", Value: s.Backend, Reason: err.Error()}
	}

	coordination, err := montecarlo.ParseCoordination(s.Coordination)
	if err != nil {
		return nil, &montecarlo.ConfigError{Field: "coordination", Value: s.Coordination, Reason: err.Error()}
	}

	return []montecarlo.Option{
		montecarlo.WithBackend(backend),
		montecarlo.WithCoordination(coordination),
	}, nil
}

// New returns a viper instance with defaults and environment lookups set up.
func New() *viper.Viper {
	v := viper.New()

	def := montecarlo.DefaultConfig()
	v.SetDefault("rtol", def.RelativeTolerance)
	v.SetDefault("max_trials", def.MaxTrials)
	v.SetDefault("batch", def.BatchSize)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("verbose", def.Verbosity)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("backend", "pool")
	v.SetDefault("coordination", "mutex")
	v.SetDefault("output", "text")
	v.SetDefault("hist", "")
	v.SetDefault("progress", false)
	v.SetDefault("log_level", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags makes flags override every other source. Flag names use dashes, keys use underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})

	return errors.Wrap(err, "bind flags")
}

// Load reads the config file (if any), decodes all sources into Settings and validates the result.
// Invalid values are reported as a wrapped *montecarlo.ConfigError.
func Load(v *viper.Viper, file string) (Settings, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, errors.Wrapf(err, "read config %s", file)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.Wrap(err, "decode config")
	}

	if err := s.Validate(); err != nil {
		return Settings{}, errors.Wrap(err, "config")
	}

	if _, err := s.Options(); err != nil {
		return Settings{}, errors.Wrap(err, "config")
	}

	switch s.Output {
	case "text", "yaml":
	default:
		return Settings{}, errors.Wrap(&montecarlo.ConfigError{Field: "output", Value: s.Output, Reason: "must be text or yaml"}, "config")
	}

	return s, nil
}
