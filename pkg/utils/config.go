package utils

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	astromath "github.com/oxygene76/rskygrid/pkg/astronomy/math"
	"github.com/oxygene76/rskygrid/pkg/astronomy/orbital"
	"github.com/oxygene76/rskygrid/pkg/grid"
	"github.com/oxygene76/rskygrid/pkg/sweep"
)

// EnvPrefix is the prefix of environment overrides, e.g. RSKYGRID_EVALUATOR_WORKERS.
const EnvPrefix = "RSKYGRID"

// Config represents the sweep configuration
type Config struct {
	Time      TimeConfig      `yaml:"time" mapstructure:"time"`
	Grid      GridConfig      `yaml:"grid" mapstructure:"grid"`
	Evaluator EvaluatorConfig `yaml:"evaluator" mapstructure:"evaluator"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// TimeConfig describes the evenly spaced time axis
type TimeConfig struct {
	Start   float64 `yaml:"start" mapstructure:"start"`
	End     float64 `yaml:"end" mapstructure:"end"`
	Samples int     `yaml:"samples" mapstructure:"samples"`
}

// RangeConfig describes one sampled grid axis
type RangeConfig struct {
	Min   float64 `yaml:"min" mapstructure:"min"`
	Max   float64 `yaml:"max" mapstructure:"max"`
	Count int     `yaml:"count" mapstructure:"count"`
	Log   bool    `yaml:"log" mapstructure:"log"`
}

// GridConfig contains the parameter axes. Inclination is sampled in cos(incl)
// over [0, 1] with InclCount points, the last of which is dropped.
type GridConfig struct {
	T0        RangeConfig `yaml:"t0" mapstructure:"t0"`
	Period    RangeConfig `yaml:"period" mapstructure:"period"`
	A         RangeConfig `yaml:"a" mapstructure:"a"`
	E         RangeConfig `yaml:"e" mapstructure:"e"`
	Omega     RangeConfig `yaml:"omega" mapstructure:"omega"`
	InclCount int         `yaml:"incl_count" mapstructure:"incl_count"`
	Indexing  string      `yaml:"indexing" mapstructure:"indexing"`
}

// EvaluatorConfig contains evaluation settings
type EvaluatorConfig struct {
	Workers   int         `yaml:"workers" mapstructure:"workers"`
	Aux       orbital.Aux `yaml:"aux" mapstructure:"aux"`
	Threshold float64     `yaml:"threshold" mapstructure:"threshold"`
}

// OutputConfig contains reporting settings
type OutputConfig struct {
	Format    string `yaml:"format" mapstructure:"format"`
	TopPoints int    `yaml:"top_points" mapstructure:"top_points"`
	LogLevel  string `yaml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the reference sweep configuration
func DefaultConfig() *Config {
	return &Config{
		Time: TimeConfig{
			Start:   sweep.DefaultTimeStart,
			End:     sweep.DefaultTimeEnd,
			Samples: sweep.DefaultTimeSamples,
		},
		Grid: GridConfig{
			T0:        RangeConfig{Min: -5.0, Max: 5.0, Count: 2},
			Period:    RangeConfig{Min: 5.0, Max: 50.0, Count: 3, Log: true},
			A:         RangeConfig{Min: 50.0, Max: 100.0, Count: 2},
			E:         RangeConfig{Min: 0.0, Max: 0.9, Count: 5},
			Omega:     RangeConfig{Min: -math.Pi, Max: math.Pi, Count: 3},
			InclCount: 5,
			Indexing:  string(grid.IndexingIJ),
		},
		Evaluator: EvaluatorConfig{
			Workers:   1,
			Aux:       orbital.DefaultAux(),
			Threshold: sweep.DefaultThreshold,
		},
		Output: OutputConfig{
			Format:    "text",
			TopPoints: 5,
			LogLevel:  "info",
		},
	}
}

// NewViper returns a viper instance with defaults, config search paths and
// environment overrides registered. An empty cfgFile searches
// $HOME/.rskygrid, the working directory and ./configs for config.yaml.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".rskygrid"))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

// LoadConfig reads the config file (if any) and environment into a Config.
// A missing config file is not an error when no explicit file was requested.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Time.Samples < 1 {
		return fmt.Errorf("time.samples must be at least 1")
	}
	if c.Time.End < c.Time.Start {
		return fmt.Errorf("time.end %g is before time.start %g", c.Time.End, c.Time.Start)
	}

	ranges := map[string]RangeConfig{
		grid.AxisT0:     c.Grid.T0,
		grid.AxisPeriod: c.Grid.Period,
		grid.AxisA:      c.Grid.A,
		grid.AxisE:      c.Grid.E,
		grid.AxisOmega:  c.Grid.Omega,
	}
	for name, r := range ranges {
		if r.Count < 1 {
			return fmt.Errorf("grid.%s.count must be at least 1", name)
		}
		if r.Max < r.Min {
			return fmt.Errorf("grid.%s.max %g is below min %g", name, r.Max, r.Min)
		}
		if r.Log && r.Min <= 0 {
			return fmt.Errorf("grid.%s is log spaced and needs a positive min", name)
		}
	}

	if c.Grid.InclCount < 2 {
		return fmt.Errorf("grid.incl_count must be at least 2")
	}
	if _, err := grid.ParseIndexing(c.Grid.Indexing); err != nil {
		return err
	}

	if c.Evaluator.Workers < 0 {
		return fmt.Errorf("evaluator.workers cannot be negative")
	}
	if math.IsNaN(c.Evaluator.Threshold) {
		return fmt.Errorf("evaluator.threshold must be a number")
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}

	return nil
}

// TimeAxis returns the configured time samples
func (c *Config) TimeAxis() []float64 {
	return sweep.TimeAxis(c.Time.Start, c.Time.End, c.Time.Samples)
}

// Axes returns the configured grid axes in grid.AxisOrder
func (c *Config) Axes() []grid.Axis {
	return []grid.Axis{
		{Name: grid.AxisT0, Values: c.Grid.T0.values()},
		{Name: grid.AxisPeriod, Values: c.Grid.Period.values()},
		{Name: grid.AxisA, Values: c.Grid.A.values()},
		{Name: grid.AxisE, Values: c.Grid.E.values()},
		{Name: grid.AxisOmega, Values: c.Grid.Omega.values()},
		{Name: grid.AxisIncl, Values: grid.InclinationAxis(c.Grid.InclCount)},
	}
}

// Options converts the config into sweep options using the Kepler separator
func (c *Config) Options() (sweep.Options, error) {
	indexing, err := grid.ParseIndexing(c.Grid.Indexing)
	if err != nil {
		return sweep.Options{}, err
	}

	return sweep.Options{
		Times:     c.TimeAxis(),
		Axes:      c.Axes(),
		Indexing:  indexing,
		Separator: orbital.Kepler{},
		Aux:       c.Evaluator.Aux,
		Workers:   c.Evaluator.Workers,
		Threshold: c.Evaluator.Threshold,
	}, nil
}

func (r RangeConfig) values() []float64 {
	if r.Log {
		return astromath.Logspace(r.Min, r.Max, r.Count)
	}
	return astromath.Linspace(r.Min, r.Max, r.Count)
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("time.start", c.Time.Start)
	v.SetDefault("time.end", c.Time.End)
	v.SetDefault("time.samples", c.Time.Samples)

	for name, r := range map[string]RangeConfig{
		"t0": c.Grid.T0, "period": c.Grid.Period, "a": c.Grid.A,
		"e": c.Grid.E, "omega": c.Grid.Omega,
	} {
		v.SetDefault("grid."+name+".min", r.Min)
		v.SetDefault("grid."+name+".max", r.Max)
		v.SetDefault("grid."+name+".count", r.Count)
		v.SetDefault("grid."+name+".log", r.Log)
	}
	v.SetDefault("grid.incl_count", c.Grid.InclCount)
	v.SetDefault("grid.indexing", c.Grid.Indexing)

	v.SetDefault("evaluator.workers", c.Evaluator.Workers)
	v.SetDefault("evaluator.aux.u1", c.Evaluator.Aux.U1)
	v.SetDefault("evaluator.aux.u2", c.Evaluator.Aux.U2)
	v.SetDefault("evaluator.threshold", c.Evaluator.Threshold)

	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.top_points", c.Output.TopPoints)
	v.SetDefault("output.log_level", c.Output.LogLevel)
}
