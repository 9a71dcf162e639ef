// Package config loads command configuration from defaults, an optional YAML
// file, PERIODOGRAM_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
	"github.com/cwbudde/algo-periodogram/dsp/series"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "PERIODOGRAM"

// AutoLow is the lower bound of automatic sampling, in µHz.
const AutoLow = 5.0

// Keys shared between flags, the config file and the environment.
const (
	KeyConfig     = "config"
	KeyQuiet      = "quiet"
	KeyVerbose    = "verbose"
	KeyUnit       = "unit"
	KeyNoPrep     = "noprep"
	KeyWeights    = "weights"
	KeySingular   = "singular"
	KeyTolerance  = "tolerance"
	KeyWorkers    = "workers"
	KeyLow        = "low"
	KeyHigh       = "high"
	KeyStep       = "step"
	KeyAuto       = "auto"
	KeyOversample = "oversample"
	KeyCacheDir   = "cache-dir"
	KeyCacheTTL   = "cache-ttl"
	KeyPlot       = "plot"
	KeyReference  = "reference"
	KeyPlotWidth  = "plot-width"
	KeyPlotHeight = "plot-height"
	KeyLogPower   = "log-power"
	KeyCount      = "count"
	KeyRefine     = "refine"
	KeyF0         = "f0"
	KeyHalfWidth  = "half-width"
)

var errNoRange = errors.New("config: sampling needs --low and --high, or --auto")

// Config is the typed view of all settings a command may use.
type Config struct {
	Input    InputConfig
	Engine   EngineConfig
	Sampling SamplingConfig
	Cache    CacheConfig
	Plot     PlotConfig
	Clean    CleanConfig
	Window   WindowConfig
	Log      LogConfig
}

// InputConfig describes how a time-series file is interpreted.
type InputConfig struct {
	Unit       series.Unit
	Preprocess bool
	Weighted   bool
}

// EngineConfig holds periodogram engine settings.
type EngineConfig struct {
	Singular  periodogram.SingularPolicy
	Tolerance float64
	Workers   int
}

// SamplingConfig describes the frequency grid in µHz. A zero Step selects
// Oversample times the natural resolution of the series.
type SamplingConfig struct {
	Low        float64
	High       float64
	Step       float64
	Auto       bool
	Oversample float64
}

// CacheConfig enables the spectrum cache when Dir is non-empty.
type CacheConfig struct {
	Dir string
	TTL time.Duration
}

// PlotConfig enables PNG output when Path is non-empty.
type PlotConfig struct {
	Path      string
	Reference string
	Width     int
	Height    int
	LogPower  bool
}

// CleanConfig holds CLEAN settings.
type CleanConfig struct {
	Count  int
	Refine bool
}

// WindowConfig holds spectral window settings, in µHz.
type WindowConfig struct {
	F0        float64
	HalfWidth float64
}

// LogConfig selects the log level.
type LogConfig struct {
	Quiet   bool
	Verbose bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyUnit, "s")
	v.SetDefault(KeyNoPrep, false)
	v.SetDefault(KeyWeights, false)
	v.SetDefault(KeySingular, "abort")
	v.SetDefault(KeyTolerance, periodogram.DefaultSingularTolerance)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyLow, 0.0)
	v.SetDefault(KeyHigh, 0.0)
	v.SetDefault(KeyStep, 0.0)
	v.SetDefault(KeyAuto, false)
	v.SetDefault(KeyOversample, 4.0)
	v.SetDefault(KeyCacheDir, "")
	v.SetDefault(KeyCacheTTL, 7*24*time.Hour)
	v.SetDefault(KeyPlot, "")
	v.SetDefault(KeyReference, "")
	v.SetDefault(KeyPlotWidth, 1200)
	v.SetDefault(KeyPlotHeight, 500)
	v.SetDefault(KeyLogPower, false)
	v.SetDefault(KeyCount, 1)
	v.SetDefault(KeyRefine, false)
	v.SetDefault(KeyF0, 1000.0)
	v.SetDefault(KeyHalfWidth, 50.0)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyVerbose, false)
}

// Load resolves the configuration. flags may be nil; when it defines
// --config, the named YAML file is read before flags are applied.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	unit, err := series.ParseUnit(v.GetString(KeyUnit))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	policy, err := periodogram.ParseSingularPolicy(v.GetString(KeySingular))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &Config{
		Input: InputConfig{
			Unit:       unit,
			Preprocess: !v.GetBool(KeyNoPrep),
			Weighted:   v.GetBool(KeyWeights),
		},
		Engine: EngineConfig{
			Singular:  policy,
			Tolerance: v.GetFloat64(KeyTolerance),
			Workers:   v.GetInt(KeyWorkers),
		},
		Sampling: SamplingConfig{
			Low:        v.GetFloat64(KeyLow),
			High:       v.GetFloat64(KeyHigh),
			Step:       v.GetFloat64(KeyStep),
			Auto:       v.GetBool(KeyAuto),
			Oversample: v.GetFloat64(KeyOversample),
		},
		Cache: CacheConfig{
			Dir: v.GetString(KeyCacheDir),
			TTL: v.GetDuration(KeyCacheTTL),
		},
		Plot: PlotConfig{
			Path:      v.GetString(KeyPlot),
			Reference: v.GetString(KeyReference),
			Width:     v.GetInt(KeyPlotWidth),
			Height:    v.GetInt(KeyPlotHeight),
			LogPower:  v.GetBool(KeyLogPower),
		},
		Clean: CleanConfig{
			Count:  v.GetInt(KeyCount),
			Refine: v.GetBool(KeyRefine),
		},
		Window: WindowConfig{
			F0:        v.GetFloat64(KeyF0),
			HalfWidth: v.GetFloat64(KeyHalfWidth),
		},
		Log: LogConfig{
			Quiet:   v.GetBool(KeyQuiet),
			Verbose: v.GetBool(KeyVerbose),
		},
	}
	return cfg, nil
}

// PeriodogramOptions converts the input and engine settings to engine
// options. weights is passed through when the input is weighted.
func (c *Config) PeriodogramOptions(weights []float64) []periodogram.Option {
	opts := []periodogram.Option{
		periodogram.WithUnit(c.Input.Unit),
		periodogram.WithPreprocess(c.Input.Preprocess),
		periodogram.WithSingularPolicy(c.Engine.Singular),
		periodogram.WithSingularTolerance(c.Engine.Tolerance),
		periodogram.WithWorkers(c.Engine.Workers),
	}
	if c.Input.Weighted && weights != nil {
		opts = append(opts, periodogram.WithWeights(weights))
	}
	return opts
}

// Grid builds the frequency grid for timestamps already normalized to
// megaseconds. Auto mode spans [AutoLow, Nyquist).
func (s SamplingConfig) Grid(timeMs []float64) (grid.Grid, error) {
	low, high := s.Low, s.High
	if s.Auto {
		nyquist, err := series.Nyquist(timeMs)
		if err != nil {
			return grid.Grid{}, fmt.Errorf("config: auto sampling: %w", err)
		}
		low, high = AutoLow, nyquist
	} else if low == 0 && high == 0 {
		return grid.Grid{}, errNoRange
	}

	if s.Step > 0 {
		return grid.New(low, high, s.Step)
	}
	if len(timeMs) < 2 {
		return grid.Grid{}, fmt.Errorf("config: oversampling: %w", series.ErrEmpty)
	}
	return grid.Oversampled(low, high, timeMs[len(timeMs)-1]-timeMs[0], s.Oversample)
}
