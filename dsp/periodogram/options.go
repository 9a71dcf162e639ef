package periodogram

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cwbudde/algo-periodogram/dsp/series"
)

// DefaultSingularTolerance is the relative threshold below which the
// normal-equations determinant is treated as zero: a fit is singular unless
// |SS·CC − SC²| > tol·(SS+CC)².
const DefaultSingularTolerance = 1e-12

// SingularPolicy selects how a singular fit at one frequency is handled.
type SingularPolicy int

const (
	// SingularAbort fails the whole call with a [*SingularFitError].
	SingularAbort SingularPolicy = iota
	// SingularSkip omits the frequency from the result.
	SingularSkip
	// SingularNaN keeps the frequency and stores NaN as its power.
	SingularNaN
)

// String implements fmt.Stringer.
func (p SingularPolicy) String() string {
	switch p {
	case SingularAbort:
		return "abort"
	case SingularSkip:
		return "skip"
	case SingularNaN:
		return "nan"
	default:
		return fmt.Sprintf("SingularPolicy(%d)", int(p))
	}
}

// ParseSingularPolicy maps "abort", "skip" or "nan" to a policy.
func ParseSingularPolicy(name string) (SingularPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "abort", "fail", "":
		return SingularAbort, nil
	case "skip":
		return SingularSkip, nil
	case "nan":
		return SingularNaN, nil
	default:
		return 0, fmt.Errorf("periodogram: unknown singular policy %q", name)
	}
}

// Config holds the engine settings for a single call.
type Config struct {
	Unit              series.Unit
	Preprocess        bool
	Singular          SingularPolicy
	SingularTolerance float64
	Weights           []float64
	Workers           int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns timestamps in seconds, mean subtraction enabled,
// abort on singular fits and one worker per available CPU.
func DefaultConfig() Config {
	return Config{
		Unit:              series.Seconds,
		Preprocess:        true,
		Singular:          SingularAbort,
		SingularTolerance: DefaultSingularTolerance,
		Workers:           runtime.GOMAXPROCS(0),
	}
}

// WithUnit sets the unit of the raw timestamps.
func WithUnit(unit series.Unit) Option {
	return func(cfg *Config) {
		cfg.Unit = unit
	}
}

// WithPreprocess toggles mean subtraction of the measurements.
func WithPreprocess(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Preprocess = enabled
	}
}

// WithSingularPolicy sets the handling of singular fits.
func WithSingularPolicy(policy SingularPolicy) Option {
	return func(cfg *Config) {
		cfg.Singular = policy
	}
}

// WithSkipSingular is the boolean form of [WithSingularPolicy]: true skips
// singular frequencies, false aborts on them.
func WithSkipSingular(skip bool) Option {
	return func(cfg *Config) {
		if skip {
			cfg.Singular = SingularSkip
		} else {
			cfg.Singular = SingularAbort
		}
	}
}

// WithSingularTolerance sets the relative determinant threshold. Negative
// values are ignored; zero only rejects exactly vanishing determinants.
func WithSingularTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol >= 0 {
			cfg.SingularTolerance = tol
		}
	}
}

// WithWeights enables the weighted fit. The slice must pair with the time
// series; it is read but never modified.
func WithWeights(weights []float64) Option {
	return func(cfg *Config) {
		cfg.Weights = weights
	}
}

// WithWorkers sets the number of concurrent workers. Values below one are
// ignored.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
