// Package weights derives statistical weights for a time series from a
// companion series of point-to-point scatter. Each weight is the inverse of
// the moving variance of the scatter around that sample.
package weights

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/cwbudde/algo-periodogram/dsp/series"
)

const (
	defaultWindow   = 70
	defaultMinCount = 1
	defaultDrop     = 1
)

var (
	// ErrTimeMismatch is returned when the data and scatter series are not
	// sampled at identical time points.
	ErrTimeMismatch = errors.New("weights: data and scatter time points differ")

	// ErrZeroVariance is returned when a moving variance is zero, which
	// would give an infinite weight.
	ErrZeroVariance = errors.New("weights: zero scatter variance")

	errWindow = errors.New("weights: window must be >= 1")
)

// Config holds the moving-variance parameters.
type Config struct {
	// Window is the number of trailing samples (including the current one)
	// in each variance estimate.
	Window int
	// MinCount is the minimum number of finite samples a window needs;
	// windows with fewer yield NaN.
	MinCount int
	// Drop is the number of leading samples removed from the output. The
	// first window holds a single sample and has zero variance, so at least
	// one sample is normally dropped.
	Drop int
}

// DefaultConfig returns a 70-sample window, a minimum count of one and one
// dropped leading sample.
func DefaultConfig() Config {
	return Config{Window: defaultWindow, MinCount: defaultMinCount, Drop: defaultDrop}
}

// Calculator computes weights with a fixed configuration.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator. Non-positive MinCount is raised to 1
// and negative Drop to 0.
func NewCalculator(cfg Config) (*Calculator, error) {
	if cfg.Window < 1 {
		return nil, errWindow
	}
	cfg.MinCount = max(cfg.MinCount, 1)
	cfg.MinCount = min(cfg.MinCount, cfg.Window)
	cfg.Drop = max(cfg.Drop, 0)
	return &Calculator{cfg: cfg}, nil
}

// Config returns the effective configuration.
func (c *Calculator) Config() Config { return c.cfg }

// MovingVariance returns the population variance of the trailing window
// ending at every sample. NaN inputs are ignored; a window with fewer than
// MinCount finite samples yields NaN.
func (c *Calculator) MovingVariance(scatter []float64) ([]float64, error) {
	out := make([]float64, len(scatter))
	buf := make([]float64, 0, c.cfg.Window)

	for i := range scatter {
		buf = buf[:0]
		for _, v := range scatter[max(0, i-c.cfg.Window+1) : i+1] {
			if !math.IsNaN(v) {
				buf = append(buf, v)
			}
		}
		if len(buf) < c.cfg.MinCount {
			out[i] = math.NaN()
			continue
		}

		v, err := stats.PopulationVariance(buf)
		if err != nil {
			return nil, fmt.Errorf("weights: variance at sample %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Weights returns 1/variance for every sample of scatter. Leading samples are
// not dropped.
func (c *Calculator) Weights(scatter []float64) ([]float64, error) {
	variance, err := c.MovingVariance(scatter)
	if err != nil {
		return nil, err
	}

	w := make([]float64, len(variance))
	for i, v := range variance {
		w[i] = 1 / v
	}
	return w, nil
}

// Apply attaches weights computed from scatter to data and drops the leading
// samples. Both series must share their time points exactly.
func (c *Calculator) Apply(data, scatter series.TimeSeries) (series.TimeSeries, error) {
	if err := data.Validate(); err != nil {
		return series.TimeSeries{}, err
	}
	if err := scatter.Validate(); err != nil {
		return series.TimeSeries{}, err
	}
	if data.Len() != scatter.Len() {
		return series.TimeSeries{}, fmt.Errorf("%w: %d vs %d samples", ErrTimeMismatch, data.Len(), scatter.Len())
	}
	for i, t := range data.Time {
		if t != scatter.Time[i] {
			return series.TimeSeries{}, fmt.Errorf("%w: sample %d at %v vs %v", ErrTimeMismatch, i, t, scatter.Time[i])
		}
	}

	w, err := c.Weights(scatter.Flux)
	if err != nil {
		return series.TimeSeries{}, err
	}

	drop := min(c.cfg.Drop, data.Len())
	for i := drop; i < len(w); i++ {
		if math.IsInf(w[i], 0) {
			return series.TimeSeries{}, fmt.Errorf("%w at sample %d (t=%v)", ErrZeroVariance, i, data.Time[i])
		}
	}

	out := series.TimeSeries{
		Time:   append([]float64(nil), data.Time[drop:]...),
		Flux:   append([]float64(nil), data.Flux[drop:]...),
		Weight: w[drop:],
	}
	if out.Len() == 0 {
		return series.TimeSeries{}, series.ErrEmpty
	}
	return out, nil
}

// Generate applies the default configuration.
func Generate(data, scatter series.TimeSeries) (series.TimeSeries, error) {
	c, err := NewCalculator(DefaultConfig())
	if err != nil {
		return series.TimeSeries{}, err
	}
	return c.Apply(data, scatter)
}
