package periodogram

import (
	"context"
	"math"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/series"
)

const (
	goldenRatio    = 0.6180339887498948482046
	invGoldenRatio = 0.3819660112501051517954

	refineMaxIter = 100
)

// Max evaluates the spectrum of ts over g and returns the fit at the grid
// point with the highest power. Options are interpreted as for [Compute];
// the returned coefficients refer to the conditioned (mean-subtracted) flux.
func Max(ctx context.Context, ts series.TimeSeries, g grid.Grid, opts ...Option) (Fit, error) {
	cfg := ApplyOptions(opts...)
	if ts.Weighted() {
		cfg.Weights = ts.Weight
	}

	k, err := prepare(ts.Time, ts.Flux, g, cfg)
	if err != nil {
		return Fit{}, err
	}

	spec, err := run(ctx, k, g, cfg)
	if err != nil {
		return Fit{}, err
	}

	idx := spec.PeakIndex()
	if idx < 0 {
		return Fit{}, errEmptySpectrum
	}
	return k.fitAt(spec.Frequency(idx))
}

// Refine locates the power maximum inside [lo, hi] with a golden-section
// search and returns the fit there. The interval should bracket a single
// peak, typically one grid step either side of the [Max] result. ts.Time must
// be normalized and ts.Flux already conditioned, as for [FitAt].
//
// The search stops once the bracket is narrower than eps and fails with
// [ErrNoConvergence] after 100 iterations. As for [FitAt], only the singular
// tolerance is taken from opts.
func Refine(ts series.TimeSeries, lo, hi, eps float64, opts ...Option) (Fit, error) {
	if err := ts.Validate(); err != nil {
		return Fit{}, err
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	cfg := ApplyOptions(opts...)
	k := newKernel(ts.Time, ts.Flux, ts.Weight, cfg.SingularTolerance)
	x, err := goldenMin(func(f float64) float64 {
		alpha, beta, ok := k.fit(f)
		if !ok {
			return math.Inf(1)
		}
		return -(alpha*alpha + beta*beta)
	}, lo, hi, eps)
	if err != nil {
		return Fit{}, err
	}
	return k.fitAt(x)
}

// goldenMin returns the midpoint of the final bracket around the minimum of fn
// in [a, b].
func goldenMin(fn func(float64) float64, a, b, eps float64) (float64, error) {
	x1 := goldenRatio*a + invGoldenRatio*b
	x2 := invGoldenRatio*a + goldenRatio*b
	f1 := fn(x1)
	f2 := fn(x2)

	for range refineMaxIter {
		if f1 < f2 {
			b = x2
			x2, f2 = x1, f1
			x1 = goldenRatio*a + invGoldenRatio*b
			f1 = fn(x1)
		} else {
			a = x1
			x1, f1 = x2, f2
			x2 = invGoldenRatio*a + goldenRatio*b
			f2 = fn(x2)
		}

		if math.Abs(b-a) < eps {
			return a + (b-a)/2, nil
		}
	}

	return 0, ErrNoConvergence
}
