// Package specwindow computes the spectral window of a sampling pattern: the
// periodogram response to a pure sinusoid at a reference frequency f0 when
// sampled at the series' timestamps.
//
// The window is the average of the least-squares power of sin(2π·f0·t) and
// cos(2π·f0·t), so it does not depend on the phase of the probe. For a
// gap-free series the window is a sinc² main lobe centred on f0; gaps and
// uneven sampling show up as side lobes and aliases.
package specwindow

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
	"github.com/cwbudde/algo-periodogram/dsp/series"
)

// Compute returns the spectral window at f0 over g. time is in the unit set
// with [periodogram.WithUnit]; f0 and g are in microhertz. Weights, workers
// and the singular policy are honoured as in [periodogram.Compute]. Mean
// subtraction is never applied to the probe signals.
func Compute(ctx context.Context, time []float64, g grid.Grid, f0 float64, opts ...periodogram.Option) (*periodogram.Spectrum, error) {
	cfg := periodogram.ApplyOptions(opts...)
	if g.Len() == 0 {
		return nil, &grid.InvalidRangeError{Low: g.Low(), High: g.High(), Step: g.Step()}
	}
	if err := series.CheckLengths(time, time, cfg.Weights); err != nil {
		return nil, err
	}

	t, err := series.Normalize(time, cfg.Unit)
	if err != nil {
		return nil, err
	}
	probeSin, probeCos := probes(t, f0)

	opts = append(opts, periodogram.WithUnit(series.Megaseconds), periodogram.WithPreprocess(false))

	ps, err := periodogram.Compute(ctx, t, probeSin, g, opts...)
	if err != nil {
		return nil, err
	}
	pc, err := periodogram.Compute(ctx, t, probeCos, g, opts...)
	if err != nil {
		return nil, err
	}

	// Both probes see the same singular frequencies, so the grids agree.
	window := ps.Powers()
	floats.Add(window, pc.Powers())
	floats.Scale(0.5, window)

	return periodogram.NewSpectrum(ps.Frequencies(), window)
}

// ComputeSeries is [Compute] for a [series.TimeSeries]; the flux is ignored
// and weights carried by ts take precedence.
func ComputeSeries(ctx context.Context, ts series.TimeSeries, g grid.Grid, f0 float64, opts ...periodogram.Option) (*periodogram.Spectrum, error) {
	if ts.Weighted() {
		opts = append(opts, periodogram.WithWeights(ts.Weight))
	}
	return Compute(ctx, ts.Time, g, f0, opts...)
}

// Sum returns the sum of the spectral window over g. NaN points produced by
// [periodogram.SingularNaN] are left out.
func Sum(ctx context.Context, time []float64, g grid.Grid, f0 float64, opts ...periodogram.Option) (float64, error) {
	w, err := Compute(ctx, time, g, f0, opts...)
	if err != nil {
		return 0, err
	}
	return finiteSum(w.Powers()), nil
}

// Centered returns the grid [f0-halfWidth, f0+halfWidth) sampled at step,
// the usual range for inspecting a window.
func Centered(f0, halfWidth, step float64) (grid.Grid, error) {
	return grid.New(f0-halfWidth, f0+halfWidth, step)
}

func probes(t []float64, f0 float64) (sin, cos []float64) {
	sin = make([]float64, len(t))
	cos = make([]float64, len(t))
	omega := 2 * math.Pi * f0
	for i, ti := range t {
		sin[i], cos[i] = math.Sincos(omega * ti)
	}
	return sin, cos
}

func finiteSum(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}
