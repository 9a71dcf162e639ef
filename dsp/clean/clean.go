// Package clean implements iterative prewhitening ("frequency CLEAN") of an
// unevenly sampled time series: the strongest sinusoid in a frequency range
// is located with the least-squares periodogram, subtracted from the data,
// and the search is repeated on the residual.
package clean

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
	"github.com/cwbudde/algo-periodogram/dsp/series"
)

var errCount = errors.New("clean: number of frequencies must be >= 1")

// Component is one removed sinusoid.
type Component struct {
	Number int // 1-based extraction order
	periodogram.Fit
}

// Result holds the cleaned series and the removed components.
type Result struct {
	// Time is the input time axis in its original unit.
	Time []float64
	// Flux is the residual after all components were removed. The mean taken
	// off during preprocessing has been added back.
	Flux []float64
	// Weight is the input weight slice, nil when unweighted.
	Weight []float64
	// Mean is the value subtracted during preprocessing (0 when disabled).
	Mean float64

	Components []Component
}

// Series returns the cleaned data as a time series.
func (r *Result) Series() series.TimeSeries {
	return series.TimeSeries{Time: r.Time, Flux: r.Flux, Weight: r.Weight}
}

// Cleaner removes a fixed number of frequencies from a series.
type Cleaner struct {
	grid   grid.Grid
	count  int
	refine bool
	opts   []periodogram.Option
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithRefinement enables golden-section refinement of each peak between the
// neighbouring grid points before it is subtracted.
func WithRefinement(enabled bool) Option {
	return func(c *Cleaner) {
		c.refine = enabled
	}
}

// WithPeriodogramOptions passes options (unit, weights, workers, preprocess,
// singular handling) to every periodogram evaluation.
func WithPeriodogramOptions(opts ...periodogram.Option) Option {
	return func(c *Cleaner) {
		c.opts = append(c.opts, opts...)
	}
}

// New returns a Cleaner that removes count frequencies found on g.
func New(g grid.Grid, count int, opts ...Option) (*Cleaner, error) {
	if count < 1 {
		return nil, errCount
	}
	if g.Len() == 0 {
		return nil, &grid.InvalidRangeError{Low: g.Low(), High: g.High(), Step: g.Step()}
	}

	c := &Cleaner{grid: g, count: count}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Count returns the number of frequencies removed per run.
func (c *Cleaner) Count() int { return c.count }

// Grid returns the search grid.
func (c *Cleaner) Grid() grid.Grid { return c.grid }

// Run cleans ts. Weights carried by ts take precedence over weights passed
// through [WithPeriodogramOptions]. ts is not modified.
func (c *Cleaner) Run(ctx context.Context, ts series.TimeSeries) (*Result, error) {
	cfg := periodogram.ApplyOptions(c.opts...)
	if ts.Weighted() {
		cfg.Weights = ts.Weight
	}
	if err := series.CheckLengths(ts.Time, ts.Flux, cfg.Weights); err != nil {
		return nil, err
	}

	t, err := series.Normalize(ts.Time, cfg.Unit)
	if err != nil {
		return nil, err
	}

	var mean float64
	residual := series.Preprocess(ts.Flux, nil, false)
	if cfg.Preprocess {
		residual, mean = series.SubtractWeightedMean(ts.Flux, cfg.Weights)
	}

	work := series.TimeSeries{Time: t, Flux: residual, Weight: cfg.Weights}
	opts := append(append([]periodogram.Option(nil), c.opts...),
		periodogram.WithUnit(series.Megaseconds),
		periodogram.WithPreprocess(false),
		periodogram.WithWeights(cfg.Weights),
	)

	res := &Result{
		Time:       ts.Time,
		Weight:     cfg.Weights,
		Mean:       mean,
		Components: make([]Component, 0, c.count),
	}

	for i := range c.count {
		fit, err := periodogram.Max(ctx, work, c.grid, opts...)
		if err != nil {
			return nil, fmt.Errorf("clean: frequency %d: %w", i+1, err)
		}
		if c.refine {
			fit = c.refined(work, fit)
		}

		for j, tj := range t {
			residual[j] -= fit.Eval(tj)
		}
		res.Components = append(res.Components, Component{Number: i + 1, Fit: fit})
	}

	floats.AddConst(mean, residual)
	res.Flux = residual
	return res, nil
}

// refined searches one grid step either side of the coarse peak. The coarse
// fit is kept when refinement fails or lands on a weaker point.
func (c *Cleaner) refined(work series.TimeSeries, coarse periodogram.Fit) periodogram.Fit {
	step := c.grid.Step()
	fine, err := periodogram.Refine(work, coarse.Frequency-step, coarse.Frequency+step, step*1e-6, c.opts...)
	if err != nil || fine.Power < coarse.Power {
		return coarse
	}
	return fine
}
