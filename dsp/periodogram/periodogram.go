package periodogram

import (
	"context"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/series"
)

// Compute evaluates the least-squares power at every frequency of g.
//
// time is in the unit selected with [WithUnit] (seconds by default) and g is
// in microhertz. Inputs are validated before any work is done, in this order:
// the grid ([*grid.InvalidRangeError]), the slice lengths
// ([*series.LengthMismatchError], [series.ErrEmpty]) and the unit
// ([*series.UnknownUnitError]). Neither time nor flux is modified.
//
// Cancellation is checked between frequencies; a cancelled ctx returns
// ctx.Err() and no spectrum.
func Compute(ctx context.Context, time, flux []float64, g grid.Grid, opts ...Option) (*Spectrum, error) {
	cfg := ApplyOptions(opts...)

	k, err := prepare(time, flux, g, cfg)
	if err != nil {
		return nil, err
	}
	return run(ctx, k, g, cfg)
}

// ComputeSeries is [Compute] for a [series.TimeSeries]. Weights carried by ts
// take precedence over [WithWeights].
func ComputeSeries(ctx context.Context, ts series.TimeSeries, g grid.Grid, opts ...Option) (*Spectrum, error) {
	if ts.Weighted() {
		opts = append(opts, WithWeights(ts.Weight))
	}
	return Compute(ctx, ts.Time, ts.Flux, g, opts...)
}

// ComputeRange is the flat form of [Compute]: it builds the grid from
// (low, high, step) and returns the frequencies and powers as plain slices.
func ComputeRange(
	ctx context.Context,
	time, flux []float64,
	low, high, step float64,
	unit series.Unit,
	preprocess bool,
	opts ...Option,
) (frequencies, powers []float64, err error) {
	g, err := grid.New(low, high, step)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]Option{WithUnit(unit), WithPreprocess(preprocess)}, opts...)
	spec, err := Compute(ctx, time, flux, g, opts...)
	if err != nil {
		return nil, nil, err
	}
	return spec.Frequencies(), spec.Powers(), nil
}

// prepare validates the call and builds the private, conditioned copy of the
// input the workers read from.
func prepare(time, flux []float64, g grid.Grid, cfg Config) (kernel, error) {
	if g.Len() == 0 {
		return kernel{}, &grid.InvalidRangeError{Low: g.Low(), High: g.High(), Step: g.Step()}
	}
	if err := series.CheckLengths(time, flux, cfg.Weights); err != nil {
		return kernel{}, err
	}

	t, err := series.Normalize(time, cfg.Unit)
	if err != nil {
		return kernel{}, err
	}

	y := series.Preprocess(flux, cfg.Weights, cfg.Preprocess)
	return newKernel(t, y, cfg.Weights, cfg.SingularTolerance), nil
}

// run evaluates the grid in contiguous chunks, one goroutine per chunk. Every
// worker writes only the slots of its own chunk.
func run(ctx context.Context, k kernel, g grid.Grid, cfg Config) (*Spectrum, error) {
	m := g.Len()
	alpha := make([]float64, m)
	beta := make([]float64, m)
	singular := make([]bool, m)

	abort := cfg.Singular == SingularAbort

	evalChunk := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if ctx.Err() != nil {
				return
			}

			a, b, ok := k.fit(g.At(i))
			if !ok {
				singular[i] = true
				if abort {
					// Later points of this chunk cannot change the reported error.
					return
				}
				continue
			}
			alpha[i] = a
			beta[i] = b
		}
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > m {
		workers = m
	}

	if workers == 1 {
		evalChunk(0, m)
	} else {
		chunkSize := (m + workers - 1) / workers

		var wg sync.WaitGroup
		for w := range workers {
			lo := w * chunkSize
			if lo >= m {
				break
			}
			hi := min(lo+chunkSize, m)

			wg.Add(1)
			go func() {
				defer wg.Done()
				evalChunk(lo, hi)
			}()
		}
		wg.Wait()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	powers := make([]float64, m)
	vecmath.Power(powers, alpha, beta)

	return assemble(g, powers, singular, cfg.Singular)
}

// assemble applies the singular policy. Abort reports the lowest-index
// singular frequency, which is deterministic because each chunk stops at its
// own first singular point.
func assemble(g grid.Grid, powers []float64, singular []bool, policy SingularPolicy) (*Spectrum, error) {
	switch policy {
	case SingularSkip:
		freq := make([]float64, 0, len(powers))
		kept := make([]float64, 0, len(powers))
		for i, p := range powers {
			if singular[i] {
				continue
			}
			freq = append(freq, g.At(i))
			kept = append(kept, p)
		}
		return &Spectrum{freq: freq, power: kept}, nil

	case SingularNaN:
		for i := range powers {
			if singular[i] {
				powers[i] = math.NaN()
			}
		}
		return &Spectrum{freq: g.Values(), power: powers}, nil

	default:
		for i := range powers {
			if singular[i] {
				return nil, &SingularFitError{Frequency: g.At(i)}
			}
		}
		return &Spectrum{freq: g.Values(), power: powers}, nil
	}
}
