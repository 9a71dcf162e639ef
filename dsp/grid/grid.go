// Package grid generates the ordered sets of cyclic test frequencies that a
// least-squares periodogram is evaluated on.
//
// A [Grid] describes the half-open sequence
//
//	low, low+step, low+2*step, ... < high
//
// Frequencies carry whatever cyclic unit the caller chose (microhertz for the
// rest of this module). Points are computed as low + i*step rather than by
// repeated addition, so a point never drifts with its index.
package grid

import (
	"fmt"
	"iter"
	"math"
)

// InvalidRangeError reports malformed grid bounds.
type InvalidRangeError struct {
	Low, High, Step float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("grid: invalid frequency range [%g, %g) with step %g", e.Low, e.High, e.Step)
}

// MaxLen is the largest number of points a grid may hold.
const MaxLen = math.MaxInt32

// Grid is an immutable frequency grid. Construct it with [New] or [Oversampled].
type Grid struct {
	low  float64
	high float64
	step float64
	n    int
}

// New validates the bounds and returns the grid. It fails with an
// [*InvalidRangeError] when low >= high, step <= 0, any value is not finite,
// or the range would hold more than [MaxLen] points.
//
// A step at least as wide as the range is valid and yields the single point low.
func New(low, high, step float64) (Grid, error) {
	if !finite(low) || !finite(high) || !finite(step) || low >= high || step <= 0 {
		return Grid{}, &InvalidRangeError{Low: low, High: high, Step: step}
	}
	if span := (high - low) / step; !(span < MaxLen) {
		return Grid{}, &InvalidRangeError{Low: low, High: high, Step: step}
	}

	return Grid{low: low, high: high, step: step, n: count(low, high, step)}, nil
}

// Oversampled returns a grid over [low, high) whose step is the natural
// resolution 1/baseline divided by factor. With baseline in megaseconds the
// step comes out in microhertz.
func Oversampled(low, high, baseline, factor float64) (Grid, error) {
	if !finite(baseline) || baseline <= 0 || !finite(factor) || factor <= 0 {
		return Grid{}, &InvalidRangeError{Low: low, High: high, Step: math.Inf(1)}
	}

	return New(low, high, 1/(factor*baseline))
}

// Must is like [New] but panics on invalid bounds. Intended for tests and
// package-level grids with constant bounds.
func Must(low, high, step float64) Grid {
	g, err := New(low, high, step)
	if err != nil {
		panic(err)
	}
	return g
}

// count mirrors arange semantics, then corrects for rounding so that every
// point is strictly below high and no valid point is dropped.
func count(low, high, step float64) int {
	n := int(math.Ceil((high - low) / step))
	if n < 1 {
		n = 1
	}

	for n > 1 && low+float64(n-1)*step >= high {
		n--
	}

	for low+float64(n)*step < high {
		n++
	}

	return n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Low returns the first frequency.
func (g Grid) Low() float64 { return g.low }

// High returns the exclusive upper bound.
func (g Grid) High() float64 { return g.high }

// Step returns the frequency spacing.
func (g Grid) Step() float64 { return g.step }

// Len returns the number of frequencies.
func (g Grid) Len() int { return g.n }

// At returns the i-th frequency. It panics if i is out of range.
func (g Grid) At(i int) float64 {
	if i < 0 || i >= g.n {
		panic(fmt.Sprintf("grid: index %d out of range [0, %d)", i, g.n))
	}
	return g.low + float64(i)*g.step
}

// All yields (index, frequency) pairs in ascending order. The sequence is lazy
// and can be ranged over any number of times.
func (g Grid) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i := range g.n {
			if !yield(i, g.low+float64(i)*g.step) {
				return
			}
		}
	}
}

// Values materializes the grid into a new slice.
func (g Grid) Values() []float64 {
	out := make([]float64, g.n)
	for i := range out {
		out[i] = g.low + float64(i)*g.step
	}
	return out
}

// Sub returns the frequencies with indices in [from, to) as a new slice.
func (g Grid) Sub(from, to int) []float64 {
	if from < 0 {
		from = 0
	}
	if to > g.n {
		to = g.n
	}
	if from >= to {
		return nil
	}

	out := make([]float64, to-from)
	for i := range out {
		out[i] = g.low + float64(from+i)*g.step
	}
	return out
}

// String implements fmt.Stringer.
func (g Grid) String() string {
	return fmt.Sprintf("[%g, %g) step %g (%d points)", g.low, g.high, g.step, g.n)
}
