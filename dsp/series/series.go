package series

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TimeSeries pairs timestamps with measurements and optional statistical
// weights. Time is ascending. The slices are borrowed: functions in this
// module read them but never write to them.
type TimeSeries struct {
	Time   []float64
	Flux   []float64
	Weight []float64 // nil when the series is unweighted
}

// New returns a validated unweighted time series.
func New(time, flux []float64) (TimeSeries, error) {
	ts := TimeSeries{Time: time, Flux: flux}
	if err := ts.Validate(); err != nil {
		return TimeSeries{}, err
	}
	return ts, nil
}

// NewWeighted returns a validated weighted time series.
func NewWeighted(time, flux, weight []float64) (TimeSeries, error) {
	ts := TimeSeries{Time: time, Flux: flux, Weight: weight}
	if err := ts.Validate(); err != nil {
		return TimeSeries{}, err
	}
	return ts, nil
}

// Validate checks the pairing invariants.
func (ts TimeSeries) Validate() error {
	return CheckLengths(ts.Time, ts.Flux, ts.Weight)
}

// CheckLengths verifies len(time) == len(flux) >= 1 and, when weight is
// non-nil, len(weight) == len(time).
func CheckLengths(time, flux, weight []float64) error {
	if len(time) != len(flux) {
		return &LengthMismatchError{Time: len(time), Other: len(flux), Name: "flux"}
	}
	if weight != nil && len(weight) != len(time) {
		return &LengthMismatchError{Time: len(time), Other: len(weight), Name: "weight"}
	}
	if len(time) == 0 {
		return ErrEmpty
	}
	return nil
}

// Len returns the number of samples.
func (ts TimeSeries) Len() int { return len(ts.Time) }

// Weighted reports whether the series carries weights.
func (ts TimeSeries) Weighted() bool { return ts.Weight != nil }

// Baseline returns the time span last - first in the series' own unit.
func (ts TimeSeries) Baseline() float64 {
	if len(ts.Time) < 2 {
		return 0
	}
	return ts.Time[len(ts.Time)-1] - ts.Time[0]
}

// Normalize returns a series whose timestamps are in megaseconds. Flux and
// weights are shared with the receiver.
func (ts TimeSeries) Normalize(unit Unit) (TimeSeries, error) {
	t, err := Normalize(ts.Time, unit)
	if err != nil {
		return TimeSeries{}, err
	}
	return TimeSeries{Time: t, Flux: ts.Flux, Weight: ts.Weight}, nil
}

// SubtractMean returns a copy of flux with its arithmetic mean removed,
// together with that mean. Removing the offset keeps it from leaking into
// every low-frequency fit.
func SubtractMean(flux []float64) ([]float64, float64) {
	return SubtractWeightedMean(flux, nil)
}

// SubtractWeightedMean is [SubtractMean] with the mean weighted by weight.
// A nil weight slice means equal weights.
func SubtractWeightedMean(flux, weight []float64) ([]float64, float64) {
	out := make([]float64, len(flux))
	copy(out, flux)
	if len(flux) == 0 {
		return out, 0
	}

	mean := stat.Mean(flux, weight)
	floats.AddConst(-mean, out)
	return out, mean
}

// Preprocess returns flux unchanged (as a copy) when enabled is false and the
// mean-subtracted copy otherwise.
func Preprocess(flux, weight []float64, enabled bool) []float64 {
	if !enabled {
		out := make([]float64, len(flux))
		copy(out, flux)
		return out
	}
	out, _ := SubtractWeightedMean(flux, weight)
	return out
}

// Cadence returns the median sampling interval of time.
func Cadence(time []float64) (float64, error) {
	if len(time) < 2 {
		return 0, errTooShort
	}

	dt := make([]float64, len(time)-1)
	for i := range dt {
		dt[i] = time[i+1] - time[i]
	}

	median, err := stats.Median(dt)
	if err != nil {
		return 0, fmt.Errorf("series: cadence: %w", err)
	}
	return median, nil
}

// Nyquist returns 1/(2·cadence), the Nyquist frequency implied by the median
// sampling interval. With time in megaseconds the result is in microhertz.
func Nyquist(time []float64) (float64, error) {
	cadence, err := Cadence(time)
	if err != nil {
		return 0, err
	}
	if cadence <= 0 {
		return 0, fmt.Errorf("series: non-positive median cadence %g", cadence)
	}
	return 1 / (2 * cadence), nil
}
