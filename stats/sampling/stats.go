// Package sampling summarizes a time series before spectral analysis: how it
// is sampled (cadence, gaps, duty cycle and the implied frequency limits) and
// the moments of its flux.
package sampling

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/cwbudde/algo-periodogram/dsp/series"
)

// gapFactor is the multiple of the median cadence beyond which a time step
// counts as a gap.
const gapFactor = 1.5

// Stats holds sampling and flux statistics. Times carry the unit of the
// input; Nyquist and Resolution are in microhertz.
type Stats struct {
	Length     int
	Start      float64
	End        float64
	Baseline   float64 // End - Start
	Cadence    float64 // median time step
	MinStep    float64
	MaxStep    float64
	Gaps       int     // steps longer than 1.5 cadences
	GapTime    float64 // time lost to gaps, beyond one cadence per gap
	DutyCycle  float64 // Length·Cadence / (Baseline + Cadence), 0..1
	Nyquist    float64 // 1 / (2·Cadence), µHz
	Resolution float64 // 1 / Baseline, µHz

	Mean     float64
	RMS      float64
	Min      float64
	Max      float64
	Variance float64
	Skewness float64
	Kurtosis float64 // excess
}

// Calculate computes all statistics of ts, whose time axis is in unit.
func Calculate(ts series.TimeSeries, unit series.Unit) (Stats, error) {
	if err := ts.Validate(); err != nil {
		return Stats{}, err
	}
	factor, err := unit.Factor()
	if err != nil {
		return Stats{}, err
	}

	s := Moments(ts.Flux)
	s.Length = ts.Len()
	s.Start = ts.Time[0]
	s.End = ts.Time[ts.Len()-1]
	s.Baseline = s.End - s.Start

	if ts.Len() < 2 {
		return s, nil
	}

	steps := make([]float64, ts.Len()-1)
	for i := range steps {
		steps[i] = ts.Time[i+1] - ts.Time[i]
	}
	s.MinStep, _ = stats.Min(steps)
	s.MaxStep, _ = stats.Max(steps)
	s.Cadence, err = stats.Median(steps)
	if err != nil {
		return Stats{}, err
	}

	if s.Cadence > 0 {
		for _, dt := range steps {
			if dt > gapFactor*s.Cadence {
				s.Gaps++
				s.GapTime += dt - s.Cadence
			}
		}
		s.DutyCycle = math.Min(float64(s.Length)*s.Cadence/(s.Baseline+s.Cadence), 1)
		s.Nyquist = 1 / (2 * s.Cadence * factor)
	}
	if s.Baseline > 0 {
		s.Resolution = 1 / (s.Baseline * factor)
	}
	return s, nil
}

// Moments computes the flux statistics in a single pass using Welford's
// online algorithm. Sampling fields are left zero.
func Moments(flux []float64) Stats {
	n := len(flux)
	if n == 0 {
		return Stats{}
	}

	var (
		mean   float64
		m2     float64
		m3     float64
		m4     float64
		sumSq  float64
		maxVal = flux[0]
		minVal = flux[0]
	)

	for i, x := range flux {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x
		maxVal = max(maxVal, x)
		minVal = min(minVal, x)
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:   n,
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / nf),
		Min:      minVal,
		Max:      maxVal,
		Variance: variance,
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}
