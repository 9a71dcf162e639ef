// Package spectrum computes summary statistics of a power spectrum sampled on
// an arbitrary ascending frequency grid, such as a least-squares periodogram
// or a spectral window.
package spectrum

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
)

// Stats holds power-spectrum statistics. Frequencies carry the unit of the
// input grid (microhertz for periodograms).
type Stats struct {
	Count         int // finite points used
	Sum           float64
	Max           float64
	MaxIndex      int // index into the input slices
	PeakFrequency float64
	Min           float64
	MinIndex      int
	Mean          float64
	Median        float64
	PeakToMedian  float64 // Max / Median, +Inf for a zero median
	// Shape descriptors
	Centroid       float64 // power-weighted mean frequency
	Spread         float64 // power-weighted standard deviation around Centroid
	Flatness       float64 // geometric over arithmetic mean, 0..1
	Rolloff        float64 // frequency below which 85% of the power lies
	HalfPowerWidth float64 // full width at half maximum around the peak
	MainLobeLow    float64 // nearest local minimum below the peak
	MainLobeHigh   float64 // nearest local minimum above the peak
}

// Calculate computes all statistics. freq and power must have equal length;
// points with a NaN or infinite power are ignored.
func Calculate(freq, power []float64) Stats {
	f, p, idx := finitePoints(freq, power)
	n := len(p)
	if n == 0 {
		return Stats{MaxIndex: -1, MinIndex: -1}
	}

	peak := floats.MaxIdx(p)
	low := floats.MinIdx(p)

	var s Stats
	s.Count = n
	s.Sum = floats.Sum(p)
	s.MaxIndex = idx[peak]
	s.Max = p[peak]
	s.PeakFrequency = f[peak]
	s.MinIndex = idx[low]
	s.Min = p[low]
	s.Mean = s.Sum / float64(n)

	if median, err := stats.Median(p); err == nil {
		s.Median = median
	}
	s.PeakToMedian = math.Inf(1)
	if s.Median > 0 {
		s.PeakToMedian = s.Max / s.Median
	}

	s.Centroid = centroid(f, p, s.Sum)
	s.Spread = spread(f, p, s.Centroid, s.Sum)
	s.Flatness = flatness(p)
	s.Rolloff = rolloff(f, p, 0.85, s.Sum)
	s.HalfPowerWidth = halfPowerWidth(f, p, peak)
	s.MainLobeLow, s.MainLobeHigh = mainLobe(f, p, peak)
	return s
}

// FromSpectrum is [Calculate] on a periodogram result.
func FromSpectrum(s *periodogram.Spectrum) Stats {
	return Calculate(s.Frequencies(), s.Powers())
}

// finitePoints drops non-finite powers and returns the surviving points with
// their original indices.
func finitePoints(freq, power []float64) (f, p []float64, idx []int) {
	n := min(len(freq), len(power))
	f = make([]float64, 0, n)
	p = make([]float64, 0, n)
	idx = make([]int, 0, n)
	for i := range n {
		if math.IsNaN(power[i]) || math.IsInf(power[i], 0) {
			continue
		}
		f = append(f, freq[i])
		p = append(p, power[i])
		idx = append(idx, i)
	}
	return f, p, idx
}

// Centroid returns the power-weighted mean frequency.
//
//	centroid = sum(f_i * P_i) / sum(P_i)
func Centroid(freq, power []float64) float64 {
	f, p, _ := finitePoints(freq, power)
	return centroid(f, p, floats.Sum(p))
}

func centroid(f, p []float64, sum float64) float64 {
	if len(p) < 2 || sum == 0 {
		return 0
	}
	return floats.Dot(f, p) / sum
}

func spread(f, p []float64, cent, sum float64) float64 {
	if len(p) < 2 || sum == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range p {
		diff := f[i] - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sum)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
// A spectrum with any zero power has flatness 0.
func Flatness(power []float64) float64 {
	_, p, _ := finitePoints(power, power)
	return flatness(p)
}

func flatness(p []float64) float64 {
	if len(p) < 2 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	for _, v := range p {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	n := float64(len(p))
	return math.Exp(sumLog/n) / (sumLin / n)
}

// Rolloff returns the frequency below which the given fraction (0..1) of the
// total power lies.
func Rolloff(freq, power []float64, fraction float64) float64 {
	f, p, _ := finitePoints(freq, power)
	return rolloff(f, p, fraction, floats.Sum(p))
}

func rolloff(f, p []float64, fraction, total float64) float64 {
	if len(p) < 2 || total == 0 {
		return 0
	}
	threshold := fraction * total
	cum := 0.0
	for i, v := range p {
		cum += v
		if cum >= threshold {
			return f[i]
		}
	}
	return f[len(f)-1]
}

// HalfPowerWidth returns the full width at half maximum of the highest peak,
// interpolating linearly between points. A peak that does not drop to half
// power inside the grid is measured to the grid edge.
func HalfPowerWidth(freq, power []float64) float64 {
	f, p, _ := finitePoints(freq, power)
	if len(p) == 0 {
		return 0
	}
	return halfPowerWidth(f, p, floats.MaxIdx(p))
}

func halfPowerWidth(f, p []float64, peak int) float64 {
	n := len(p)
	if n < 2 || p[peak] <= 0 {
		return 0
	}
	threshold := p[peak] / 2

	lower := f[0]
	for i := peak; i >= 1; i-- {
		if p[i-1] <= threshold && p[i] > threshold {
			lower = interpFreq(f[i-1], f[i], p[i-1], p[i], threshold)
			break
		}
	}

	upper := f[n-1]
	for i := peak; i < n-1; i++ {
		if p[i+1] <= threshold && p[i] > threshold {
			upper = interpFreq(f[i], f[i+1], p[i], p[i+1], threshold)
			break
		}
	}

	return max(upper-lower, 0)
}

// MainLobe returns the frequencies of the nearest local minima either side of
// the highest peak, or the grid edges where the power keeps falling.
func MainLobe(freq, power []float64) (low, high float64) {
	f, p, _ := finitePoints(freq, power)
	if len(p) == 0 {
		return 0, 0
	}
	return mainLobe(f, p, floats.MaxIdx(p))
}

func mainLobe(f, p []float64, peak int) (float64, float64) {
	lo := peak
	for lo > 0 && p[lo-1] < p[lo] {
		lo--
	}
	hi := peak
	for hi < len(p)-1 && p[hi+1] < p[hi] {
		hi++
	}
	return f[lo], f[hi]
}

// interpFreq returns the frequency where the line through (fLow, pLow) and
// (fHigh, pHigh) crosses threshold.
func interpFreq(fLow, fHigh, pLow, pHigh, threshold float64) float64 {
	denom := pHigh - pLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - pLow) / denom
	return fLow + t*(fHigh-fLow)
}
