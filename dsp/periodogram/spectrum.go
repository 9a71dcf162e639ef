package periodogram

import (
	"fmt"
	"iter"
	"math"
)

// Point is one (frequency, power) pair of a [Spectrum].
type Point struct {
	Frequency float64
	Power     float64
}

// Spectrum is an immutable power spectrum in grid order. It is created by the
// engine or by [NewSpectrum] and exposes read-only access.
type Spectrum struct {
	freq  []float64
	power []float64
}

// NewSpectrum copies frequencies and powers into a new Spectrum.
func NewSpectrum(frequencies, powers []float64) (*Spectrum, error) {
	if len(frequencies) != len(powers) {
		return nil, fmt.Errorf("periodogram: %d frequencies but %d powers", len(frequencies), len(powers))
	}

	s := &Spectrum{
		freq:  make([]float64, len(frequencies)),
		power: make([]float64, len(powers)),
	}
	copy(s.freq, frequencies)
	copy(s.power, powers)
	return s, nil
}

// Len returns the number of points.
func (s *Spectrum) Len() int { return len(s.freq) }

// At returns the i-th point.
func (s *Spectrum) At(i int) Point { return Point{Frequency: s.freq[i], Power: s.power[i]} }

// Frequency returns the i-th frequency.
func (s *Spectrum) Frequency(i int) float64 { return s.freq[i] }

// Power returns the i-th power.
func (s *Spectrum) Power(i int) float64 { return s.power[i] }

// All yields the points in order.
func (s *Spectrum) All() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for i := range s.freq {
			if !yield(i, Point{Frequency: s.freq[i], Power: s.power[i]}) {
				return
			}
		}
	}
}

// Frequencies returns a copy of the frequencies.
func (s *Spectrum) Frequencies() []float64 {
	out := make([]float64, len(s.freq))
	copy(out, s.freq)
	return out
}

// Powers returns a copy of the powers.
func (s *Spectrum) Powers() []float64 {
	out := make([]float64, len(s.power))
	copy(out, s.power)
	return out
}

// Equal reports element-wise equality with exact float comparison. NaN
// powers compare equal to NaN so that spectra computed with [SingularNaN]
// can be compared.
func (s *Spectrum) Equal(o *Spectrum) bool {
	if s == nil || o == nil {
		return s == o
	}
	if len(s.freq) != len(o.freq) {
		return false
	}
	for i := range s.freq {
		if s.freq[i] != o.freq[i] {
			return false
		}
		a, b := s.power[i], o.power[i]
		if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
			return false
		}
	}
	return true
}

// PeakIndex returns the index of the largest finite power, or -1 when there
// is none.
func (s *Spectrum) PeakIndex() int {
	idx := -1
	best := math.Inf(-1)
	for i, p := range s.power {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		if p > best {
			best = p
			idx = i
		}
	}
	return idx
}

// Peak returns the point with the largest finite power.
func (s *Spectrum) Peak() (Point, bool) {
	i := s.PeakIndex()
	if i < 0 {
		return Point{}, false
	}
	return s.At(i), true
}
