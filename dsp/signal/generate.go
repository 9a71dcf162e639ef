// Package signal synthesizes oscillation time series for exercising the
// periodogram: sums of cosine modes on a regular cadence, deterministic noise
// and random gaps that turn an even sampling into an uneven one.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-periodogram/dsp/series"
)

const (
	defaultCadence = 60.0 // seconds
	secondsPerDay  = 86400.0
	microhertz     = 1e-6
)

// Mode is one oscillation mode of a synthetic star.
type Mode struct {
	Degree    int     // spherical degree l (catalogue metadata)
	Order     int     // radial order n (catalogue metadata)
	Frequency float64 // cyclic frequency in microhertz
	Amplitude float64
	Phase     float64 // radians
}

// Generator creates deterministic time series from a shared configuration.
type Generator struct {
	cadence float64
	start   float64
	seed    int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithCadence sets the sampling interval in seconds.
func WithCadence(seconds float64) Option {
	return func(g *Generator) {
		if seconds > 0 {
			g.cadence = seconds
		}
	}
}

// WithStart sets the first timestamp in seconds.
func WithStart(seconds float64) Option {
	return func(g *Generator) {
		g.start = seconds
	}
}

// WithSeed sets the deterministic random seed for noise and gaps.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator sampling every 60 s from t = 0.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		cadence: defaultCadence,
		seed:    1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Cadence returns the sampling interval in seconds.
func (g *Generator) Cadence() float64 { return g.cadence }

// Seed returns the current random seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed updates the random seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Times returns the timestamps start, start+cadence, ... < start+duration,
// in seconds.
func (g *Generator) Times(duration float64) ([]float64, error) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("signal: duration must be > 0: %v", duration)
	}

	n := int(math.Ceil(duration / g.cadence))
	out := make([]float64, n)
	for i := range out {
		out[i] = g.start + float64(i)*g.cadence
	}
	return out, nil
}

// DaysDuration returns the span covered by a campaign of the given number of
// days: days*86400 s plus one extra cadence so the final day is complete.
func (g *Generator) DaysDuration(days float64) float64 {
	return days*secondsPerDay + g.cadence
}

// Modes evaluates y(t) = Σ A_k·cos(ω_k·t + φ_k) at every timestamp, with t in
// seconds and ω_k = 2π·ν_k·1e-6 for ν_k in microhertz.
func Modes(time []float64, modes []Mode) []float64 {
	out := make([]float64, len(time))
	for _, m := range modes {
		omega := 2 * math.Pi * m.Frequency * microhertz
		for i, t := range time {
			out[i] += m.Amplitude * math.Cos(omega*t+m.Phase)
		}
	}
	return out
}

// Series samples the modes over duration seconds.
func (g *Generator) Series(duration float64, modes []Mode) (series.TimeSeries, error) {
	time, err := g.Times(duration)
	if err != nil {
		return series.TimeSeries{}, err
	}
	return series.New(time, Modes(time, modes))
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// AddNoise returns a copy of ts with deterministic white noise added to the
// flux.
func (g *Generator) AddNoise(ts series.TimeSeries, amplitude float64) (series.TimeSeries, error) {
	noise, err := g.WhiteNoise(amplitude, ts.Len())
	if err != nil {
		return series.TimeSeries{}, err
	}
	flux := make([]float64, ts.Len())
	for i, y := range ts.Flux {
		flux[i] = y + noise[i]
	}
	return series.TimeSeries{Time: ts.Time, Flux: flux, Weight: ts.Weight}, nil
}

// Gapped drops samples at random, keeping each with probability keep, and
// returns the surviving samples as a new, unevenly sampled series. The first
// sample is always kept so the series never becomes empty.
func (g *Generator) Gapped(ts series.TimeSeries, keep float64) (series.TimeSeries, error) {
	if keep <= 0 || keep > 1 {
		return series.TimeSeries{}, fmt.Errorf("signal: keep fraction must be in (0, 1]: %v", keep)
	}
	if err := ts.Validate(); err != nil {
		return series.TimeSeries{}, err
	}

	rng := rand.New(rand.NewSource(g.seed))
	out := series.TimeSeries{
		Time: make([]float64, 0, ts.Len()),
		Flux: make([]float64, 0, ts.Len()),
	}
	if ts.Weighted() {
		out.Weight = make([]float64, 0, ts.Len())
	}

	for i := range ts.Time {
		if i > 0 && rng.Float64() >= keep {
			continue
		}
		out.Time = append(out.Time, ts.Time[i])
		out.Flux = append(out.Flux, ts.Flux[i])
		if ts.Weighted() {
			out.Weight = append(out.Weight, ts.Weight[i])
		}
	}
	return out, nil
}
