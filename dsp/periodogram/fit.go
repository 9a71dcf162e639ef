package periodogram

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-periodogram/dsp/series"
)

// Fit is the least-squares sinusoid at one frequency.
type Fit struct {
	Frequency float64 // cyclic, same unit as the grid
	Alpha     float64 // sine coefficient
	Beta      float64 // cosine coefficient
	Power     float64 // Alpha² + Beta²
}

// Amplitude returns sqrt(Power).
func (f Fit) Amplitude() float64 {
	return math.Sqrt(f.Power)
}

// Phase returns φ such that Alpha·sin(ωt) + Beta·cos(ωt) = A·cos(ωt + φ).
func (f Fit) Phase() float64 {
	return math.Atan2(-f.Alpha, f.Beta)
}

// Eval returns the fitted sinusoid at normalized time t.
func (f Fit) Eval(t float64) float64 {
	sn, cn := math.Sincos(2 * math.Pi * f.Frequency * t)
	return f.Alpha*sn + f.Beta*cn
}

// sums are the five normal-equation accumulators for one frequency.
type sums struct {
	s, c, ss, cc, sc float64
}

// accumulate evaluates the sums for unweighted data.
func accumulate(time, flux []float64, omega float64) sums {
	var a sums
	flux = flux[:len(time)]
	for i, t := range time {
		sn, cn := math.Sincos(omega * t)
		y := flux[i]
		a.s += y * sn
		a.c += y * cn
		a.ss += sn * sn
		a.cc += cn * cn
		a.sc += sn * cn
	}
	return a
}

// accumulateWeighted evaluates the sums with per-sample weights. wflux must
// already hold weight[i]*flux[i].
func accumulateWeighted(time, wflux, weight []float64, omega float64) sums {
	var a sums
	wflux = wflux[:len(time)]
	weight = weight[:len(time)]
	for i, t := range time {
		sn, cn := math.Sincos(omega * t)
		wy := wflux[i]
		w := weight[i]
		a.s += wy * sn
		a.c += wy * cn
		a.ss += w * sn * sn
		a.cc += w * cn * cn
		a.sc += w * sn * cn
	}
	return a
}

// solve returns the coefficients of the 2×2 normal equations. ok is false
// unless |D| > tol·(SS+CC)², i.e. unless the smaller eigenvalue of the
// matrix is clearly non-zero next to the larger one. A vanishing column
// (sin(ωt) ≈ 0 at the Nyquist frequency of even sampling) is singular even
// though D/(SS·CC) stays finite. NaN sums are reported as singular as well.
func (a sums) solve(tol float64) (alpha, beta float64, ok bool) {
	d := a.ss*a.cc - a.sc*a.sc
	trace := a.ss + a.cc
	if !(math.Abs(d) > tol*trace*trace) {
		return 0, 0, false
	}

	alpha = (a.s*a.cc - a.c*a.sc) / d
	beta = (a.c*a.ss - a.s*a.sc) / d
	return alpha, beta, true
}

// kernel binds prepared input to the per-frequency fit.
type kernel struct {
	time   []float64 // megaseconds
	flux   []float64 // preprocessed, multiplied by weight when weighted
	weight []float64 // nil for unweighted fits
	tol    float64
}

func newKernel(time, flux, weight []float64, tol float64) kernel {
	if weight == nil {
		return kernel{time: time, flux: flux, tol: tol}
	}

	wflux := make([]float64, len(flux))
	vecmath.MulBlock(wflux, flux, weight)
	return kernel{time: time, flux: wflux, weight: weight, tol: tol}
}

func (k kernel) fit(f float64) (alpha, beta float64, ok bool) {
	omega := 2 * math.Pi * f

	var a sums
	if k.weight == nil {
		a = accumulate(k.time, k.flux, omega)
	} else {
		a = accumulateWeighted(k.time, k.flux, k.weight, omega)
	}
	return a.solve(k.tol)
}

// FitAt fits a single sinusoid at cyclic frequency f. ts.Time must already be
// normalized (see [series.Normalize]) and ts.Flux is used as given, without
// mean subtraction. Weights are applied when ts carries them. Of opts only
// the singular tolerance is used.
func FitAt(ts series.TimeSeries, f float64, opts ...Option) (Fit, error) {
	if err := ts.Validate(); err != nil {
		return Fit{}, err
	}
	cfg := ApplyOptions(opts...)
	return newKernel(ts.Time, ts.Flux, ts.Weight, cfg.SingularTolerance).fitAt(f)
}

func (k kernel) fitAt(f float64) (Fit, error) {
	alpha, beta, ok := k.fit(f)
	if !ok {
		return Fit{}, &SingularFitError{Frequency: f}
	}
	return Fit{Frequency: f, Alpha: alpha, Beta: beta, Power: alpha*alpha + beta*beta}, nil
}
