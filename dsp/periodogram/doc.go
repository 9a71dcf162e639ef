// Package periodogram computes least-squares power spectra of unevenly
// sampled time series.
//
// For every cyclic test frequency f of a [grid.Grid] the engine fits
//
//	y(t) ≈ α·sin(ωt) + β·cos(ωt),  ω = 2πf
//
// by ordinary least squares and records the power α² + β². The fit is solved
// in closed form from five sums over the samples
//
//	S  = Σ y·sin(ωt)    C  = Σ y·cos(ωt)
//	SS = Σ sin²(ωt)     CC = Σ cos²(ωt)    SC = Σ sin(ωt)·cos(ωt)
//
// through the 2×2 normal equations
//
//	D = SS·CC − SC²
//	α = (S·CC − C·SC) / D
//	β = (C·SS − S·SC) / D
//
// The power is deliberately left unnormalized: no factor of two and no
// division by the sample count. For a noiseless sinusoid of amplitude A the
// peak power is A².
//
// Each frequency is an independent reduction over read-only input, so the
// grid is split into contiguous chunks evaluated concurrently. Results are
// written to disjoint slots and are bit-identical for any worker count.
//
// Weighted spectra multiply every term of the five sums by the per-sample
// weight w_i (typically 1/σ_i²).
//
// When D vanishes (zero frequency, or sampling that cannot separate sine from
// cosine) the fit is singular. What happens then is chosen by the caller with
// [WithSingularPolicy]: abort the call, skip the point, or store NaN.
package periodogram
