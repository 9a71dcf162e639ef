package testutil

import (
	"math/rand"
	"sort"
)

// JitteredTimes returns n ascending timestamps (seconds) on a regular cadence
// with each sample displaced by up to ±jitter·cadence/2. The result is fixed
// for a given seed.
func JitteredTimes(seed int64, n int, cadence, jitter float64) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float64(i)*cadence + (rng.Float64()-0.5)*jitter*cadence
	}
	sort.Float64s(out)
	return out
}

// DeterministicNoise returns length samples of uniform noise in
// [-amplitude, amplitude), fixed for a given seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	return Offset(make([]float64, length), value)
}

// Ones is DC(1, n), the unit weight vector.
func Ones(n int) []float64 { return DC(1, n) }

// Offset returns a copy of x with k added to every element.
func Offset(x []float64, k float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + k
	}
	return out
}
