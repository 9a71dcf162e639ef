package spectrum

import (
	"fmt"
	"math"
	"testing"
)

// makeTestPower creates a deterministic spectrum with one broad peak.
func makeTestPower(n int) ([]float64, []float64) {
	freq := make([]float64, n)
	power := make([]float64, n)
	for i := range power {
		freq[i] = 1000 + 0.5*float64(i)
		x := (float64(i) - float64(n)/3) / 10
		power[i] = math.Exp(-x*x) + 0.01*math.Abs(math.Sin(float64(i)))
	}
	return freq, power
}

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{256, 4096, 65536} {
		freq, power := makeTestPower(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.SetBytes(int64(n * 16))
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				_ = Calculate(freq, power)
			}
		})
	}
}
