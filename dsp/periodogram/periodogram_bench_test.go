package periodogram

import (
	"context"
	"strconv"
	"testing"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/internal/testutil"
)

func BenchmarkCompute(b *testing.B) {
	sizes := []int{256, 1024, 4096}
	for _, size := range sizes {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			time := testutil.JitteredTimes(1, size, 60, 0.4)
			flux := testutil.DeterministicNoise(2, 1, size)
			g := grid.Must(1, 5000, 5)

			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				if _, err := Compute(context.Background(), time, flux, g); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFitAt(b *testing.B) {
	time := testutil.JitteredTimes(3, 4096, 0.00006, 0.4)
	flux := testutil.DeterministicNoise(4, 1, len(time))
	k := newKernel(time, flux, nil, DefaultSingularTolerance)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		k.fit(2000)
	}
}
