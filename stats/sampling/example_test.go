package sampling_test

import (
	"fmt"

	"github.com/cwbudde/algo-periodogram/dsp/series"
	"github.com/cwbudde/algo-periodogram/stats/sampling"
)

func ExampleCalculate() {
	ts := series.TimeSeries{
		Time: []float64{0, 60, 120, 180, 600, 660},
		Flux: []float64{1, -1, 1, -1, 1, -1},
	}
	s, _ := sampling.Calculate(ts, series.Seconds)
	fmt.Printf("cadence=%.0f s gaps=%d nyquist=%.1f µHz\n", s.Cadence, s.Gaps, s.Nyquist)

	// Output:
	// cadence=60 s gaps=1 nyquist=8333.3 µHz
}
