package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-periodogram/dsp/signal"
)

func ExampleModes() {
	// A 5000 µHz mode sampled every 100 s completes half a cycle per sample.
	time := []float64{0, 100, 200, 300}
	y := signal.Modes(time, []signal.Mode{{Frequency: 5000, Amplitude: 2}})
	fmt.Printf("%.1f %.1f %.1f %.1f\n", y[0], y[1], y[2], y[3])
	// Output:
	// 2.0 -2.0 2.0 -2.0
}
