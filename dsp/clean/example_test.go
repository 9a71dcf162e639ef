package clean_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-periodogram/dsp/clean"
	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/signal"
)

func ExampleCleaner_Run() {
	gen := signal.NewGenerator()
	ts, _ := gen.Series(gen.DaysDuration(5), []signal.Mode{
		{Frequency: 3000, Amplitude: 3},
		{Frequency: 3100, Amplitude: 1},
	})

	c, _ := clean.New(grid.Must(2950, 3150, 1), 2)
	res, _ := c.Run(context.Background(), ts)
	for _, comp := range res.Components {
		fmt.Printf("%d: %.0f µHz, amplitude %.1f\n", comp.Number, comp.Frequency, comp.Amplitude())
	}
	// Output:
	// 1: 3000 µHz, amplitude 3.0
	// 2: 3100 µHz, amplitude 1.0
}
