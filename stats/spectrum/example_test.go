package spectrum_test

import (
	"fmt"

	spectrumstats "github.com/cwbudde/algo-periodogram/stats/spectrum"
)

func ExampleCalculate() {
	freq := []float64{100, 101, 102, 103, 104}
	power := []float64{0, 1, 4, 1, 0}
	s := spectrumstats.Calculate(freq, power)
	fmt.Printf("peak=%.0f centroid=%.0f fwhm=%.2f\n", s.PeakFrequency, s.Centroid, s.HalfPowerWidth)

	// Output:
	// peak=102 centroid=102 fwhm=1.33
}
