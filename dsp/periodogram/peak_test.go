package periodogram

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/series"
	"github.com/cwbudde/algo-periodogram/dsp/signal"
	"github.com/cwbudde/algo-periodogram/internal/testutil"
)

func TestMaxReturnsPeakFit(t *testing.T) {
	ts := sineSeries(t)

	fit, err := Max(context.Background(), ts, grid.Must(1950, 2050, 0.5))
	if err != nil {
		t.Fatalf("Max: %v", err)
	}
	if fit.Frequency != 2000 {
		t.Fatalf("Frequency = %v, want 2000", fit.Frequency)
	}
	testutil.RequireClose(t, "power", fit.Power, 6.25, 0.05)
	testutil.RequireClose(t, "amplitude", fit.Amplitude(), 2.5, 0.02)
}

func TestMaxPropagatesErrors(t *testing.T) {
	ts := series.TimeSeries{Time: []float64{0, 1, 2}, Flux: []float64{1, 2}}
	_, err := Max(context.Background(), ts, grid.Must(1, 2, 1))
	var lenErr *series.LengthMismatchError
	if !errors.As(err, &lenErr) {
		t.Fatalf("err = %v, want LengthMismatchError", err)
	}
}

func TestMaxAllSingular(t *testing.T) {
	ts := series.TimeSeries{Time: []float64{0, 60, 120}, Flux: []float64{1, 2, 3}}
	_, err := Max(context.Background(), ts, grid.Must(0, 0.5, 1), WithSingularPolicy(SingularNaN))
	if !errors.Is(err, errEmptySpectrum) {
		t.Fatalf("err = %v, want errEmptySpectrum", err)
	}
}

func TestRefineLocatesPeakBetweenGridPoints(t *testing.T) {
	gen := signal.NewGenerator()
	ts, err := gen.Series(gen.DaysDuration(14), []signal.Mode{{Frequency: 2000.37, Amplitude: 1.2, Phase: 0.4}})
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	norm, err := ts.Normalize(series.Seconds)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	coarse, err := Max(context.Background(), ts, grid.Must(1990, 2010, 1))
	if err != nil {
		t.Fatalf("Max: %v", err)
	}
	if coarse.Frequency != 2000 {
		t.Fatalf("coarse peak = %v, want 2000", coarse.Frequency)
	}

	fine, err := Refine(norm, coarse.Frequency-1, coarse.Frequency+1, 1e-6)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if math.Abs(fine.Frequency-2000.37) > 0.01 {
		t.Fatalf("refined frequency = %v, want 2000.37", fine.Frequency)
	}
	if fine.Power < coarse.Power {
		t.Fatalf("refined power %v below coarse power %v", fine.Power, coarse.Power)
	}
	testutil.RequireClose(t, "amplitude", fine.Amplitude(), 1.2, 0.01)
	if math.Abs(fine.Phase()-0.4) > 0.1 {
		t.Fatalf("phase = %v, want 0.4", fine.Phase())
	}
}

func TestRefineNoConvergence(t *testing.T) {
	ts := series.TimeSeries{Time: []float64{0, 0.1, 0.2, 0.3}, Flux: []float64{1, 0, -1, 0}}
	_, err := Refine(ts, 1, 3, 0)
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("err = %v, want ErrNoConvergence", err)
	}
}

func TestRefineUsesTolerance(t *testing.T) {
	ts := series.TimeSeries{Time: []float64{0, 0.1, 0.2, 0.3}, Flux: []float64{1, 0, -1, 0}}
	_, err := Refine(ts, 1, 3, 1e-3, WithSingularTolerance(1))
	var sErr *SingularFitError
	if !errors.As(err, &sErr) {
		t.Fatalf("err = %v, want SingularFitError", err)
	}
}

func TestGoldenMinParabola(t *testing.T) {
	x, err := goldenMin(func(x float64) float64 { return (x - 1.25) * (x - 1.25) }, -2, 3, 1e-9)
	if err != nil {
		t.Fatalf("goldenMin: %v", err)
	}
	if math.Abs(x-1.25) > 1e-8 {
		t.Fatalf("x = %v, want 1.25", x)
	}
}
