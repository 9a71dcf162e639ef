package weights

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-periodogram/dsp/series"
	"github.com/cwbudde/algo-periodogram/internal/testutil"
)

func TestMovingVariance(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		scatter []float64
		want    []float64
	}{
		{
			name:    "window 2",
			cfg:     Config{Window: 2, MinCount: 1},
			scatter: []float64{1, 2, 3, 5},
			want:    []float64{0, 0.25, 0.25, 1},
		},
		{
			name:    "window 3",
			cfg:     Config{Window: 3, MinCount: 1},
			scatter: []float64{1, 2, 3, 3},
			want:    []float64{0, 0.25, 2.0 / 3, 2.0 / 9},
		},
		{
			name:    "window longer than data",
			cfg:     Config{Window: 70, MinCount: 1},
			scatter: []float64{2, 4, 6},
			want:    []float64{0, 1, 8.0 / 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCalculator(tt.cfg)
			if err != nil {
				t.Fatalf("NewCalculator: %v", err)
			}
			got, err := c.MovingVariance(tt.scatter)
			if err != nil {
				t.Fatalf("MovingVariance: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-12)
		})
	}
}

func TestMovingVarianceSkipsNaN(t *testing.T) {
	c, err := NewCalculator(Config{Window: 2, MinCount: 2})
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	got, err := c.MovingVariance([]float64{1, math.NaN(), 3, 5})
	if err != nil {
		t.Fatalf("MovingVariance: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !math.IsNaN(got[i]) {
			t.Fatalf("index %d: got %v, want NaN (too few finite samples)", i, got[i])
		}
	}
	if got[3] != 1 {
		t.Fatalf("index 3: got %v, want 1", got[3])
	}
}

func TestNewCalculatorClampsConfig(t *testing.T) {
	if _, err := NewCalculator(Config{Window: 0}); !errors.Is(err, errWindow) {
		t.Fatalf("window 0: err = %v", err)
	}

	c, err := NewCalculator(Config{Window: 3, MinCount: 10, Drop: -2})
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	if cfg := c.Config(); cfg.MinCount != 3 || cfg.Drop != 0 {
		t.Fatalf("Config = %+v, want MinCount 3, Drop 0", cfg)
	}
}

func TestApplyDefault(t *testing.T) {
	time := []float64{0, 60, 120, 180, 240}
	data := series.TimeSeries{Time: time, Flux: []float64{1, 2, 3, 4, 5}}
	scatter := series.TimeSeries{Time: time, Flux: []float64{1, 3, 1, 3, 1}}

	got, err := Generate(data, scatter)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got.Time, time[1:], 0)
	testutil.RequireSliceNearlyEqual(t, got.Flux, []float64{2, 3, 4, 5}, 0)

	// Trailing population variances: {1,3}=1, {1,3,1}=8/9, {1,3,1,3}=1, {1,3,1,3,1}=24/25.
	want := []float64{1, 9.0 / 8, 1, 25.0 / 24}
	testutil.RequireSliceNearlyEqual(t, got.Weight, want, 1e-12)
	if !got.Weighted() {
		t.Fatal("result is not weighted")
	}
}

func TestApplyTimeMismatch(t *testing.T) {
	data := series.TimeSeries{Time: []float64{0, 1, 2}, Flux: []float64{1, 2, 3}}

	tests := []series.TimeSeries{
		{Time: []float64{0, 1, 2.5}, Flux: []float64{1, 2, 3}},
		{Time: []float64{0, 1}, Flux: []float64{1, 2}},
	}
	for _, scatter := range tests {
		if _, err := Generate(data, scatter); !errors.Is(err, ErrTimeMismatch) {
			t.Fatalf("err = %v, want ErrTimeMismatch", err)
		}
	}
}

func TestApplyZeroVariance(t *testing.T) {
	time := []float64{0, 1, 2}
	data := series.TimeSeries{Time: time, Flux: []float64{1, 2, 3}}
	scatter := series.TimeSeries{Time: time, Flux: []float64{4, 4, 4}}

	if _, err := Generate(data, scatter); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("err = %v, want ErrZeroVariance", err)
	}

	c, err := NewCalculator(Config{Window: 2, Drop: 0})
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	if _, err := c.Apply(data, series.TimeSeries{Time: time, Flux: []float64{1, 2, 1}}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("no drop: err = %v, want ErrZeroVariance for the first sample", err)
	}
}

func TestApplyInvalidInput(t *testing.T) {
	bad := series.TimeSeries{Time: []float64{0, 1}, Flux: []float64{1}}
	good := series.TimeSeries{Time: []float64{0, 1}, Flux: []float64{1, 2}}

	var lenErr *series.LengthMismatchError
	if _, err := Generate(bad, good); !errors.As(err, &lenErr) {
		t.Fatalf("err = %v, want LengthMismatchError", err)
	}
	if _, err := Generate(good, bad); !errors.As(err, &lenErr) {
		t.Fatalf("err = %v, want LengthMismatchError", err)
	}

	one := series.TimeSeries{Time: []float64{0}, Flux: []float64{1}}
	if _, err := Generate(one, one); !errors.Is(err, series.ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}
