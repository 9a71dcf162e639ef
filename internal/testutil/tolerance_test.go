package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"equal", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"one off", []float64{1, 2, 3}, []float64{1, 2.5, 3}, 0.5},
		{"nan skipped", []float64{math.NaN(), 1}, []float64{7, 1.25}, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxAbsDiff(tt.a, tt.b)
			if err != nil {
				t.Fatalf("MaxAbsDiff: %v", err)
			}
			if got != tt.want {
				t.Fatalf("MaxAbsDiff = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length error")
	}
}

func TestRequireSliceNearlyEqualNaN(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, math.NaN(), 3}, []float64{1 + 1e-13, math.NaN(), 3}, 1e-12)
}

func TestRequireClose(t *testing.T) {
	RequireClose(t, "near", 6.24, 6.25, 0.05)
	RequireClose(t, "zero", 1e-13, 0, 1e-12)
}
