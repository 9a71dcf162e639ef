package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair lies within eps. A NaN matches only a NaN, so spectra with
// NaN-marked singular frequencies compare point by point.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i, g := range got {
		w := want[i]
		if math.IsNaN(g) || math.IsNaN(w) {
			if math.IsNaN(g) != math.IsNaN(w) {
				t.Fatalf("[%d]: got %v, want %v", i, g, w)
			}
			continue
		}
		if d := math.Abs(g - w); d > eps {
			t.Fatalf("[%d]: got %v, want %v (|diff| %g > %g)", i, g, w, d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d]: %v is not finite", i, v)
		}
	}
}

// MaxAbsDiff returns max |a[i]-b[i]|, skipping pairs where either side is
// NaN.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("testutil: lengths %d and %d differ", len(a), len(b))
	}
	worst := 0.0
	for i, v := range a {
		d := math.Abs(v - b[i])
		if !math.IsNaN(d) {
			worst = math.Max(worst, d)
		}
	}
	return worst, nil
}

// RequireClose fails t if got differs from want by more than rel·|want|.
// For want == 0 the tolerance is absolute.
func RequireClose(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	tol := rel * math.Abs(want)
	if want == 0 {
		tol = rel
	}
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}
