package testutil

import (
	"slices"
	"testing"
)

func TestJitteredTimes(t *testing.T) {
	a := JitteredTimes(3, 200, 60, 0.8)
	if len(a) != 200 {
		t.Fatalf("len = %d, want 200", len(a))
	}
	if !slices.Equal(a, JitteredTimes(3, 200, 60, 0.8)) {
		t.Fatal("same seed gave different times")
	}
	if !slices.IsSorted(a) {
		t.Fatal("times not ascending")
	}
	for i, v := range a {
		if d := v - float64(i)*60; d > 24 || d < -24 {
			t.Fatalf("sample %d displaced by %v", i, d)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 64)
	if !slices.Equal(a, DeterministicNoise(42, 0.5, 64)) {
		t.Fatal("same seed gave different noise")
	}
	if slices.Equal(a, DeterministicNoise(43, 0.5, 64)) {
		t.Fatal("different seeds gave identical noise")
	}
	for i, v := range a {
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("noise[%d] = %v outside amplitude", i, v)
		}
	}
}

func TestConstantHelpers(t *testing.T) {
	if got := DC(0.5, 3); !slices.Equal(got, []float64{0.5, 0.5, 0.5}) {
		t.Fatalf("DC = %v", got)
	}
	if got := Ones(2); !slices.Equal(got, []float64{1, 1}) {
		t.Fatalf("Ones = %v", got)
	}

	x := []float64{1, 2}
	if got := Offset(x, 10); !slices.Equal(got, []float64{11, 12}) || x[0] != 1 {
		t.Fatalf("Offset = %v (input %v)", got, x)
	}
}
