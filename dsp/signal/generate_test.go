package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-periodogram/dsp/series"
)

func TestTimesCadence(t *testing.T) {
	g := NewGenerator(WithCadence(60), WithStart(100))
	time, err := g.Times(600)
	if err != nil {
		t.Fatalf("Times() error = %v", err)
	}
	if len(time) != 10 {
		t.Fatalf("len = %d, want 10", len(time))
	}
	if time[0] != 100 || time[9] != 640 {
		t.Fatalf("unexpected bounds: %v .. %v", time[0], time[9])
	}

	if _, err := g.Times(0); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestDaysDurationMatchesCampaignLength(t *testing.T) {
	g := NewGenerator()
	time, err := g.Times(g.DaysDuration(1))
	if err != nil {
		t.Fatalf("Times() error = %v", err)
	}
	// 0, 60, ..., 86400 inclusive.
	if len(time) != 1441 {
		t.Fatalf("len = %d, want 1441", len(time))
	}
	if time[len(time)-1] != 86400 {
		t.Fatalf("last = %v, want 86400", time[len(time)-1])
	}
}

func TestModesSuperposition(t *testing.T) {
	time := []float64{0, 125000, 250000}
	modes := []Mode{
		{Frequency: 2, Amplitude: 1.5},
		{Frequency: 4, Amplitude: 0.5, Phase: math.Pi},
	}
	y := Modes(time, modes)

	for i, tt := range time {
		want := 1.5*math.Cos(2*math.Pi*2e-6*tt) + 0.5*math.Cos(2*math.Pi*4e-6*tt+math.Pi)
		if math.Abs(y[i]-want) > 1e-12 {
			t.Fatalf("y[%d] = %v, want %v", i, y[i], want)
		}
	}
	if math.Abs(y[0]-1.0) > 1e-12 {
		t.Fatalf("y[0] = %v, want 1", y[0])
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGenerator(WithSeed(42))
	g2 := NewGenerator(WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 1 {
			t.Fatalf("noise[%d] = %v out of range", i, n1[i])
		}
	}

	if _, err := g1.WhiteNoise(-1, 4); err == nil {
		t.Fatal("expected error for negative amplitude")
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}
}

func TestGappedKeepsOrderAndFirstSample(t *testing.T) {
	g := NewGenerator(WithSeed(7))
	ts, err := g.Series(60*1000, []Mode{{Frequency: 3000, Amplitude: 1}})
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}

	gapped, err := g.Gapped(ts, 0.5)
	if err != nil {
		t.Fatalf("Gapped() error = %v", err)
	}
	if gapped.Len() == 0 || gapped.Len() >= ts.Len() {
		t.Fatalf("gapped len = %d of %d", gapped.Len(), ts.Len())
	}
	if gapped.Time[0] != ts.Time[0] {
		t.Fatal("first sample dropped")
	}
	for i := 1; i < gapped.Len(); i++ {
		if gapped.Time[i] <= gapped.Time[i-1] {
			t.Fatalf("time not ascending at %d", i)
		}
	}
	if err := gapped.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	again, _ := NewGenerator(WithSeed(7)).Gapped(ts, 0.5)
	if again.Len() != gapped.Len() {
		t.Fatal("gaps are not deterministic")
	}

	if _, err := g.Gapped(ts, 0); err == nil {
		t.Fatal("expected error for zero keep fraction")
	}
}

func TestAddNoiseLeavesInputUntouched(t *testing.T) {
	ts := series.TimeSeries{Time: []float64{0, 1, 2}, Flux: []float64{1, 1, 1}}
	noisy, err := NewGenerator().AddNoise(ts, 0.1)
	if err != nil {
		t.Fatalf("AddNoise() error = %v", err)
	}
	for i := range ts.Flux {
		if ts.Flux[i] != 1 {
			t.Fatal("input mutated")
		}
		if math.Abs(noisy.Flux[i]-1) > 0.1 {
			t.Fatalf("noisy[%d] = %v", i, noisy.Flux[i])
		}
	}
}
