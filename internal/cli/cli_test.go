package cli

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
	"github.com/cwbudde/algo-periodogram/dsp/series"
	"github.com/cwbudde/algo-periodogram/internal/config"
	"github.com/cwbudde/algo-periodogram/internal/tsio"
)

// writeSine stores two days of a 2000 µHz sine sampled every 60 s.
func writeSine(t *testing.T) string {
	t.Helper()
	n := 2 * 1440
	tm := make([]float64, n)
	flux := make([]float64, n)
	for i := range tm {
		tm[i] = float64(i) * 60
		flux[i] = 3 + 2*math.Sin(2*math.Pi*2000e-6*tm[i])
	}
	ts, err := series.New(tm, flux)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sine.txt")
	require.NoError(t, tsio.WriteSeriesFile(path, ts))
	return path
}

func newSpectrumCommand() *Command {
	return New("powerspec", "[flags] INPUT OUTPUT", 2,
		config.AddInputFlags, config.AddEngineFlags, config.AddSamplingFlags,
		config.AddCacheFlags, config.AddPlotFlags)
}

func TestParseChecksArguments(t *testing.T) {
	c := newSpectrumCommand()
	err := c.Parse([]string{"-q", "only-one"})
	require.ErrorIs(t, err, ErrUsage)

	c = newSpectrumCommand()
	require.NoError(t, c.Parse([]string{"-q", "--auto", "in.txt", "out.txt"}))
	assert.Equal(t, []string{"in.txt", "out.txt"}, c.Args)
	assert.True(t, c.Config.Sampling.Auto)
}

func TestSpectrumPipeline(t *testing.T) {
	input := writeSine(t)
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "spec.png")

	c := newSpectrumCommand()
	require.NoError(t, c.Parse([]string{
		"-q", "--low", "1900", "--high", "2100", "--step", "1",
		"--cache-dir", filepath.Join(dir, "cache"), "--plot", pngPath,
		input, filepath.Join(dir, "out.txt"),
	}))

	ts, err := c.ReadSeries(input)
	require.NoError(t, err)
	assert.Equal(t, 2880, ts.Len())

	st, err := c.Describe(ts)
	require.NoError(t, err)
	assert.InDelta(t, 1/(2*60e-6), st.Nyquist, 1e-6)

	g, err := c.Grid(ts)
	require.NoError(t, err)
	assert.Equal(t, 200, g.Len())

	first, err := c.Spectrum(context.Background(), ts, g)
	require.NoError(t, err)
	peak, ok := first.Peak()
	require.True(t, ok)
	assert.Equal(t, 2000.0, peak.Frequency)
	assert.InDelta(t, 4.0, peak.Power, 0.05)

	second, err := c.Spectrum(context.Background(), ts, g)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	direct, err := periodogram.ComputeSeries(context.Background(), ts, g)
	require.NoError(t, err)
	assert.True(t, first.Equal(direct))

	require.NoError(t, c.Plot(first, "sine"))
	info, err := os.Stat(pngPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPlotWithoutPath(t *testing.T) {
	c := newSpectrumCommand()
	require.NoError(t, c.Parse([]string{"-q", "a", "b"}))
	assert.NoError(t, c.Plot(nil, ""))
}

func TestPlotReferenceMissing(t *testing.T) {
	c := newSpectrumCommand()
	dir := t.TempDir()
	require.NoError(t, c.Parse([]string{
		"-q", "--plot", filepath.Join(dir, "p.png"),
		"--reference", filepath.Join(dir, "missing.dat"), "a", "b",
	}))
	spec, err := periodogram.NewSpectrum([]float64{1, 2}, []float64{1, 2})
	require.NoError(t, err)
	assert.Error(t, c.Plot(spec, ""))
}
