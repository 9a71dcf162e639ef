package tsio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-periodogram/dsp/clean"
	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
)

func TestWriteSpectrumFormat(t *testing.T) {
	spec, err := periodogram.NewSpectrum([]float64{1900, 2000}, []float64{0.001, 6.25})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSpectrum(&buf, spec))

	want := "1.900000000e+03    1.000000000e-03\n" +
		"2.000000000e+03    6.250000000e+00\n"
	assert.Equal(t, want, buf.String())

	got, err := ReadSpectrum(&buf)
	require.NoError(t, err)
	assert.True(t, spec.Equal(got))
}

func TestSpectrumFileCompressed(t *testing.T) {
	spec, err := periodogram.NewSpectrum([]float64{1, 2, 3}, []float64{0.5, 0.25, 0.125})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "spec.txt.zst")
	require.NoError(t, WriteSpectrumFile(path, spec))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := ReadSpectrum(r)
	require.NoError(t, err)
	assert.True(t, spec.Equal(got))
}

func TestCleanLogRoundTrip(t *testing.T) {
	comps := []clean.Component{
		{Number: 1, Fit: periodogram.Fit{Frequency: 2000, Alpha: 0.5, Beta: -2, Power: 4.25}},
		{Number: 2, Fit: periodogram.Fit{Frequency: 2500.125, Alpha: 1, Beta: 0, Power: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCleanLog(&buf, CleanLog{Input: "ts.txt", Low: 1900, High: 2600, Components: comps}))

	out := buf.String()
	assert.Contains(t, out, `# Log of CLEAN on "ts.txt"`)
	assert.Contains(t, out, "# Interval: [1900.00, 2600.00] microHz")
	assert.Contains(t, out, "# Finding 2 frequencies")
	assert.Contains(t, out, "      1     2000.000000     4.250000     0.500000    -2.000000\n")

	got, err := ReadCleanLog(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, comps, got)
}
