package tsio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-periodogram/dsp/signal"
)

var testModes = []signal.Mode{
	{Degree: 0, Order: 20, Frequency: 2000.5, Amplitude: 2.5, Phase: 0.25},
	{Degree: 1, Order: 21, Frequency: 2100, Amplitude: 0.5, Phase: -1},
}

func TestReadModesCatalogue(t *testing.T) {
	in := "# l n nu A delta\n0 20 2000.5 2.5 0.25\n1.0 21.0 2100 0.5 -1\n"
	modes, err := ReadModes(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, testModes, modes)

	_, err = ReadModes(strings.NewReader("# nothing\n"))
	assert.ErrorIs(t, err, errNoModes)

	_, err = ReadModes(strings.NewReader("0 1 2 3\n"))
	var pErr *ParseError
	assert.ErrorAs(t, err, &pErr)
}

func TestModesCatalogueRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteModes(&buf, testModes))

	modes, err := ReadModes(&buf)
	require.NoError(t, err)
	require.Len(t, modes, 2)
	for i, m := range modes {
		assert.Equal(t, testModes[i].Degree, m.Degree)
		assert.Equal(t, testModes[i].Order, m.Order)
		assert.InDelta(t, testModes[i].Frequency, m.Frequency, 1e-6)
		assert.InDelta(t, testModes[i].Amplitude, m.Amplitude, 1e-6)
		assert.InDelta(t, testModes[i].Phase, m.Phase, 1e-6)
	}
}

func TestModesYAML(t *testing.T) {
	in := `modes:
  - l: 0
    n: 20
    nu: 2000.5
    amplitude: 2.5
    phase: 0.25
  - {l: 1, n: 21, nu: 2100, amplitude: 0.5, phase: -1}
`
	modes, err := ReadModesYAML(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, testModes, modes)

	var buf bytes.Buffer
	require.NoError(t, WriteModesYAML(&buf, testModes))
	again, err := ReadModesYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, testModes, again)

	_, err = ReadModesYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, errNoModes)
	_, err = ReadModesYAML(strings.NewReader("modes: [\n"))
	assert.Error(t, err)
}

func TestLoadModesByExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "modes.yaml")
	var buf bytes.Buffer
	require.NoError(t, WriteModesYAML(&buf, testModes))
	require.NoError(t, os.WriteFile(yamlPath, buf.Bytes(), 0o644))

	modes, err := LoadModes(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, testModes, modes)

	datPath := filepath.Join(dir, "oscillations.dat.gz")
	w, err := Create(datPath)
	require.NoError(t, err)
	require.NoError(t, WriteModes(w, testModes))
	require.NoError(t, w.Close())

	modes, err = LoadModes(datPath)
	require.NoError(t, err)
	assert.Len(t, modes, 2)
}
