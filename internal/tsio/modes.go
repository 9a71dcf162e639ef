package tsio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-periodogram/dsp/signal"
)

var errNoModes = errors.New("tsio: mode list is empty")

// ReadModes parses an oscillation catalogue with the columns
// "l n nu A delta": degree, radial order, frequency in µHz, amplitude and
// phase in radians.
func ReadModes(r io.Reader) ([]signal.Mode, error) {
	var modes []signal.Mode
	row := make([]float64, 5)
	err := scanColumns(r, func(line int, fields []string) error {
		if len(fields) < 5 {
			return &ParseError{Line: line, Msg: fmt.Sprintf("want 5 columns, got %d", len(fields))}
		}
		if err := parseFloats(line, fields, row); err != nil {
			return err
		}
		modes = append(modes, signal.Mode{
			Degree:    int(row[0]),
			Order:     int(row[1]),
			Frequency: row[2],
			Amplitude: row[3],
			Phase:     row[4],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(modes) == 0 {
		return nil, errNoModes
	}
	return modes, nil
}

// WriteModes writes modes in the catalogue format read by [ReadModes].
func WriteModes(w io.Writer, modes []signal.Mode) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %3s %4s %14s %12s %12s\n", "l", "n", "nu", "A", "delta")
	for _, m := range modes {
		fmt.Fprintf(bw, "%5d %4d %14.6f %12.6e %12.6f\n", m.Degree, m.Order, m.Frequency, m.Amplitude, m.Phase)
	}
	return bw.Flush()
}

type modeYAML struct {
	Degree    int     `yaml:"l"`
	Order     int     `yaml:"n"`
	Frequency float64 `yaml:"nu"`
	Amplitude float64 `yaml:"amplitude"`
	Phase     float64 `yaml:"phase"`
}

type modeFile struct {
	Modes []modeYAML `yaml:"modes"`
}

// ReadModesYAML parses a YAML document with a top-level "modes" list whose
// entries have the keys l, n, nu, amplitude and phase.
func ReadModesYAML(r io.Reader) ([]signal.Mode, error) {
	var doc modeFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoModes
		}
		return nil, fmt.Errorf("tsio: modes yaml: %w", err)
	}
	if len(doc.Modes) == 0 {
		return nil, errNoModes
	}

	modes := make([]signal.Mode, len(doc.Modes))
	for i, m := range doc.Modes {
		modes[i] = signal.Mode(m)
	}
	return modes, nil
}

// WriteModesYAML writes modes in the format read by [ReadModesYAML].
func WriteModesYAML(w io.Writer, modes []signal.Mode) error {
	doc := modeFile{Modes: make([]modeYAML, len(modes))}
	for i, m := range modes {
		doc.Modes[i] = modeYAML(m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("tsio: modes yaml: %w", err)
	}
	return enc.Close()
}

// LoadModes reads a mode list from path: YAML for .yaml/.yml files and the
// column catalogue otherwise.
func LoadModes(path string) (modes []signal.Mode, err error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, r.Close())
	}()

	switch strings.ToLower(filepath.Ext(strings.TrimSuffix(path, compressedExt(path)))) {
	case ".yaml", ".yml":
		modes, err = ReadModesYAML(r)
	default:
		modes, err = ReadModes(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return modes, nil
}

// compressedExt returns the compression extension of path, or "".
func compressedExt(path string) string {
	if CompressionFor(path) == None {
		return ""
	}
	return filepath.Ext(path)
}
