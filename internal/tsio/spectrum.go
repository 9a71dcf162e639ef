package tsio

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-periodogram/dsp/clean"
	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
)

// WriteSpectrum writes one "frequency power" line per point.
func WriteSpectrum(w io.Writer, spec *periodogram.Spectrum) error {
	bw := bufio.NewWriter(w)
	for _, p := range spec.All() {
		if _, err := fmt.Fprintf(bw, "%15.9e %18.9e\n", p.Frequency, p.Power); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSpectrumFile creates path (compressing by extension) and writes spec.
func WriteSpectrumFile(path string, spec *periodogram.Spectrum) (err error) {
	w, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()
	return WriteSpectrum(w, spec)
}

// ReadSpectrum parses a two-column spectrum as written by [WriteSpectrum].
func ReadSpectrum(r io.Reader) (*periodogram.Spectrum, error) {
	var freq, power []float64
	row := make([]float64, 2)
	err := scanColumns(r, func(line int, fields []string) error {
		if len(fields) < 2 {
			return &ParseError{Line: line, Msg: fmt.Sprintf("want 2 columns, got %d", len(fields))}
		}
		if err := parseFloats(line, fields, row); err != nil {
			return err
		}
		freq = append(freq, row[0])
		power = append(power, row[1])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return periodogram.NewSpectrum(freq, power)
}

// CleanLog describes a CLEAN run for [WriteCleanLog].
type CleanLog struct {
	Input      string
	Low, High  float64
	Components []clean.Component
}

const cleanLogRule = "# ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~"

// WriteCleanLog writes the table of removed frequencies: a commented header
// followed by one "number frequency power alpha beta" row per component.
func WriteCleanLog(w io.Writer, log CleanLog) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, cleanLogRule)
	fmt.Fprintf(bw, "# Log of CLEAN on %q\n", log.Input)
	fmt.Fprintf(bw, "# Interval: [%.2f, %.2f] microHz\n", log.Low, log.High)
	fmt.Fprintf(bw, "# Finding %d frequencies\n", len(log.Components))
	fmt.Fprintln(bw, "# ")
	fmt.Fprintf(bw, "# %8s %11s %11s %12s %12s\n", "Number", "Frequency", "Power", "Alpha", "Beta")
	fmt.Fprintln(bw, cleanLogRule)

	for _, c := range log.Components {
		fmt.Fprintf(bw, " %6d %15.6f %12.6f %12.6f %12.6f\n", c.Number, c.Frequency, c.Power, c.Alpha, c.Beta)
	}
	return bw.Flush()
}

// ReadCleanLog parses the component rows of a CLEAN log.
func ReadCleanLog(r io.Reader) ([]clean.Component, error) {
	var out []clean.Component
	row := make([]float64, 5)
	err := scanColumns(r, func(line int, fields []string) error {
		if len(fields) < 5 {
			return &ParseError{Line: line, Msg: fmt.Sprintf("want 5 columns, got %d", len(fields))}
		}
		if err := parseFloats(line, fields, row); err != nil {
			return err
		}
		c := clean.Component{Number: int(row[0])}
		c.Frequency, c.Power, c.Alpha, c.Beta = row[1], row[2], row[3], row[4]
		out = append(out, c)
		return nil
	})
	return out, err
}
