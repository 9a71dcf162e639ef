package tsio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-periodogram/dsp/series"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ParseError reports a malformed input line.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tsio: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("tsio: line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// scanColumns calls fn with the fields of every data line. Blank lines and
// lines starting with '#' are skipped.
func scanColumns(r io.Reader, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(line, strings.Fields(text)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("tsio: read: %w", err)
	}
	return nil
}

func parseFloats(line int, fields []string, out []float64) error {
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return &ParseError{Line: line, Msg: fmt.Sprintf("column %d", i+1), Err: err}
		}
		out[i] = v
	}
	return nil
}

// ReadSeries parses a whitespace-separated time series. Two columns (time,
// flux) are required; with weighted set a third column holds the weights.
// Extra columns are ignored.
func ReadSeries(r io.Reader, weighted bool) (series.TimeSeries, error) {
	cols := 2
	if weighted {
		cols = 3
	}

	var ts series.TimeSeries
	row := make([]float64, cols)
	err := scanColumns(r, func(line int, fields []string) error {
		if len(fields) < cols {
			return &ParseError{Line: line, Msg: fmt.Sprintf("want %d columns, got %d", cols, len(fields))}
		}
		if err := parseFloats(line, fields, row); err != nil {
			return err
		}
		ts.Time = append(ts.Time, row[0])
		ts.Flux = append(ts.Flux, row[1])
		if weighted {
			ts.Weight = append(ts.Weight, row[2])
		}
		return nil
	})
	if err != nil {
		return series.TimeSeries{}, err
	}
	if ts.Len() == 0 {
		return series.TimeSeries{}, series.ErrEmpty
	}
	return ts, nil
}

// ReadSeriesFile opens path (decompressing by extension) and reads a series.
func ReadSeriesFile(path string, weighted bool) (ts series.TimeSeries, err error) {
	r, err := Open(path)
	if err != nil {
		return series.TimeSeries{}, err
	}
	defer func() {
		err = errors.Join(err, r.Close())
	}()

	ts, err = ReadSeries(r, weighted)
	if err != nil {
		return series.TimeSeries{}, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}

// WriteSeries writes ts as tab-separated columns with full precision. The
// weight column is written when ts carries weights.
func WriteSeries(w io.Writer, ts series.TimeSeries) error {
	if err := ts.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for i := range ts.Time {
		var err error
		if ts.Weighted() {
			_, err = fmt.Fprintf(bw, "%.15e\t%.15e\t%.15e\n", ts.Time[i], ts.Flux[i], ts.Weight[i])
		} else {
			_, err = fmt.Fprintf(bw, "%.15e\t%.15e\n", ts.Time[i], ts.Flux[i])
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSeriesFile creates path (compressing by extension) and writes ts.
func WriteSeriesFile(path string, ts series.TimeSeries) (err error) {
	w, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()
	return WriteSeries(w, ts)
}
