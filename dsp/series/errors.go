package series

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when a time series has no samples.
var ErrEmpty = errors.New("series: time series is empty")

var errTooShort = errors.New("series: at least two samples are required")

// LengthMismatchError reports paired sequences of different length.
type LengthMismatchError struct {
	Time  int
	Other int
	// Name identifies the sequence compared against time ("flux" or "weight").
	Name string
}

func (e *LengthMismatchError) Error() string {
	name := e.Name
	if name == "" {
		name = "flux"
	}
	return fmt.Sprintf("series: time has %d samples but %s has %d", e.Time, name, e.Other)
}

// UnknownUnitError reports an unrecognized time unit tag.
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("series: unknown time unit %q", e.Unit)
}
