package series

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Unit tags the unit of raw timestamps.
type Unit int

const (
	// Seconds is the unit of the instrument files (default).
	Seconds Unit = iota
	// Days is used by some ground-based campaign files.
	Days
	// Megaseconds is the normalized unit itself.
	Megaseconds
	// Normalized marks timestamps that were already scaled by the caller.
	Normalized
)

const (
	secondsPerMegasecond = 1e6
	secondsPerDay        = 86400.0
)

// ParseUnit maps a unit name to its tag. Matching is case-insensitive except
// for "Ms", which is accepted as an alias of "ms" (megaseconds).
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "s", "sec", "second", "seconds":
		return Seconds, nil
	case "d", "day", "days":
		return Days, nil
	case "ms", "megasecond", "megaseconds":
		return Megaseconds, nil
	case "normalized", "normalised", "none":
		return Normalized, nil
	default:
		return 0, &UnknownUnitError{Unit: name}
	}
}

// String implements fmt.Stringer.
func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Days:
		return "days"
	case Megaseconds:
		return "megaseconds"
	case Normalized:
		return "normalized"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Valid reports whether u is one of the defined tags.
func (u Unit) Valid() bool {
	return u >= Seconds && u <= Normalized
}

// Factor returns the multiplier that converts a timestamp in unit u to
// megaseconds.
func (u Unit) Factor() (float64, error) {
	switch u {
	case Seconds:
		return 1 / secondsPerMegasecond, nil
	case Days:
		return secondsPerDay / secondsPerMegasecond, nil
	case Megaseconds, Normalized:
		return 1, nil
	default:
		return 0, &UnknownUnitError{Unit: u.String()}
	}
}

// Normalize returns a copy of time expressed in megaseconds.
func Normalize(time []float64, unit Unit) ([]float64, error) {
	factor, err := unit.Factor()
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(time))
	if factor == 1 {
		copy(out, time)
		return out, nil
	}

	floats.ScaleTo(out, factor, time)
	return out, nil
}

// Denormalize converts megaseconds back to unit u. It is the inverse of
// [Normalize] up to rounding.
func Denormalize(time []float64, unit Unit) ([]float64, error) {
	factor, err := unit.Factor()
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(time))
	if factor == 1 {
		copy(out, time)
		return out, nil
	}

	for i, t := range time {
		out[i] = t / factor
	}
	return out, nil
}
