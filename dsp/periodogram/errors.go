package periodogram

import (
	"errors"
	"fmt"
)

// ErrNoConvergence is returned when peak refinement does not reach the
// requested tolerance within the iteration limit.
var ErrNoConvergence = errors.New("periodogram: refinement did not converge")

var errEmptySpectrum = errors.New("periodogram: spectrum has no finite power")

// SingularFitError reports a degenerate normal-equations matrix at one test
// frequency.
type SingularFitError struct {
	Frequency float64
}

func (e *SingularFitError) Error() string {
	return fmt.Sprintf("periodogram: singular least-squares fit at frequency %g", e.Frequency)
}
