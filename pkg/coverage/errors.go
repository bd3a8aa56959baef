package coverage

import (
	"fmt"
)

// ErrMissingBand indicates a style referencing a band index the source
// does not have.
type ErrMissingBand struct {
	Index int
	Count int
}

func (e *ErrMissingBand) Error() string {
	return fmt.Sprintf("style references band %d but source has %d bands", e.Index, e.Count)
}

// ErrMissingPattern indicates a custom coverage type without a pattern.
type ErrMissingPattern struct{}

func (e *ErrMissingPattern) Error() string {
	return "custom coverage type requires a pattern"
}

// ErrDrawFunction wraps a failure (error or panic) raised by a
// user-supplied coverage draw function. The source state is set to
// StateError when this occurs.
type ErrDrawFunction struct {
	Cause error
}

func (e *ErrDrawFunction) Error() string {
	return fmt.Sprintf("coverage draw function failed: %v", e.Cause)
}

func (e *ErrDrawFunction) Unwrap() error {
	return e.Cause
}
