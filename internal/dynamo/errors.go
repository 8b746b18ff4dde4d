package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrInvalidArgument indicates a malformed schedule, initial state or
	// callback. It is always returned before any derivative evaluation.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrDerivative indicates a derivative callback produced NaN or Inf from
	// finite inputs, the equivalent of a domain error.
	ErrDerivative = errors.New("dynamo: derivative returned a non-finite value")

	// ErrDimensionMismatch indicates a rate vector whose length differs from
	// the state it was computed from.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and derivative")

	// ErrContextCanceled indicates a driven run was interrupted.
	ErrContextCanceled = errors.New("dynamo: run canceled by context")
)

// StepError wraps a failure raised while advancing from grid point Step.
// The partial trajectory is never returned alongside it.
type StepError struct {
	Step  int
	Time  float64
	State State
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
