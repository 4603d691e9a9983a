package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrSingularUpdate indicates an update with a zero denominator or a
	// non-finite result.
	ErrSingularUpdate = errors.New("solver: singular update")

	// ErrInvalidInput indicates a run that was rejected before iterating.
	ErrInvalidInput = errors.New("solver: invalid input")
)

// SingularError names the quantity that made an update undefined.
type SingularError struct {
	Quantity string
	Reason   string
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("solver: singular update: %s: %s", e.Quantity, e.Reason)
}

func (e *SingularError) Unwrap() error {
	return ErrSingularUpdate
}

// Singular returns a *SingularError for quantity.
func Singular(quantity, reason string) error {
	return &SingularError{Quantity: quantity, Reason: reason}
}

// StepError wraps a failure with the iteration and iterate it occurred at.
type StepError struct {
	Iteration int
	X         float64
	Wrapped   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("iteration %d (x=%g): %v", e.Iteration, e.X, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
