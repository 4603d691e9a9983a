// Package validate runs the pre-flight checks on user input before a solve
// starts. A failed check is reported, never recovered from.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/rootlab/internal/expr"
	"github.com/san-kum/rootlab/internal/solver"
)

var (
	ErrFormula   = errors.New("validate: invalid formula")
	ErrNumber    = errors.New("validate: not a finite number")
	ErrTolerance = errors.New("validate: tolerance must be positive")
	ErrLimits    = errors.New("validate: invalid limits")
	ErrBracket   = errors.New("validate: invalid bracket")
)

// FieldError names the input that failed. It matches both its own
// sentinel and solver.ErrInvalidInput under errors.Is.
type FieldError struct {
	Field   string
	Reason  string
	Kind    error
	Wrapped error
}

func (e *FieldError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("validate: %s: %s: %v", e.Field, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("validate: %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() []error {
	errs := []error{e.Kind, solver.ErrInvalidInput}
	if e.Wrapped != nil {
		errs = append(errs, e.Wrapped)
	}
	return errs
}

func fieldErr(field, reason string, kind, wrapped error) *FieldError {
	return &FieldError{Field: field, Reason: reason, Kind: kind, Wrapped: wrapped}
}

// Result is the outcome of Validate. On success Function holds the parsed
// formula so callers need not parse it twice.
type Result struct {
	Function *expr.Function
	Err      error
}

func (r Result) OK() bool { return r.Err == nil }

// Validate checks, in order, that formula is non-empty and parses, that x0
// is finite and that tol is finite and positive. It stops at the first
// failure.
func Validate(formula string, x0, tol float64, opts ...expr.Option) Result {
	if strings.TrimSpace(formula) == "" {
		return Result{Err: fieldErr("formula", "empty", ErrFormula, nil)}
	}
	f, err := expr.Build(formula, opts...)
	if err != nil {
		return Result{Err: fieldErr("formula", "does not parse", ErrFormula, err)}
	}
	if !finite(x0) {
		return Result{Err: fieldErr("x0", fmt.Sprintf("%g is not finite", x0), ErrNumber, nil)}
	}
	if !finite(tol) {
		return Result{Err: fieldErr("tolerance", fmt.Sprintf("%g is not finite", tol), ErrNumber, nil)}
	}
	if tol <= 0 {
		return Result{Err: fieldErr("tolerance", fmt.Sprintf("got %g", tol), ErrTolerance, nil)}
	}
	return Result{Function: f}
}

// Limits checks the iteration cap and decimal precision.
func Limits(iterLimit, precision int) error {
	if iterLimit < 0 {
		return fieldErr("iter_limit", fmt.Sprintf("must be non-negative, got %d", iterLimit), ErrLimits, nil)
	}
	if precision < 0 {
		return fieldErr("precision", fmt.Sprintf("must be non-negative, got %d", precision), ErrLimits, nil)
	}
	return nil
}

// Bracket checks that the end points are finite and distinct. Whether they
// enclose a sign change is checked by the method once f is available.
func Bracket(b []float64) error {
	if len(b) != 2 {
		return fieldErr("bracket", fmt.Sprintf("need 2 end points, got %d", len(b)), ErrBracket, nil)
	}
	if !finite(b[0]) || !finite(b[1]) {
		return fieldErr("bracket", "end points must be finite", ErrBracket, nil)
	}
	if b[0] == b[1] {
		return fieldErr("bracket", fmt.Sprintf("end points coincide at %g", b[0]), ErrBracket, nil)
	}
	return nil
}

// Number parses a user-supplied numeric field.
func Number(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fieldErr(field, fmt.Sprintf("%q is not a number", s), ErrNumber, nil)
	}
	if !finite(v) {
		return 0, fieldErr(field, fmt.Sprintf("%q is not finite", s), ErrNumber, nil)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
