package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidExpression indicates a formula that does not describe a
	// scalar real function of the declared variable.
	ErrInvalidExpression = errors.New("expr: invalid expression")

	// ErrEvaluation indicates an undefined operation while evaluating.
	ErrEvaluation = errors.New("expr: evaluation error")

	// ErrUnsupportedOrder indicates a derivative order below one.
	ErrUnsupportedOrder = errors.New("expr: unsupported derivative order")
)

// EvalError records where and why an evaluation became undefined.
type EvalError struct {
	Op     string
	X      float64
	Reason string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("expr: %s at x=%g: %s", e.Op, e.X, e.Reason)
}

func (e *EvalError) Unwrap() error {
	return ErrEvaluation
}

// SyntaxError wraps a parse or conversion failure with the offending formula.
type SyntaxError struct {
	Formula string
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: invalid expression %q: %s", e.Formula, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrInvalidExpression
}

func evalErr(op string, x float64, reason string) error {
	return &EvalError{Op: op, X: x, Reason: reason}
}
