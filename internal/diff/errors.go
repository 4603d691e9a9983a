package diff

import (
	"errors"
	"fmt"
)

var (
	// ErrOrder indicates a derivative order outside 1..MaxOrder.
	ErrOrder = errors.New("diff: unsupported derivative order")

	// ErrUnknownKind indicates a differentiator name that is not registered.
	ErrUnknownKind = errors.New("diff: unknown differentiator")

	// ErrNonFinite indicates a stencil that produced NaN or Inf.
	ErrNonFinite = errors.New("diff: non-finite derivative estimate")
)

// StencilError reports a failed derivative estimate at X.
type StencilError struct {
	Order   int
	X       float64
	Wrapped error
}

func (e *StencilError) Error() string {
	return fmt.Sprintf("diff: order %d derivative at x=%g: %v", e.Order, e.X, e.Wrapped)
}

func (e *StencilError) Unwrap() error {
	return e.Wrapped
}
