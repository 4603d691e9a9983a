package diff

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

const (
	// MaxOrder is the highest derivative order any differentiator supports.
	MaxOrder = 3

	// DefaultStep is the base step for first derivatives.
	DefaultStep = 1e-6
)

// Func is a scalar function that can fail to evaluate.
type Func interface {
	Eval(x float64) (float64, error)
}

// FuncOf adapts a plain function to Func.
type FuncOf func(x float64) (float64, error)

func (f FuncOf) Eval(x float64) (float64, error) { return f(x) }

// third is the 4-point central stencil for f'''.
var third = fd.Formula{
	Stencil: []fd.Point{
		{Loc: -2, Coeff: -0.5},
		{Loc: -1, Coeff: 1},
		{Loc: 1, Coeff: -1},
		{Loc: 2, Coeff: 0.5},
	},
	Derivative: 3,
	Step:       1e-2,
}

func stencil(order int) (fd.Formula, error) {
	switch order {
	case 1:
		return fd.Central, nil
	case 2:
		return fd.Central2nd, nil
	case 3:
		return third, nil
	}
	return fd.Formula{}, fmt.Errorf("%w: %d", ErrOrder, order)
}

// StepFor widens the base step for higher orders: h, 100h and 10000h for
// orders 1, 2 and 3.
func StepFor(order int, base float64) float64 {
	if base <= 0 {
		base = DefaultStep
	}
	return base * math.Pow(100, float64(order-1))
}

// Central returns a central-difference estimate of the order-th derivative
// of f at x. A failed evaluation at any stencil point aborts the estimate.
func Central(f Func, x float64, order int, step float64) (float64, error) {
	formula, err := stencil(order)
	if err != nil {
		return 0, err
	}

	var evalErr error
	fn := func(t float64) float64 {
		if evalErr != nil {
			return 0
		}
		v, err := f.Eval(t)
		if err != nil {
			evalErr = err
			return 0
		}
		return v
	}

	d := fd.Derivative(fn, x, &fd.Settings{
		Formula: formula,
		Step:    StepFor(order, step),
	})
	if evalErr != nil {
		return 0, &StencilError{Order: order, X: x, Wrapped: evalErr}
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, &StencilError{Order: order, X: x, Wrapped: ErrNonFinite}
	}
	return d, nil
}
