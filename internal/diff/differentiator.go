package diff

import (
	"fmt"
	"sort"

	"github.com/san-kum/rootlab/internal/expr"
)

// Differentiator estimates derivatives of the function it was built for.
type Differentiator interface {
	Derivative(x float64, order int) (float64, error)
}

// Names of the built-in differentiators.
const (
	KindSymbolic = "symbolic"
	KindNumeric  = "numeric"
	KindDual     = "dual"
)

type Numeric struct {
	f    Func
	step float64
}

// NewNumeric returns a finite-difference differentiator. A non-positive
// step selects DefaultStep.
func NewNumeric(f Func, step float64) *Numeric {
	if step <= 0 {
		step = DefaultStep
	}
	return &Numeric{f: f, step: step}
}

func (n *Numeric) Derivative(x float64, order int) (float64, error) {
	return Central(n.f, x, order, n.step)
}

func (n *Numeric) Step() float64 { return n.step }

// Symbolic evaluates exact derivatives built once from the formula.
type Symbolic struct {
	derivs []*expr.Function
}

func NewSymbolic(f *expr.Function, maxOrder int) (*Symbolic, error) {
	if maxOrder < 1 || maxOrder > MaxOrder {
		return nil, fmt.Errorf("%w: %d", ErrOrder, maxOrder)
	}
	s := &Symbolic{derivs: make([]*expr.Function, 0, maxOrder)}
	cur := f
	for i := 0; i < maxOrder; i++ {
		d, err := cur.Derivative(1)
		if err != nil {
			return nil, err
		}
		s.derivs = append(s.derivs, d)
		cur = d
	}
	return s, nil
}

func (s *Symbolic) Derivative(x float64, order int) (float64, error) {
	if order < 1 || order > len(s.derivs) {
		return 0, fmt.Errorf("%w: %d", ErrOrder, order)
	}
	return s.derivs[order-1].Eval(x)
}

// Function returns the symbolic derivative of the given order.
func (s *Symbolic) Function(order int) (*expr.Function, bool) {
	if order < 1 || order > len(s.derivs) {
		return nil, false
	}
	return s.derivs[order-1], true
}

// Dual uses hyperdual arithmetic for f' and f''. The third derivative is a
// central difference of the hyperdual f''.
type Dual struct {
	f    *expr.Function
	step float64
}

func NewDual(f *expr.Function, step float64) *Dual {
	if step <= 0 {
		step = DefaultStep
	}
	return &Dual{f: f, step: step}
}

func (d *Dual) Derivative(x float64, order int) (float64, error) {
	switch order {
	case 1:
		_, d1, _, err := d.f.Dual(x)
		return d1, err
	case 2:
		_, _, d2, err := d.f.Dual(x)
		return d2, err
	case 3:
		second := FuncOf(func(t float64) (float64, error) {
			_, _, d2, err := d.f.Dual(t)
			return d2, err
		})
		return Central(second, x, 1, d.step)
	}
	return 0, fmt.Errorf("%w: %d", ErrOrder, order)
}

type factory func(f *expr.Function, step float64) (Differentiator, error)

var kinds = map[string]factory{
	KindSymbolic: func(f *expr.Function, _ float64) (Differentiator, error) {
		return NewSymbolic(f, MaxOrder)
	},
	KindNumeric: func(f *expr.Function, step float64) (Differentiator, error) {
		return NewNumeric(f, step), nil
	},
	KindDual: func(f *expr.Function, step float64) (Differentiator, error) {
		return NewDual(f, step), nil
	},
}

// New builds the named differentiator for f. An empty name selects
// KindSymbolic.
func New(kind string, f *expr.Function, step float64) (Differentiator, error) {
	if kind == "" {
		kind = KindSymbolic
	}
	mk, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return mk(f, step)
}

// Kinds lists the registered differentiator names in sorted order.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
