package expr

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/num/hyperdual"
)

// DefaultVariable is the free variable name used when none is declared.
const DefaultVariable = "x"

// Function is a parsed formula of one variable. It is immutable.
type Function struct {
	formula  string
	variable string
	root     Node
}

type options struct {
	variable string
}

// Option configures Build.
type Option func(*options)

// WithVariable declares the name of the free variable.
func WithVariable(name string) Option {
	return func(o *options) { o.variable = name }
}

// Build parses formula into a Function. It fails with ErrInvalidExpression
// when the formula is empty, does not parse, or uses anything outside the
// supported operators, constants and functions.
func Build(formula string, opts ...Option) (*Function, error) {
	o := options{variable: DefaultVariable}
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(formula) == "" {
		return nil, &SyntaxError{Formula: formula, Msg: "empty formula"}
	}
	if _, ok := constants[o.variable]; ok {
		return nil, &SyntaxError{Formula: formula, Msg: fmt.Sprintf("variable %q shadows a constant", o.variable)}
	}

	root, err := parse(formula, o.variable)
	if err != nil {
		return nil, err
	}
	return &Function{formula: formula, variable: o.variable, root: root}, nil
}

// Eval evaluates the function at x. Undefined operations yield an
// *EvalError wrapping ErrEvaluation.
func (f *Function) Eval(x float64) (float64, error) {
	return f.root.Eval(x)
}

// Derivative returns the exact symbolic derivative of the given order.
func (f *Function) Derivative(order int) (*Function, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedOrder, order)
	}
	n := f.root
	for i := 0; i < order; i++ {
		n = n.Diff()
	}
	return &Function{formula: n.String(), variable: f.variable, root: n}, nil
}

// Dual evaluates f, f' and f'' at x in one pass using hyperdual numbers.
func (f *Function) Dual(x float64) (v, d1, d2 float64, err error) {
	r, err := f.root.Dual(hyperdual.Number{Real: x, E1mag: 1, E2mag: 1})
	if err != nil {
		return 0, 0, 0, err
	}
	return r.Real, r.E1mag, r.E1E2mag, nil
}

func (f *Function) Formula() string  { return f.formula }
func (f *Function) Variable() string { return f.variable }
func (f *Function) Root() Node       { return f.root }

// String renders the parsed tree, which may differ in spacing and
// parenthesisation from the source formula.
func (f *Function) String() string { return f.root.String() }
