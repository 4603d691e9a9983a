package expr

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/num/hyperdual"
)

// Node is one vertex of a parsed formula.
type Node interface {
	// Eval evaluates the node with the free variable bound to x.
	Eval(x float64) (float64, error)
	// Dual evaluates the node on a hyperdual number, carrying the first and
	// second derivative alongside the value.
	Dual(x hyperdual.Number) (hyperdual.Number, error)
	// Diff returns the symbolic derivative with respect to the free variable.
	Diff() Node
	String() string
	precedence() int
}

const (
	precCompare = iota + 1
	precAdd
	precMul
	precUnary
	precPow
	precAtom
)

// Num is a numeric constant.
type Num struct{ V float64 }

func (n Num) Eval(float64) (float64, error) { return n.V, nil }
func (n Num) Diff() Node                    { return Num{0} }
func (n Num) String() string                { return strconv.FormatFloat(n.V, 'g', -1, 64) }

func (n Num) Dual(hyperdual.Number) (hyperdual.Number, error) {
	return hyperdual.Number{Real: n.V}, nil
}

func (n Num) precedence() int {
	if n.V < 0 {
		return precUnary
	}
	return precAtom
}

// Var is the free variable.
type Var struct{ Name string }

func (v Var) Eval(x float64) (float64, error)                    { return x, nil }
func (v Var) Dual(x hyperdual.Number) (hyperdual.Number, error) { return x, nil }
func (v Var) Diff() Node                                         { return Num{1} }
func (v Var) String() string                                     { return v.Name }
func (v Var) precedence() int                                    { return precAtom }

// Neg is unary negation.
type Neg struct{ X Node }

func (n Neg) Eval(x float64) (float64, error) {
	v, err := n.X.Eval(x)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n Neg) Dual(x hyperdual.Number) (hyperdual.Number, error) {
	v, err := n.X.Dual(x)
	if err != nil {
		return hyperdual.Number{}, err
	}
	return hyperdual.Sub(hyperdual.Number{}, v), nil
}

func (n Neg) Diff() Node       { return neg(n.X.Diff()) }
func (n Neg) String() string   { return "-" + wrap(n.X, precUnary, true) }
func (n Neg) precedence() int { return precUnary }

// Binary is an arithmetic operation: + - * / or ^.
type Binary struct {
	Op   byte
	L, R Node
}

func (b Binary) Eval(x float64) (float64, error) {
	l, err := b.L.Eval(x)
	if err != nil {
		return 0, err
	}
	r, err := b.R.Eval(x)
	if err != nil {
		return 0, err
	}

	var v float64
	switch b.Op {
	case '+':
		v = l + r
	case '-':
		v = l - r
	case '*':
		v = l * r
	case '/':
		if r == 0 {
			return 0, evalErr("/", x, "division by zero")
		}
		v = l / r
	case '^':
		if l == 0 && r < 0 {
			return 0, evalErr("^", x, "division by zero")
		}
		v = math.Pow(l, r)
		if math.IsNaN(v) {
			return 0, evalErr("^", x, "negative base with non-integer exponent")
		}
	}
	return checked(string(b.Op), x, v)
}

func (b Binary) Dual(x hyperdual.Number) (hyperdual.Number, error) {
	l, err := b.L.Dual(x)
	if err != nil {
		return hyperdual.Number{}, err
	}
	r, err := b.R.Dual(x)
	if err != nil {
		return hyperdual.Number{}, err
	}

	var v hyperdual.Number
	switch b.Op {
	case '+':
		v = hyperdual.Add(l, r)
	case '-':
		v = hyperdual.Sub(l, r)
	case '*':
		v = hyperdual.Mul(l, r)
	case '/':
		if r.Real == 0 {
			return v, evalErr("/", x.Real, "division by zero")
		}
		v = hyperdual.Mul(l, hyperdual.Inv(r))
	case '^':
		if c, ok := b.R.(Num); ok {
			if l.Real == 0 && c.V < 0 {
				return v, evalErr("^", x.Real, "division by zero")
			}
			if l.Real < 0 && c.V != math.Trunc(c.V) {
				return v, evalErr("^", x.Real, "negative base with non-integer exponent")
			}
			v = hyperdual.PowReal(l, c.V)
			break
		}
		if l.Real <= 0 {
			return v, evalErr("^", x.Real, "non-positive base with variable exponent")
		}
		v = hyperdual.Exp(hyperdual.Mul(r, hyperdual.Log(l)))
	}
	return checkedDual(string(b.Op), x.Real, v)
}

func (b Binary) Diff() Node {
	dl, dr := b.L.Diff(), b.R.Diff()
	switch b.Op {
	case '+':
		return add(dl, dr)
	case '-':
		return sub(dl, dr)
	case '*':
		return add(mul(dl, b.R), mul(b.L, dr))
	case '/':
		return div(sub(mul(dl, b.R), mul(b.L, dr)), pow(b.R, Num{2}))
	}

	if c, ok := b.R.(Num); ok {
		return mul(mul(c, pow(b.L, Num{c.V - 1})), dl)
	}
	if a, ok := b.L.(Num); ok && a.V > 0 {
		return mul(mul(b, Num{math.Log(a.V)}), dr)
	}
	// d(u^v) = u^v * (v' ln u + v u'/u)
	return mul(b, add(mul(dr, call("log", b.L)), div(mul(b.R, dl), b.L)))
}

func (b Binary) String() string {
	p := b.precedence()
	op := string(b.Op)
	if b.Op != '^' {
		op = " " + op + " "
	}
	switch b.Op {
	case '^':
		return wrap(b.L, p, true) + op + wrap(b.R, p, false)
	case '-', '/':
		return wrap(b.L, p, false) + op + wrap(b.R, p, true)
	}
	return wrap(b.L, p, false) + op + wrap(b.R, p, false)
}

func (b Binary) precedence() int {
	switch b.Op {
	case '+', '-':
		return precAdd
	case '*', '/':
		return precMul
	}
	return precPow
}

// Compare is a relational operation; it evaluates to 1 when it holds and 0
// otherwise, and is flat with respect to the variable.
type Compare struct {
	Op   string
	L, R Node
}

func (c Compare) Eval(x float64) (float64, error) {
	l, err := c.L.Eval(x)
	if err != nil {
		return 0, err
	}
	r, err := c.R.Eval(x)
	if err != nil {
		return 0, err
	}
	return truth(c.Op, l, r), nil
}

func (c Compare) Dual(x hyperdual.Number) (hyperdual.Number, error) {
	v, err := c.Eval(x.Real)
	return hyperdual.Number{Real: v}, err
}

func (c Compare) Diff() Node { return Num{0} }

func (c Compare) String() string {
	return wrap(c.L, precCompare, true) + " " + c.Op + " " + wrap(c.R, precCompare, true)
}

func (c Compare) precedence() int { return precCompare }

func truth(op string, l, r float64) float64 {
	var ok bool
	switch op {
	case "<":
		ok = l < r
	case "<=":
		ok = l <= r
	case ">":
		ok = l > r
	case ">=":
		ok = l >= r
	case "==":
		ok = l == r
	case "!=":
		ok = l != r
	}
	if ok {
		return 1
	}
	return 0
}

// Call applies one of the named functions in the builtin table.
type Call struct {
	Fn  string
	Arg Node
}

func (c Call) Eval(x float64) (float64, error) {
	a, err := c.Arg.Eval(x)
	if err != nil {
		return 0, err
	}
	fn := builtins[c.Fn]
	if fn.domain != nil {
		if reason := fn.domain(a); reason != "" {
			return 0, evalErr(c.Fn, x, reason)
		}
	}
	return checked(c.Fn, x, fn.eval(a))
}

func (c Call) Dual(x hyperdual.Number) (hyperdual.Number, error) {
	a, err := c.Arg.Dual(x)
	if err != nil {
		return hyperdual.Number{}, err
	}
	fn := builtins[c.Fn]
	if fn.domain != nil {
		if reason := fn.domain(a.Real); reason != "" {
			return hyperdual.Number{}, evalErr(c.Fn, x.Real, reason)
		}
	}
	var v hyperdual.Number
	if fn.dual != nil {
		v = fn.dual(a)
	} else {
		v = lift(a, fn.eval(a.Real), fn.d1(a.Real), fn.d2(a.Real))
	}
	return checkedDual(c.Fn, x.Real, v)
}

func (c Call) Diff() Node       { return mul(builtins[c.Fn].deriv(c.Arg), c.Arg.Diff()) }
func (c Call) String() string   { return c.Fn + "(" + c.Arg.String() + ")" }
func (c Call) precedence() int { return precAtom }

func wrap(n Node, p int, strict bool) string {
	np := n.precedence()
	if np < p || (strict && np == p) {
		return "(" + n.String() + ")"
	}
	return n.String()
}

func checked(op string, x, v float64) (float64, error) {
	switch {
	case math.IsNaN(v):
		return 0, evalErr(op, x, "result is not a number")
	case math.IsInf(v, 0):
		return 0, evalErr(op, x, "overflow")
	}
	return v, nil
}

func checkedDual(op string, x float64, v hyperdual.Number) (hyperdual.Number, error) {
	for _, part := range [...]float64{v.Real, v.E1mag, v.E2mag, v.E1E2mag} {
		if _, err := checked(op, x, part); err != nil {
			return hyperdual.Number{}, err
		}
	}
	return v, nil
}

// lift applies a scalar function with known first and second derivatives
// to a hyperdual number (second-order chain rule).
func lift(a hyperdual.Number, f0, f1, f2 float64) hyperdual.Number {
	return hyperdual.Number{
		Real:    f0,
		E1mag:   f1 * a.E1mag,
		E2mag:   f1 * a.E2mag,
		E1E2mag: f1*a.E1E2mag + f2*a.E1mag*a.E2mag,
	}
}
