// Package expr turns a textual formula in one variable into a callable,
// differentiable numeric function.
//
// Parsing is delegated to the expr-lang parser; the resulting syntax tree is
// converted into a small closed set of nodes:
//
//   - [Num]: numeric literal or named constant (pi, e)
//   - [Var]: the free variable
//   - [Neg], [Binary], [Compare]: arithmetic and comparisons
//   - [Call]: a fixed set of named transcendental functions
//
// Nothing outside that set is accepted, so a formula can never reach a
// general code-execution path.
//
// # Example
//
//	f, err := expr.Build("exp(x) - 3*x")
//	y, err := f.Eval(1.5)
//	df, _ := f.Derivative(1)
//	v, d1, d2, err := f.Dual(1.5)
//
// # Thread Safety
//
// A [Function] is immutable once built and may be evaluated from several
// goroutines at once.
package expr
