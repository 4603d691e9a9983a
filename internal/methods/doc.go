// Package methods holds the closed-form update rules the solver iterates.
//
// Each rule is a [Rule]: a name, the derivative orders and auxiliary
// points it needs, and a pure step x_k -> x_{k+1}. Rules report their own
// singular configurations (zero denominators, coincident interpolation
// points) as errors wrapping solver.ErrSingularUpdate.
package methods
