// Package diff estimates derivatives of scalar functions.
//
// Three interchangeable [Differentiator] implementations are provided:
//
//   - [Numeric]: central finite differences on gonum's diff/fd stencils
//   - [Symbolic]: exact derivatives precomputed from an [expr.Function]
//   - [Dual]: hyperdual evaluation for orders 1 and 2
//
// The stencil and step used for an order never change between calls, so
// repeated estimates at the same point are bit-for-bit identical.
package diff
