// Package solver drives root-finding iterations for f(x) = 0.
//
// A run is described by three values:
//
//   - [Problem]: the function and its derivatives
//   - [Method]: a closed-form update rule x_k -> x_{k+1}
//   - [Config]: tolerance, iteration cap and decimal precision
//
// [Run] applies the method until |f(x)| <= tolerance, the iteration cap is
// reached, or an update becomes undefined. Every outcome, including invalid
// configuration, is reported through [Result.Status]; Run never returns an
// error and never panics on arithmetic faults.
//
// # Example
//
//	f, _ := expr.Build("x^2 - 3")
//	d, _ := diff.NewSymbolic(f, 2)
//	res := solver.Run(solver.NewProblem(f, d), methods.Newton(), 2, solver.Aux{}, solver.DefaultConfig())
//	fmt.Println(res.Status, res.X)
//
// # Thread Safety
//
// Run keeps all iteration state on its own stack. Independent runs may
// execute concurrently as long as the Problem they share is reentrant;
// problems built from expr functions and the diff differentiators are.
package solver
