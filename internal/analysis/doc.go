// Package analysis summarises many solves of the same equation.
//
//   - [ClusterRoots]: groups converged iterates into distinct roots
//   - [Basins]: maps each initial guess to the root it reached
//   - [BasinStrip]: one-line picture of the basins along an x0 sweep
//   - [BasinToASCII]: x0 against the reached root on a character canvas
//
// # Example
//
//	runs, _ := reg.Ensemble(ctx, reqs, 0)
//	clusters := analysis.ClusterRoots(results(runs), 1e-6)
//	fmt.Println(analysis.BasinStrip(analysis.Basins(x0s, results(runs), clusters)))
package analysis
