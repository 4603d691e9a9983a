package automation

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/rootlab/internal/analysis"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/solver"
)

var ErrSweepRange = errors.New("automation: invalid sweep range")

// DefaultClusterTol groups sweep roots closer than this.
const DefaultClusterTol = 1e-6

// ParameterSweep solves Base once per evenly spaced value of Param in
// [Min, Max]. Param defaults to the initial guess.
type ParameterSweep struct {
	Base       experiment.Request
	Param      string
	Min, Max   float64
	NumSteps   int
	Workers    int
	ClusterTol float64
}

type SweepResult struct {
	Param    string
	Values   []float64
	Runs     []*experiment.Run
	Clusters []analysis.Cluster
	Basins   []analysis.BasinPoint
}

// Results returns the solver result of every run, in sweep order.
func (s *SweepResult) Results() []*solver.Result {
	return results(s.Runs)
}

// Values returns n evenly spaced points from lo to hi inclusive.
func Values(lo, hi float64, n int) ([]float64, error) {
	switch {
	case n < 1:
		return nil, fmt.Errorf("%w: %d steps", ErrSweepRange, n)
	case n == 1:
		return []float64{lo}, nil
	case hi <= lo:
		return nil, fmt.Errorf("%w: [%g, %g]", ErrSweepRange, lo, hi)
	}

	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	vals[n-1] = hi
	return vals, nil
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger *log.Logger) (*SweepResult, error) {
	logger = orDefault(logger)

	param := sweep.Param
	if param == "" {
		param = experiment.ParamX0
	}
	vals, err := Values(sweep.Min, sweep.Max, sweep.NumSteps)
	if err != nil {
		return nil, err
	}

	reqs := make([]experiment.Request, len(vals))
	for i, v := range vals {
		if reqs[i], err = sweep.Base.With(param, v); err != nil {
			return nil, err
		}
	}

	logger.Info("sweep", "method", sweep.Base.Method, "param", param, "from", sweep.Min, "to", sweep.Max, "steps", len(vals))
	runs, err := registry.Ensemble(ctx, reqs, sweep.Workers)
	if err != nil {
		return nil, err
	}

	tol := sweep.ClusterTol
	if tol <= 0 {
		tol = DefaultClusterTol
	}
	res := &SweepResult{Param: param, Values: vals, Runs: runs}
	res.Clusters = analysis.ClusterRoots(res.Results(), tol)
	res.Basins = analysis.Basins(vals, res.Results(), res.Clusters)

	logger.Info("sweep done", "roots", len(res.Clusters), "converged", countStatus(res.Results(), solver.Converged))
	return res, nil
}

func results(runs []*experiment.Run) []*solver.Result {
	out := make([]*solver.Result, len(runs))
	for i, r := range runs {
		if r != nil {
			out[i] = r.Result
		}
	}
	return out
}

func countStatus(rs []*solver.Result, s solver.Status) int {
	n := 0
	for _, r := range rs {
		if r != nil && r.Status == s {
			n++
		}
	}
	return n
}
