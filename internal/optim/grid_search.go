package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/rootlab/internal/experiment"
)

var (
	ErrRanges     = errors.New("optim: parameter names and ranges differ in length")
	ErrNoFeasible = errors.New("optim: no candidate produced a finite objective")
)

// Objective scores a finished run; lower is better. +Inf marks a run that
// must never be chosen.
type Objective func(run *experiment.Run) float64

// Iterations scores converged runs by iteration count.
func Iterations(run *experiment.Run) float64 {
	if run == nil || !run.Result.Converged() {
		return math.Inf(1)
	}
	return float64(run.Result.Iterations)
}

// Metric scores converged runs by one of their metrics.
func Metric(name string) Objective {
	return func(run *experiment.Run) float64 {
		if run == nil || !run.Result.Converged() {
			return math.Inf(1)
		}
		v, ok := run.Metrics[name]
		if !ok {
			return math.Inf(1)
		}
		return v
	}
}

// Builder turns one grid point into a request.
type Builder func(params map[string]float64) (experiment.Request, error)

// FromRequest builds by setting each grid parameter on base.
func FromRequest(base experiment.Request) Builder {
	return base.WithAll
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// WithWorkers bounds how many solves run at once.
func (g *GridSearch) WithWorkers(n int) *GridSearch {
	g.workers = n
	return g
}

// Candidate is one evaluated grid point.
type Candidate struct {
	Params map[string]float64
	Run    *experiment.Run
	Score  float64
}

// Search solves every grid point and returns the lowest scoring one. Ties
// go to the point enumerated first.
func (g *GridSearch) Search(
	ctx context.Context,
	registry *experiment.Registry,
	build Builder,
	objective Objective,
) (Candidate, []Candidate, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Candidate{}, nil, ErrRanges
	}
	if objective == nil {
		objective = Iterations
	}

	var points []map[string]float64
	g.searchRecursive(0, make(map[string]float64), &points)

	reqs := make([]experiment.Request, len(points))
	for i, p := range points {
		req, err := build(p)
		if err != nil {
			return Candidate{}, nil, fmt.Errorf("optim: build %v: %w", p, err)
		}
		reqs[i] = req
	}

	runs, err := registry.Ensemble(ctx, reqs, g.workers)
	if err != nil {
		return Candidate{}, nil, err
	}

	all := make([]Candidate, len(runs))
	best := -1
	for i, run := range runs {
		all[i] = Candidate{Params: points[i], Run: run, Score: objective(run)}
		if math.IsInf(all[i].Score, 1) || math.IsNaN(all[i].Score) {
			continue
		}
		if best < 0 || all[i].Score < all[best].Score {
			best = i
		}
	}
	if best < 0 {
		return Candidate{}, all, ErrNoFeasible
	}
	return all[best], all, nil
}

func (g *GridSearch) searchRecursive(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[paramName] = val
		g.searchRecursive(depth+1, next, out)
	}
}
