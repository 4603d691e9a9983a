package methods

import (
	"fmt"

	"github.com/san-kum/rootlab/internal/solver"
)

// StepFunc computes the next iterate from the current state.
type StepFunc func(p solver.Problem, st solver.State) (solver.Update, error)

// Rule is a named update rule. It implements solver.Method.
type Rule struct {
	name string
	req  solver.Requirements
	step StepFunc
}

func NewRule(name string, req solver.Requirements, step StepFunc) *Rule {
	return &Rule{name: name, req: req, step: step}
}

func (r *Rule) Name() string                      { return r.name }
func (r *Rule) Requirements() solver.Requirements { return r.req }

func (r *Rule) Step(p solver.Problem, st solver.State) (solver.Update, error) {
	return r.step(p, st)
}

// derivatives returns f', ..., f^(n) at x in d[1..n].
func derivatives(p solver.Problem, x float64, n int) ([4]float64, error) {
	var d [4]float64
	for order := 1; order <= n; order++ {
		v, err := p.Derivative(x, order)
		if err != nil {
			return d, err
		}
		d[order] = v
	}
	return d, nil
}

// divided returns the divided difference f[x1, x2].
func divided(x1, f1, x2, f2 float64, name string) (float64, error) {
	return solver.Div(f2-f1, x2-x1, name)
}

func moveTo(x float64, aux solver.Aux) (solver.Update, error) {
	return solver.Update{X: x, Aux: aux}, nil
}

func derivativeFree() solver.Requirements { return solver.Requirements{} }

func withDerivatives(n int) solver.Requirements {
	return solver.Requirements{Derivatives: n}
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s(derivatives=%d, bracket=%t)", r.name, r.req.Derivatives, r.req.Bracket)
}
