package solver

import (
	"errors"
	"math"
)

// Run iterates m from x0 until a terminal status is reached. aux seeds the
// method's auxiliary points; methods that implement Initializer complete
// it before the first step.
//
// The tolerance check happens before each step, so a guess that already
// satisfies it performs no iterations. On IterationLimitReached and
// NumericalFailure the result carries the last valid iterate.
func Run(p Problem, m Method, x0 float64, aux Aux, cfg Config) *Result {
	if err := cfg.Validate(); err != nil {
		return Rejected(m.Name(), x0, err)
	}

	res := &Result{Method: m.Name(), X: x0, History: History{}}

	fx, err := p.Eval(x0)
	if err == nil && !Finite(fx) {
		err = Singular("f(x0)", "non-finite value")
	}
	if err != nil {
		res.fail(NumericalFailure, &StepError{Iteration: 0, X: x0, Wrapped: err})
		return res
	}
	res.FX = fx

	if init, ok := m.(Initializer); ok {
		aux, err = init.Init(p, x0, aux)
		if err != nil {
			status := NumericalFailure
			if errors.Is(err, ErrInvalidInput) {
				status = InvalidInput
			}
			res.fail(status, err)
			return res
		}
	}

	st := State{X: x0, FX: fx, Error: math.Abs(fx), Aux: aux}
	for st.Error > cfg.Tolerance {
		if st.Iteration >= cfg.IterLimit {
			res.finish(st, IterationLimitReached)
			return res
		}

		up, err := m.Step(p, st)
		if err == nil && !Finite(up.X) {
			err = Singular("iterate", "non-finite value")
		}
		if err != nil {
			res.finish(st, NumericalFailure)
			res.Cause = &StepError{Iteration: st.Iteration, X: st.X, Wrapped: err}
			return res
		}

		x := Round(up.X, cfg.Precision)
		fx, err := p.Eval(x)
		if err == nil && !Finite(fx) {
			err = Singular("f(x)", "non-finite value")
		}
		if err != nil {
			res.finish(st, NumericalFailure)
			res.Cause = &StepError{Iteration: st.Iteration, X: x, Wrapped: err}
			return res
		}

		st.X, st.FX, st.Error, st.Aux = x, fx, math.Abs(fx), up.Aux
		res.History = append(res.History, Point{Iteration: st.Iteration, Error: st.Error})
		st.Iteration++
	}

	res.finish(st, Converged)
	return res
}

func (r *Result) finish(st State, status Status) {
	r.X = st.X
	r.FX = st.FX
	r.Iterations = st.Iteration
	r.Status = status
}

func (r *Result) fail(status Status, cause error) {
	r.Status = status
	r.Cause = cause
}
