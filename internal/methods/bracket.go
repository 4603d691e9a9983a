package methods

import (
	"fmt"

	"github.com/san-kum/rootlab/internal/solver"
)

// YunPetkovic is a bracketing false-position method with Illinois
// retention: when the same end survives two steps its function value is
// halved. It needs a bracket [A, B] with f(A) f(B) <= 0 in Aux.
type YunPetkovic struct{}

func NewYunPetkovic() *YunPetkovic { return &YunPetkovic{} }

func (*YunPetkovic) Name() string { return "yun-petkovic" }

func (*YunPetkovic) Requirements() solver.Requirements {
	return solver.Requirements{Bracket: true}
}

func (*YunPetkovic) Init(p solver.Problem, x0 float64, aux solver.Aux) (solver.Aux, error) {
	if aux.A == aux.B {
		return aux, fmt.Errorf("%w: bracket end points coincide at %g", solver.ErrInvalidInput, aux.A)
	}
	fa, err := p.Eval(aux.A)
	if err != nil {
		return aux, err
	}
	fb, err := p.Eval(aux.B)
	if err != nil {
		return aux, err
	}
	if fa*fb > 0 {
		return aux, fmt.Errorf("%w: [%g, %g] does not bracket a root (f(a)=%g, f(b)=%g)",
			solver.ErrInvalidInput, aux.A, aux.B, fa, fb)
	}
	aux.FA, aux.FB = fa, fb
	aux.Retained = 0
	return aux, nil
}

func (*YunPetkovic) Step(p solver.Problem, st solver.State) (solver.Update, error) {
	aux := st.Aux
	c, err := solver.Div(aux.A*aux.FB-aux.B*aux.FA, aux.FB-aux.FA, "f(b) - f(a)")
	if err != nil {
		return solver.Update{}, err
	}
	fc, err := p.Eval(c)
	if err != nil {
		return solver.Update{}, err
	}

	if fc*aux.FB < 0 {
		aux.A, aux.FA = aux.B, aux.FB
		aux.Retained = 0
	} else {
		aux.FA /= 2
		aux.Retained++
	}
	aux.B, aux.FB = c, fc
	return solver.Update{X: c, Aux: aux}, nil
}
