package methods

import (
	"math"

	"github.com/san-kum/rootlab/internal/solver"
)

// NewNewton: x - f/f'.
func NewNewton() *Rule {
	return NewRule("newton", withDerivatives(1), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 1)
		if err != nil {
			return solver.Update{}, err
		}
		q, err := solver.Div(st.FX, d[1], "f'(x)")
		if err != nil {
			return solver.Update{}, err
		}
		return moveTo(st.X-q, st.Aux)
	})
}

// NewHalley: x - 2ff' / (2f'^2 - ff'').
func NewHalley() *Rule {
	return NewRule("halley", withDerivatives(2), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 2)
		if err != nil {
			return solver.Update{}, err
		}
		f := st.FX
		q, err := solver.Div(2*f*d[1], 2*d[1]*d[1]-f*d[2], "2f'^2 - ff''")
		if err != nil {
			return solver.Update{}, err
		}
		return moveTo(st.X-q, st.Aux)
	})
}

// NewChebyshev: x - (f/f')(1 + ff''/(2f'^2)).
func NewChebyshev() *Rule {
	return NewRule("chebyshev", withDerivatives(2), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 2)
		if err != nil {
			return solver.Update{}, err
		}
		f := st.FX
		u, err := solver.Div(f, d[1], "f'(x)")
		if err != nil {
			return solver.Update{}, err
		}
		l, err := solver.Div(f*d[2], 2*d[1]*d[1], "2f'^2")
		if err != nil {
			return solver.Update{}, err
		}
		return moveTo(st.X-u*(1+l), st.Aux)
	})
}

// NewRichmond: x - f / (f' - ff''/(2f')).
func NewRichmond() *Rule {
	return NewRule("richmond", withDerivatives(2), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 2)
		if err != nil {
			return solver.Update{}, err
		}
		f := st.FX
		c, err := solver.Div(f*d[2], 2*d[1], "2f'")
		if err != nil {
			return solver.Update{}, err
		}
		q, err := solver.Div(f, d[1]-c, "f' - ff''/(2f')")
		if err != nil {
			return solver.Update{}, err
		}
		return moveTo(st.X-q, st.Aux)
	})
}

// NewEuler is the irrational Euler method:
// x - (f'/f'')(1 - sqrt(1 - 2ff''/f'^2)).
func NewEuler() *Rule {
	return NewRule("euler", withDerivatives(2), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 2)
		if err != nil {
			return solver.Update{}, err
		}
		f := st.FX
		ratio, err := solver.Div(d[1], d[2], "f''(x)")
		if err != nil {
			return solver.Update{}, err
		}
		l, err := solver.Div(2*f*d[2], d[1]*d[1], "f'^2")
		if err != nil {
			return solver.Update{}, err
		}
		disc := 1 - l
		if disc < 0 {
			return solver.Update{}, solver.Singular("1 - 2ff''/f'^2", "negative discriminant")
		}
		return moveTo(st.X-ratio*(1-math.Sqrt(disc)), st.Aux)
	})
}

// NewFrontiniSormani evaluates f' at the Newton half step:
// x - f / f'(x - f/(2f')).
func NewFrontiniSormani() *Rule {
	return NewRule("frontini-sormani", withDerivatives(1), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 1)
		if err != nil {
			return solver.Update{}, err
		}
		half, err := solver.Div(st.FX, 2*d[1], "f'(x)")
		if err != nil {
			return solver.Update{}, err
		}
		mid := st.X - half
		dm, err := p.Derivative(mid, 1)
		if err != nil {
			return solver.Update{}, err
		}
		q, err := solver.Div(st.FX, dm, "f'(x - f/(2f'))")
		if err != nil {
			return solver.Update{}, err
		}
		aux := st.Aux
		aux.Y = mid
		return moveTo(st.X-q, aux)
	})
}

// NewDanbyBurkardt applies three successively corrected Newton increments
// using f'' and f'''.
func NewDanbyBurkardt() *Rule {
	return NewRule("danby-burkardt", withDerivatives(3), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 3)
		if err != nil {
			return solver.Update{}, err
		}
		f := st.FX
		d1, err := solver.Div(-f, d[1], "f'(x)")
		if err != nil {
			return solver.Update{}, err
		}
		d2, err := solver.Div(-f, d[1]+d1*d[2]/2, "f' + d1 f''/2")
		if err != nil {
			return solver.Update{}, err
		}
		d3, err := solver.Div(-f, d[1]+d2*d[2]/2+d2*d2*d[3]/6, "f' + d2 f''/2 + d2^2 f'''/6")
		if err != nil {
			return solver.Update{}, err
		}
		return moveTo(st.X+d3, st.Aux)
	})
}

// NewOstrowski: y = x - f/f', x+ = y - f(y) f / (f' (f - 2f(y))).
func NewOstrowski() *Rule {
	return NewRule("ostrowski", withDerivatives(1), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 1)
		if err != nil {
			return solver.Update{}, err
		}
		f := st.FX
		q, err := solver.Div(f, d[1], "f'(x)")
		if err != nil {
			return solver.Update{}, err
		}
		y := st.X - q
		fy, err := p.Eval(y)
		if err != nil {
			return solver.Update{}, err
		}
		c, err := solver.Div(fy*f, d[1]*(f-2*fy), "f'(f - 2f(y))")
		if err != nil {
			return solver.Update{}, err
		}
		aux := st.Aux
		aux.Y = y
		return moveTo(y-c, aux)
	})
}

// NewNewtonSecant: y = x - f/f', x+ = x - f^2 / (f' (f - f(y))).
func NewNewtonSecant() *Rule {
	return NewRule("newton-secant", withDerivatives(1), func(p solver.Problem, st solver.State) (solver.Update, error) {
		d, err := derivatives(p, st.X, 1)
		if err != nil {
			return solver.Update{}, err
		}
		f := st.FX
		q, err := solver.Div(f, d[1], "f'(x)")
		if err != nil {
			return solver.Update{}, err
		}
		y := st.X - q
		fy, err := p.Eval(y)
		if err != nil {
			return solver.Update{}, err
		}
		c, err := solver.Div(f*f, d[1]*(f-fy), "f'(f - f(y))")
		if err != nil {
			return solver.Update{}, err
		}
		aux := st.Aux
		aux.Y = y
		return moveTo(st.X-c, aux)
	})
}
