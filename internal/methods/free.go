package methods

import "github.com/san-kum/rootlab/internal/solver"

// NewSteffensen: x - f^2 / (f(x + f) - f).
func NewSteffensen() *Rule {
	return NewRule("steffensen", derivativeFree(), func(p solver.Problem, st solver.State) (solver.Update, error) {
		f := st.FX
		fw, err := p.Eval(st.X + f)
		if err != nil {
			return solver.Update{}, err
		}
		q, err := solver.Div(f*f, fw-f, "f(x + f) - f")
		if err != nil {
			return solver.Update{}, err
		}
		aux := st.Aux
		aux.Z = st.X + f
		return moveTo(st.X-q, aux)
	})
}

// NewJain takes a Steffensen step to y and then corrects with the secant
// through x and y:
//
//	w = x + f, y = x - f^2/(f(w) - f), x+ = x - f^3 / ((f(w) - f)(f - f(y)))
func NewJain() *Rule {
	return NewRule("jain", derivativeFree(), func(p solver.Problem, st solver.State) (solver.Update, error) {
		f := st.FX
		w := st.X + f
		fw, err := p.Eval(w)
		if err != nil {
			return solver.Update{}, err
		}
		q, err := solver.Div(f*f, fw-f, "f(w) - f")
		if err != nil {
			return solver.Update{}, err
		}
		y := st.X - q
		fy, err := p.Eval(y)
		if err != nil {
			return solver.Update{}, err
		}
		c, err := solver.Div(f*f*f, (fw-f)*(f-fy), "(f(w) - f)(f - f(y))")
		if err != nil {
			return solver.Update{}, err
		}
		aux := st.Aux
		aux.Y, aux.Z = y, w
		return moveTo(st.X-c, aux)
	})
}

// steffensenPoints returns w = x + f, the Steffensen iterate y and the
// function values there.
func steffensenPoints(p solver.Problem, st solver.State) (w, fw, y, fy float64, err error) {
	w = st.X + st.FX
	if fw, err = p.Eval(w); err != nil {
		return
	}
	var q float64
	if q, err = solver.Div(st.FX*st.FX, fw-st.FX, "f(w) - f"); err != nil {
		return
	}
	y = st.X - q
	fy, err = p.Eval(y)
	return
}

// NewLiu corrects the Steffensen point y with divided differences:
//
//	x+ = y - (f[x,y] - f[y,w] + f[x,w]) / f[x,y]^2 * f(y)
func NewLiu() *Rule {
	return NewRule("liu", derivativeFree(), func(p solver.Problem, st solver.State) (solver.Update, error) {
		w, fw, y, fy, err := steffensenPoints(p, st)
		if err != nil {
			return solver.Update{}, err
		}
		xy, err := divided(st.X, st.FX, y, fy, "f[x,y]")
		if err != nil {
			return solver.Update{}, err
		}
		yw, err := divided(y, fy, w, fw, "f[y,w]")
		if err != nil {
			return solver.Update{}, err
		}
		xw, err := divided(st.X, st.FX, w, fw, "f[x,w]")
		if err != nil {
			return solver.Update{}, err
		}
		c, err := solver.Div((xy-yw+xw)*fy, xy*xy, "f[x,y]^2")
		if err != nil {
			return solver.Update{}, err
		}
		aux := st.Aux
		aux.Y, aux.Z = y, w
		return moveTo(y-c, aux)
	})
}

// NewRen corrects the Steffensen point y with a parametrised divided
// difference denominator:
//
//	x+ = y - f(y) / (f[x,y] + f[y,w] - f[x,w] + a(y - x)(y - w))
func NewRen(a float64) *Rule {
	return NewRule("ren", derivativeFree(), func(p solver.Problem, st solver.State) (solver.Update, error) {
		w, fw, y, fy, err := steffensenPoints(p, st)
		if err != nil {
			return solver.Update{}, err
		}
		xy, err := divided(st.X, st.FX, y, fy, "f[x,y]")
		if err != nil {
			return solver.Update{}, err
		}
		yw, err := divided(y, fy, w, fw, "f[y,w]")
		if err != nil {
			return solver.Update{}, err
		}
		xw, err := divided(st.X, st.FX, w, fw, "f[x,w]")
		if err != nil {
			return solver.Update{}, err
		}
		c, err := solver.Div(fy, xy+yw-xw+a*(y-st.X)*(y-w), "ren denominator")
		if err != nil {
			return solver.Update{}, err
		}
		aux := st.Aux
		aux.Y, aux.Z = y, w
		return moveTo(y-c, aux)
	})
}
