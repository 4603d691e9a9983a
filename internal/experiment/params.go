package experiment

import (
	"fmt"
	"maps"
	"math"
)

// Fields that With sets directly on the request. Any other name is taken as
// a method parameter.
const (
	ParamX0        = "x0"
	ParamTolerance = "tolerance"
	ParamStep      = "step"
	ParamIterLimit = "iter_limit"
	ParamPrecision = "precision"
	ParamBracketA  = "bracket_a"
	ParamBracketB  = "bracket_b"
)

// With returns a copy of r with the named parameter set to v. r is not
// modified; Params and Bracket are copied before writing.
func (r Request) With(name string, v float64) (Request, error) {
	if name == "" {
		return r, fmt.Errorf("%w: empty name", ErrUnknownParam)
	}

	out := r
	out.Bracket = append([]float64(nil), r.Bracket...)
	out.Params = maps.Clone(r.Params)

	switch name {
	case ParamX0:
		out.X0 = v
	case ParamTolerance:
		out.Tolerance = v
	case ParamStep:
		out.Step = v
	case ParamIterLimit:
		out.IterLimit = int(math.Round(v))
	case ParamPrecision:
		out.Precision = int(math.Round(v))
	case ParamBracketA, ParamBracketB:
		for len(out.Bracket) < 2 {
			out.Bracket = append(out.Bracket, 0)
		}
		if name == ParamBracketA {
			out.Bracket[0] = v
		} else {
			out.Bracket[1] = v
		}
	default:
		if out.Params == nil {
			out.Params = make(map[string]float64)
		}
		out.Params[name] = v
	}
	return out, nil
}

// WithAll applies every entry of params in turn.
func (r Request) WithAll(params map[string]float64) (Request, error) {
	out := r
	for name, v := range params {
		var err error
		if out, err = out.With(name, v); err != nil {
			return r, err
		}
	}
	return out, nil
}
