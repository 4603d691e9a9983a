package methods

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rootlab/internal/diff"
	"github.com/san-kum/rootlab/internal/expr"
	"github.com/san-kum/rootlab/internal/solver"
)

func problem(t *testing.T, formula string) solver.Problem {
	t.Helper()
	f, err := expr.Build(formula)
	if err != nil {
		t.Fatalf("build %q: %v", formula, err)
	}
	d, err := diff.NewSymbolic(f, diff.MaxOrder)
	if err != nil {
		t.Fatal(err)
	}
	return solver.NewProblem(f, d)
}

func all() []solver.Method {
	return []solver.Method{
		NewNewton(), NewHalley(), NewChebyshev(), NewRichmond(), NewEuler(),
		NewFrontiniSormani(), NewDanbyBurkardt(), NewOstrowski(), NewNewtonSecant(),
		NewSteffensen(), NewJain(), NewLiu(), NewRen(0), NewYunPetkovic(),
	}
}

func TestSqrtThree(t *testing.T) {
	p := problem(t, "x^2 - 3")
	cfg := solver.DefaultConfig()

	for _, m := range all() {
		t.Run(m.Name(), func(t *testing.T) {
			res := solver.Run(p, m, 2, solver.Aux{A: 1, B: 2}, cfg)
			if res.Status != solver.Converged {
				t.Fatalf("expected converged, got %v (%v)", res.Status, res.Cause)
			}
			if math.Abs(res.X-math.Sqrt(3)) > 1e-6 {
				t.Errorf("x = %.10f, want %.10f", res.X, math.Sqrt(3))
			}
			if res.Iterations >= 10 {
				t.Errorf("expected single-digit iterations, got %d", res.Iterations)
			}
		})
	}
}

func TestExpLinear(t *testing.T) {
	p := problem(t, "exp(x) - 3*x")
	roots := []float64{0.6190612867359451, 1.5121345516578424}

	for _, m := range all() {
		t.Run(m.Name(), func(t *testing.T) {
			res := solver.Run(p, m, 1, solver.Aux{A: 0, B: 1}, solver.DefaultConfig())
			if res.Status != solver.Converged {
				t.Fatalf("expected converged, got %v (%v)", res.Status, res.Cause)
			}
			near := false
			for _, r := range roots {
				if math.Abs(res.X-r) < 1e-5 {
					near = true
				}
			}
			if !near {
				t.Errorf("x = %.10f is not near a known root", res.X)
			}
		})
	}
}

func TestLinearEulerSingular(t *testing.T) {
	p := problem(t, "9*x + 3")
	res := solver.Run(p, NewEuler(), 0.5, solver.Aux{}, solver.DefaultConfig())

	if res.Status != solver.NumericalFailure {
		t.Fatalf("expected numerical failure, got %v", res.Status)
	}
	if res.Iterations != 0 || res.X != 0.5 {
		t.Errorf("expected the initial guess back, got x=%v after %d iterations", res.X, res.Iterations)
	}

	var se *solver.SingularError
	if !errors.As(res.Cause, &se) || se.Quantity != "f''(x)" {
		t.Errorf("expected singular f''(x), got %v", res.Cause)
	}
}

func TestLinearOneStep(t *testing.T) {
	p := problem(t, "9*x + 3")
	for _, m := range all() {
		if m.Name() == "euler" {
			continue
		}
		t.Run(m.Name(), func(t *testing.T) {
			res := solver.Run(p, m, 0.5, solver.Aux{A: -1, B: 1}, solver.DefaultConfig())
			if res.Status != solver.Converged || res.Iterations != 1 {
				t.Errorf("got %v after %d iterations (%v)", res.Status, res.Iterations, res.Cause)
			}
		})
	}
}

func TestNewtonFlatDerivative(t *testing.T) {
	p := problem(t, "x^2 - 3")
	res := solver.Run(p, NewNewton(), 0, solver.Aux{}, solver.DefaultConfig())

	if res.Status != solver.NumericalFailure {
		t.Fatalf("expected numerical failure, got %v", res.Status)
	}
	if !errors.Is(res.Cause, solver.ErrSingularUpdate) {
		t.Errorf("expected singular update, got %v", res.Cause)
	}
}

type constant float64

func (c constant) Eval(float64) (float64, error)            { return float64(c), nil }
func (c constant) Derivative(float64, int) (float64, error) { return 0, nil }

func TestFlatFunctionIsSingular(t *testing.T) {
	for _, m := range all() {
		if m.Requirements().Bracket {
			continue
		}
		t.Run(m.Name(), func(t *testing.T) {
			res := solver.Run(constant(1), m, 0, solver.Aux{}, solver.DefaultConfig())
			if res.Status != solver.NumericalFailure {
				t.Errorf("expected numerical failure, got %v", res.Status)
			}
		})
	}
}

func TestDerivativeFailurePropagates(t *testing.T) {
	f, err := expr.Build("log(x) - 1")
	if err != nil {
		t.Fatal(err)
	}
	p := solver.NewProblem(f, diff.NewNumeric(f, 0))

	res := solver.Run(p, NewNewton(), 1e-7, solver.Aux{}, solver.DefaultConfig())
	if res.Status != solver.NumericalFailure {
		t.Fatalf("expected numerical failure, got %v", res.Status)
	}
	if !errors.Is(res.Cause, expr.ErrEvaluation) {
		t.Errorf("expected evaluation error, got %v", res.Cause)
	}
}

func TestRequirements(t *testing.T) {
	want := map[string]solver.Requirements{
		"newton":           {Derivatives: 1},
		"halley":           {Derivatives: 2},
		"chebyshev":        {Derivatives: 2},
		"richmond":         {Derivatives: 2},
		"euler":            {Derivatives: 2},
		"frontini-sormani": {Derivatives: 1},
		"danby-burkardt":   {Derivatives: 3},
		"ostrowski":        {Derivatives: 1},
		"newton-secant":    {Derivatives: 1},
		"steffensen":       {},
		"jain":             {},
		"liu":              {},
		"ren":              {},
		"yun-petkovic":     {Bracket: true},
	}

	methods := all()
	if len(methods) != len(want) {
		t.Fatalf("expected %d methods, got %d", len(want), len(methods))
	}
	for _, m := range methods {
		if got := m.Requirements(); got != want[m.Name()] {
			t.Errorf("%s: got %+v, want %+v", m.Name(), got, want[m.Name()])
		}
	}
}

func TestYunPetkovicBracket(t *testing.T) {
	p := problem(t, "x^2 - 3")
	m := NewYunPetkovic()

	tests := []struct {
		name string
		a, b float64
	}{
		{"same sign", 2, 3},
		{"coincident", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := solver.Run(p, m, 2, solver.Aux{A: tt.a, B: tt.b}, solver.DefaultConfig())
			if res.Status != solver.InvalidInput {
				t.Errorf("expected invalid input, got %v", res.Status)
			}
			if !errors.Is(res.Cause, solver.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", res.Cause)
			}
		})
	}
}

func TestYunPetkovicKeepsBracket(t *testing.T) {
	p := problem(t, "x^2 - 3")
	m := NewYunPetkovic()

	aux, err := m.Init(p, 2, solver.Aux{A: 1, B: 2})
	if err != nil {
		t.Fatal(err)
	}
	st := solver.State{X: 2, FX: 1, Error: 1, Aux: aux}
	for i := 0; i < 4; i++ {
		up, err := m.Step(p, st)
		if err != nil {
			t.Fatal(err)
		}
		if up.Aux.FA*up.Aux.FB > 0 {
			t.Fatalf("step %d lost the bracket: %+v", i, up.Aux)
		}
		lo, hi := math.Min(up.Aux.A, up.Aux.B), math.Max(up.Aux.A, up.Aux.B)
		if math.Sqrt(3) < lo || math.Sqrt(3) > hi {
			t.Fatalf("step %d: root outside [%g, %g]", i, lo, hi)
		}
		st.X, st.Aux = up.X, up.Aux
	}
}

func TestRenParameter(t *testing.T) {
	p := problem(t, "x^3 - 2*x - 5")
	for _, a := range []float64{0, 0.5, -1} {
		res := solver.Run(p, NewRen(a), 2, solver.Aux{}, solver.DefaultConfig())
		if res.Status != solver.Converged {
			t.Errorf("a=%v: expected converged, got %v (%v)", a, res.Status, res.Cause)
		}
	}
}
