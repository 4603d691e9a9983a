package solver

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

type funcProblem func(x float64) (float64, error)

func (f funcProblem) Eval(x float64) (float64, error) { return f(x) }

func (f funcProblem) Derivative(x float64, order int) (float64, error) {
	return 0, errors.New("no derivatives")
}

type halving struct{}

func (halving) Name() string               { return "halving" }
func (halving) Requirements() Requirements { return Requirements{} }

func (halving) Step(p Problem, st State) (Update, error) {
	return Update{X: st.X / 2, Aux: st.Aux}, nil
}

func identity(x float64) (float64, error) { return x, nil }

func TestRunHistoryIndices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 1e-3

	res := Run(funcProblem(identity), halving{}, 1, Aux{}, cfg)
	if res.Status != Converged {
		t.Fatalf("expected converged, got %v (%v)", res.Status, res.Cause)
	}
	if res.Iterations != 10 {
		t.Errorf("expected 10 iterations, got %d", res.Iterations)
	}
	if len(res.History) != res.Iterations {
		t.Fatalf("history length %d != iterations %d", len(res.History), res.Iterations)
	}
	for i, p := range res.History {
		if p.Iteration != i {
			t.Errorf("history[%d].Iteration = %d", i, p.Iteration)
		}
	}
	if last := res.History[len(res.History)-1].Error; last != res.Residual() {
		t.Errorf("last history error %g != residual %g", last, res.Residual())
	}
}

func TestRunDeterministic(t *testing.T) {
	f := funcProblem(func(x float64) (float64, error) { return x*x - 3, nil })
	a := Run(f, halving{}, 2, Aux{}, Config{Tolerance: 1e-6, IterLimit: 40, Precision: 12})
	b := Run(f, halving{}, 2, Aux{}, Config{Tolerance: 1e-6, IterLimit: 40, Precision: 12})

	if a.X != b.X || a.Iterations != b.Iterations || a.Status != b.Status {
		t.Fatalf("runs differ: %+v vs %+v", a, b)
	}
	for i := range a.History {
		if a.History[i] != b.History[i] {
			t.Errorf("history[%d] differs", i)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"default", DefaultConfig(), true},
		{"zero tolerance", Config{Tolerance: 0, IterLimit: 10}, false},
		{"negative tolerance", Config{Tolerance: -1, IterLimit: 10}, false},
		{"nan tolerance", Config{Tolerance: math.NaN(), IterLimit: 10}, false},
		{"inf tolerance", Config{Tolerance: math.Inf(1), IterLimit: 10}, false},
		{"negative limit", Config{Tolerance: 1e-6, IterLimit: -1}, false},
		{"negative precision", Config{Tolerance: 1e-6, IterLimit: 1, Precision: -2}, false},
		{"zero limit", Config{Tolerance: 1e-6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		x      float64
		digits int
		want   float64
	}{
		{1.23456789, 3, 1.23},
		{-0.000123456, 2, -0.00012},
		{1.0 / 3.0, 5, 0.33333},
		{1.0 / 3.0, 0, 1.0 / 3.0},
		{1.0 / 3.0, 50, 1.0 / 3.0},
		{1.0 / 3.0, 17, 1.0 / 3.0},
	}
	for _, tt := range tests {
		if got := Round(tt.x, tt.digits); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.x, tt.digits, got, tt.want)
		}
	}

	if !math.IsNaN(Round(math.NaN(), 5)) {
		t.Error("NaN should pass through")
	}
}

func TestDiv(t *testing.T) {
	if q, err := Div(6, 3, "q"); err != nil || q != 2 {
		t.Errorf("Div(6, 3) = %v, %v", q, err)
	}

	_, err := Div(1, 0, "f'(x)")
	if !errors.Is(err, ErrSingularUpdate) {
		t.Fatalf("expected ErrSingularUpdate, got %v", err)
	}
	var se *SingularError
	if !errors.As(err, &se) || se.Quantity != "f'(x)" {
		t.Errorf("expected quantity f'(x), got %v", err)
	}

	if _, err := Div(1e308, 1e-308, "q"); !errors.Is(err, ErrSingularUpdate) {
		t.Errorf("expected overflow to be singular, got %v", err)
	}
}

func TestStatusText(t *testing.T) {
	for s := Running; s <= InvalidInput; s++ {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Status
		if err := got.UnmarshalText(b); err != nil || got != s {
			t.Errorf("%v: got %v, %v", s, got, err)
		}
	}

	var s Status
	if err := s.UnmarshalText([]byte("exploded")); err == nil {
		t.Error("expected error for unknown status")
	}
	if Running.Terminal() || !NumericalFailure.Terminal() {
		t.Error("unexpected Terminal() values")
	}
}

func TestResultJSON(t *testing.T) {
	res := &Result{Method: "newton", X: 1.5, Status: IterationLimitReached, History: History{{0, 0.5}}}
	b, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}

	var back Result
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Status != IterationLimitReached || back.X != 1.5 || len(back.History) != 1 {
		t.Errorf("unexpected round trip: %+v", back)
	}
}
