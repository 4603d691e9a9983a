package solver

import (
	"fmt"
	"math"

	"github.com/san-kum/rootlab/internal/diff"
)

type Config struct {
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
	IterLimit int     `yaml:"iter_limit" json:"iter_limit"`
	// Precision is the number of significant decimal digits kept in each
	// iterate. Values of 17 or more leave float64 iterates unchanged.
	Precision int `yaml:"precision" json:"precision"`
}

const (
	DefaultTolerance = 1e-6
	DefaultIterLimit = 10000
	DefaultPrecision = 50
)

func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
		IterLimit: DefaultIterLimit,
		Precision: DefaultPrecision,
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be finite and positive, got %g", ErrInvalidInput, c.Tolerance)
	}
	if c.IterLimit < 0 {
		return fmt.Errorf("%w: iteration limit must be non-negative, got %d", ErrInvalidInput, c.IterLimit)
	}
	if c.Precision < 0 {
		return fmt.Errorf("%w: precision must be non-negative, got %d", ErrInvalidInput, c.Precision)
	}
	return nil
}

// Point is one entry of the error history.
type Point struct {
	Iteration int     `json:"iteration"`
	Error     float64 `json:"error"`
}

// History is the append-only sequence of per-iteration errors.
type History []Point

func (h History) Clone() History {
	c := make(History, len(h))
	copy(c, h)
	return c
}

// Errors returns the error magnitudes in iteration order.
func (h History) Errors() []float64 {
	out := make([]float64, len(h))
	for i, p := range h {
		out[i] = p.Error
	}
	return out
}

// Aux carries the auxiliary points multi-point methods keep between steps.
type Aux struct {
	A, B   float64
	FA, FB float64
	Y, Z   float64
	// Retained counts consecutive steps that kept the same bracket end.
	Retained int
}

// State is the iteration record threaded through the loop.
type State struct {
	X         float64
	FX        float64
	Error     float64
	Iteration int
	Aux       Aux
}

// Update is what a method step produces.
type Update struct {
	X   float64
	Aux Aux
}

// Requirements declares what a method needs from the problem and caller.
type Requirements struct {
	// Derivatives is the highest derivative order used; 0 means
	// derivative-free.
	Derivatives int
	Bracket     bool
}

// Problem is the function being solved and its derivatives.
type Problem interface {
	Eval(x float64) (float64, error)
	Derivative(x float64, order int) (float64, error)
}

// Method is one closed-form update rule.
type Method interface {
	Name() string
	Requirements() Requirements
	Step(p Problem, st State) (Update, error)
}

// Initializer is implemented by methods that prepare their auxiliaries
// before the first step. Returning an error wrapping ErrInvalidInput
// reports the run as InvalidInput.
type Initializer interface {
	Init(p Problem, x0 float64, aux Aux) (Aux, error)
}

type problem struct {
	f diff.Func
	d diff.Differentiator
}

// NewProblem pairs a function with a differentiator for it.
func NewProblem(f diff.Func, d diff.Differentiator) Problem {
	return &problem{f: f, d: d}
}

func (p *problem) Eval(x float64) (float64, error) { return p.f.Eval(x) }

func (p *problem) Derivative(x float64, order int) (float64, error) {
	return p.d.Derivative(x, order)
}
