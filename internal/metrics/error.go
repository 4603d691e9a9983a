package metrics

import (
	"math"

	"github.com/san-kum/rootlab/internal/solver"
)

type FinalError struct {
	name  string
	last  float64
	empty bool
}

func NewFinalError() *FinalError {
	return &FinalError{name: "final_error", empty: true}
}

func (f *FinalError) Name() string { return f.name }

func (f *FinalError) Observe(p solver.Point) {
	f.last = p.Error
	f.empty = false
}

// Value is NaN for an empty history.
func (f *FinalError) Value() float64 {
	if f.empty {
		return math.NaN()
	}
	return f.last
}

func (f *FinalError) Reset() {
	f.last = 0
	f.empty = true
}

// ErrorReduction is the number of decades the error fell between the first
// and last recorded iterations.
type ErrorReduction struct {
	name        string
	first, last float64
	samples     int
}

func NewErrorReduction() *ErrorReduction {
	return &ErrorReduction{name: "error_reduction"}
}

func (e *ErrorReduction) Name() string { return e.name }

func (e *ErrorReduction) Observe(p solver.Point) {
	if e.samples == 0 {
		e.first = p.Error
	}
	e.last = p.Error
	e.samples++
}

func (e *ErrorReduction) Value() float64 {
	if e.samples < 2 || e.first <= 0 {
		return 0
	}
	if e.last <= 0 {
		return math.Inf(1)
	}
	return math.Log10(e.first / e.last)
}

func (e *ErrorReduction) Reset() {
	e.first, e.last = 0, 0
	e.samples = 0
}
