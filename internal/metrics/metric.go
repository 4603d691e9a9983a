package metrics

import "github.com/san-kum/rootlab/internal/solver"

// Metric summarises an error history. Metrics are fed only after a run has
// reached a terminal status.
type Metric interface {
	Name() string
	Observe(p solver.Point)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the standard convergence metrics.
func Defaults() []Metric {
	return []Metric{
		NewFinalError(),
		NewErrorReduction(),
		NewConvergenceOrder(),
		NewMonotonicity(),
	}
}

// Evaluate replays h through each metric and collects the values by name.
func Evaluate(h solver.History, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Defaults()
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, p := range h {
			m.Observe(p)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
