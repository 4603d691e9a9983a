package metrics

import "github.com/san-kum/rootlab/internal/solver"

// Monotonicity is the fraction of steps whose error did not grow.
type Monotonicity struct {
	name       string
	prev       float64
	violations int
	samples    int
}

func NewMonotonicity() *Monotonicity {
	return &Monotonicity{name: "monotonicity"}
}

func (m *Monotonicity) Name() string { return m.name }

func (m *Monotonicity) Observe(p solver.Point) {
	if m.samples > 0 && p.Error > m.prev {
		m.violations++
	}
	m.prev = p.Error
	m.samples++
}

func (m *Monotonicity) Value() float64 {
	if m.samples < 2 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples-1)
}

func (m *Monotonicity) Reset() {
	m.prev = 0
	m.violations = 0
	m.samples = 0
}
