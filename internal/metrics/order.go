package metrics

import (
	"math"

	"github.com/san-kum/rootlab/internal/solver"
)

// ConvergenceOrder estimates the computational order of convergence from
// the last three positive errors:
//
//	q = ln(e_k / e_{k-1}) / ln(e_{k-1} / e_{k-2})
//
// It is NaN until three positive errors have been seen or when the ratio
// is undefined.
type ConvergenceOrder struct {
	name   string
	window [3]float64
	n      int
}

func NewConvergenceOrder() *ConvergenceOrder {
	return &ConvergenceOrder{name: "convergence_order"}
}

func (c *ConvergenceOrder) Name() string { return c.name }

func (c *ConvergenceOrder) Observe(p solver.Point) {
	if p.Error <= 0 {
		return
	}
	c.window[0], c.window[1], c.window[2] = c.window[1], c.window[2], p.Error
	c.n++
}

func (c *ConvergenceOrder) Value() float64 {
	if c.n < 3 {
		return math.NaN()
	}
	den := math.Log(c.window[1] / c.window[0])
	if den == 0 {
		return math.NaN()
	}
	return math.Log(c.window[2]/c.window[1]) / den
}

func (c *ConvergenceOrder) Reset() {
	c.window = [3]float64{}
	c.n = 0
}
