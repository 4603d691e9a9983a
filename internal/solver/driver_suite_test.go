package solver_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rootlab/internal/solver"
)

type linear struct{ slope, offset float64 }

func (l linear) Eval(x float64) (float64, error) { return l.slope*x + l.offset, nil }

func (l linear) Derivative(x float64, order int) (float64, error) {
	if order == 1 {
		return l.slope, nil
	}
	return 0, nil
}

// stepFunc adapts a closure to solver.Method.
type stepFunc func(p solver.Problem, st solver.State) (solver.Update, error)

func (stepFunc) Name() string                      { return "stub" }
func (stepFunc) Requirements() solver.Requirements { return solver.Requirements{} }

func (f stepFunc) Step(p solver.Problem, st solver.State) (solver.Update, error) {
	return f(p, st)
}

type bracketed struct {
	stepFunc
	initErr error
}

func (b bracketed) Init(p solver.Problem, x0 float64, aux solver.Aux) (solver.Aux, error) {
	return aux, b.initErr
}

var halve = stepFunc(func(p solver.Problem, st solver.State) (solver.Update, error) {
	return solver.Update{X: st.X / 2}, nil
})

var _ = Describe("Run", func() {
	var (
		identity solver.Problem
		cfg      solver.Config
	)

	BeforeEach(func() {
		identity = linear{slope: 1}
		cfg = solver.DefaultConfig()
	})

	Context("when the initial guess already satisfies the tolerance", func() {
		It("converges without iterating", func() {
			res := solver.Run(identity, halve, 1e-7, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.Converged))
			Expect(res.Iterations).To(BeZero())
			Expect(res.History).To(BeEmpty())
			Expect(res.X).To(Equal(1e-7))
		})

		It("treats error equal to the tolerance as converged", func() {
			res := solver.Run(identity, halve, cfg.Tolerance, solver.Aux{}, cfg)
			Expect(res.Status).To(Equal(solver.Converged))
			Expect(res.Iterations).To(BeZero())
		})
	})

	Context("when the iteration cap is reached", func() {
		It("reports IterationLimitReached with the last iterate", func() {
			cfg.IterLimit = 3
			res := solver.Run(identity, halve, 1, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.IterationLimitReached))
			Expect(res.Iterations).To(Equal(3))
			Expect(res.X).To(Equal(0.125))
			Expect(res.History).To(HaveLen(3))
			Expect(res.Cause).To(BeNil())
		})

		It("stops immediately with a zero cap", func() {
			cfg.IterLimit = 0
			res := solver.Run(identity, halve, 1, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.IterationLimitReached))
			Expect(res.X).To(Equal(1.0))
		})
	})

	Context("when a step is singular", func() {
		It("fails and keeps the last valid iterate", func() {
			calls := 0
			m := stepFunc(func(p solver.Problem, st solver.State) (solver.Update, error) {
				calls++
				if calls == 3 {
					return solver.Update{}, solver.Singular("f'(x)", "zero denominator")
				}
				return solver.Update{X: st.X / 2}, nil
			})

			res := solver.Run(identity, m, 1, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.NumericalFailure))
			Expect(res.X).To(Equal(0.25))
			Expect(res.Iterations).To(Equal(2))
			Expect(errors.Is(res.Cause, solver.ErrSingularUpdate)).To(BeTrue())

			var se *solver.StepError
			Expect(errors.As(res.Cause, &se)).To(BeTrue())
			Expect(se.Iteration).To(Equal(2))
		})

		It("rejects a non-finite iterate", func() {
			m := stepFunc(func(p solver.Problem, st solver.State) (solver.Update, error) {
				return solver.Update{X: math.Inf(1)}, nil
			})

			res := solver.Run(identity, m, 1, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.NumericalFailure))
			Expect(res.X).To(Equal(1.0))
			Expect(errors.Is(res.Cause, solver.ErrSingularUpdate)).To(BeTrue())
		})
	})

	Context("when evaluation fails", func() {
		boom := errors.New("boom")

		It("fails at x0 with zero iterations", func() {
			p := failing{at: 3, err: boom}
			res := solver.Run(p, halve, 3, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.NumericalFailure))
			Expect(res.Iterations).To(BeZero())
			Expect(res.X).To(Equal(3.0))
			Expect(errors.Is(res.Cause, boom)).To(BeTrue())
		})

		It("keeps the previous iterate when the new one cannot be evaluated", func() {
			p := failing{at: 2, err: boom}
			res := solver.Run(p, halve, 8, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.NumericalFailure))
			Expect(res.X).To(Equal(4.0))
			Expect(res.Iterations).To(Equal(1))
			Expect(res.History).To(HaveLen(1))
		})
	})

	Context("with an initializer", func() {
		It("reports InvalidInput for rejected auxiliaries", func() {
			m := bracketed{stepFunc: halve, initErr: solver.ErrInvalidInput}
			res := solver.Run(identity, m, 1, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.InvalidInput))
			Expect(res.Iterations).To(BeZero())
		})

		It("reports NumericalFailure for other errors", func() {
			m := bracketed{stepFunc: halve, initErr: errors.New("eval")}
			res := solver.Run(identity, m, 1, solver.Aux{}, cfg)

			Expect(res.Status).To(Equal(solver.NumericalFailure))
		})
	})

	It("rejects an invalid configuration", func() {
		cfg.Tolerance = -1
		res := solver.Run(identity, halve, 1, solver.Aux{}, cfg)

		Expect(res.Status).To(Equal(solver.InvalidInput))
		Expect(errors.Is(res.Cause, solver.ErrInvalidInput)).To(BeTrue())
	})

	It("rounds iterates to the configured precision", func() {
		cfg.Precision = 5
		cfg.IterLimit = 1
		third := stepFunc(func(p solver.Problem, st solver.State) (solver.Update, error) {
			return solver.Update{X: 1.0 / 3.0}, nil
		})

		res := solver.Run(identity, third, 1, solver.Aux{}, cfg)
		Expect(res.X).To(Equal(0.33333))
	})
})

// failing evaluates to x except at one point.
type failing struct {
	at  float64
	err error
}

func (f failing) Eval(x float64) (float64, error) {
	if x == f.at {
		return 0, f.err
	}
	return x, nil
}

func (f failing) Derivative(x float64, order int) (float64, error) { return 1, nil }
