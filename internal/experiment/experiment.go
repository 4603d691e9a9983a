package experiment

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rootlab/internal/diff"
	"github.com/san-kum/rootlab/internal/expr"
	"github.com/san-kum/rootlab/internal/metrics"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/validate"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Request describes one solve call. Zero IterLimit, Precision and Step
// select the solver defaults; an empty Derivatives selects symbolic
// differentiation.
type Request struct {
	Method      string             `yaml:"method" json:"method"`
	Formula     string             `yaml:"formula" json:"formula"`
	Variable    string             `yaml:"variable,omitempty" json:"variable,omitempty"`
	X0          float64            `yaml:"x0" json:"x0"`
	Tolerance   float64            `yaml:"tolerance" json:"tolerance"`
	IterLimit   int                `yaml:"iter_limit,omitempty" json:"iter_limit,omitempty"`
	Precision   int                `yaml:"precision,omitempty" json:"precision,omitempty"`
	Derivatives string             `yaml:"derivatives,omitempty" json:"derivatives,omitempty"`
	Step        float64            `yaml:"step,omitempty" json:"step,omitempty"`
	Bracket     []float64          `yaml:"bracket,omitempty" json:"bracket,omitempty"`
	Params      map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

func DefaultRequest() Request {
	return Request{
		Method:      "newton",
		Tolerance:   solver.DefaultTolerance,
		IterLimit:   solver.DefaultIterLimit,
		Precision:   solver.DefaultPrecision,
		Derivatives: diff.KindSymbolic,
	}
}

// Config returns the solver configuration the request resolves to.
func (r Request) Config() solver.Config {
	cfg := solver.DefaultConfig()
	cfg.Tolerance = r.Tolerance
	if r.IterLimit > 0 {
		cfg.IterLimit = r.IterLimit
	}
	if r.Precision > 0 {
		cfg.Precision = r.Precision
	}
	return cfg
}

func (r Request) Title() string {
	return fmt.Sprintf("%s: %s = 0", r.Method, r.Formula)
}

// Run is a finished solve together with its derived metrics.
type Run struct {
	Request Request            `json:"request"`
	Result  *solver.Result     `json:"result"`
	Metrics map[string]float64 `json:"metrics"`
}

type Experiment struct {
	req     Request
	cfg     solver.Config
	problem solver.Problem
	method  solver.Method
	aux     solver.Aux
}

func New(req Request) *Experiment {
	return &Experiment{req: req}
}

// Setup validates the request and resolves the formula, method and
// differentiator. Every error it returns wraps solver.ErrInvalidInput.
func (e *Experiment) Setup(r *Registry) error {
	req := e.req

	var opts []expr.Option
	if req.Variable != "" {
		opts = append(opts, expr.WithVariable(req.Variable))
	}
	v := validate.Validate(req.Formula, req.X0, req.Tolerance, opts...)
	if !v.OK() {
		return v.Err
	}
	if err := validate.Limits(req.IterLimit, req.Precision); err != nil {
		return err
	}

	m, err := r.GetMethod(req.Method, req.Params)
	if err != nil {
		return invalid(err)
	}

	if m.Requirements().Bracket {
		if err := validate.Bracket(req.Bracket); err != nil {
			return err
		}
		e.aux = solver.Aux{A: req.Bracket[0], B: req.Bracket[1]}
	}

	d, err := diff.New(req.Derivatives, v.Function, req.Step)
	if err != nil {
		return invalid(err)
	}

	e.cfg = req.Config()
	e.problem = solver.NewProblem(v.Function, d)
	e.method = m
	return nil
}

// Run performs the solve. It fails only when Setup has not succeeded.
func (e *Experiment) Run() (*Run, error) {
	if e.method == nil {
		return nil, ErrNotSetup
	}
	res := solver.Run(e.problem, e.method, e.req.X0, e.aux, e.cfg)
	return &Run{Request: e.req, Result: res, Metrics: finiteMetrics(res.History)}, nil
}

// Solve runs req to a terminal status. Invalid requests come back as an
// InvalidInput result with zero iterations.
func (r *Registry) Solve(req Request) *Run {
	e := New(req)
	if err := e.Setup(r); err != nil {
		return &Run{Request: req, Result: solver.Rejected(req.Method, req.X0, err), Metrics: map[string]float64{}}
	}
	run, _ := e.Run()
	return run
}

// Solve runs req against the built-in methods.
func Solve(req Request) *Run {
	return NewRegistry().Solve(req)
}

func invalid(err error) error {
	if errors.Is(err, solver.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %w", solver.ErrInvalidInput, err)
}

// finiteMetrics drops undefined values so runs stay JSON-encodable.
func finiteMetrics(h solver.History) map[string]float64 {
	vals := metrics.Evaluate(h)
	for k, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			delete(vals, k)
		}
	}
	return vals
}
