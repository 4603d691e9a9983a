package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rootlab/internal/analysis"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/solver"
)

var ErrTrials = errors.New("automation: monte carlo needs at least one trial")

// MonteCarloConfig solves Base from NumTrials initial guesses drawn
// uniformly from [X0-Perturbation, X0+Perturbation]. Seed 0 seeds from the
// clock.
type MonteCarloConfig struct {
	Base         experiment.Request
	Perturbation float64
	NumTrials    int
	Seed         int64
	Workers      int
}

type MonteCarloResult struct {
	TrialID int
	X0      float64
	Run     *experiment.Run
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry, logger *log.Logger) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("%w: %d", ErrTrials, cfg.NumTrials)
	}
	logger = orDefault(logger)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	reqs := make([]experiment.Request, cfg.NumTrials)
	for i := range reqs {
		x0 := cfg.Base.X0 + (rng.Float64()-0.5)*2*cfg.Perturbation
		var err error
		if reqs[i], err = cfg.Base.With(experiment.ParamX0, x0); err != nil {
			return nil, err
		}
	}

	logger.Info("monte carlo", "method", cfg.Base.Method, "trials", cfg.NumTrials, "seed", seed)
	runs, err := registry.Ensemble(ctx, reqs, cfg.Workers)
	if err != nil {
		return nil, err
	}

	out := make([]MonteCarloResult, len(runs))
	for i, run := range runs {
		out[i] = MonteCarloResult{TrialID: i, X0: reqs[i].X0, Run: run}
	}
	return out, nil
}

// MonteCarloSummary aggregates trial outcomes.
type MonteCarloSummary struct {
	Trials   int
	ByStatus map[solver.Status]int
	// MeanIterations and StdIterations cover converged trials only; both
	// are NaN when none converged.
	MeanIterations float64
	StdIterations  float64
	Roots          []analysis.Cluster
}

func MonteCarloStats(trials []MonteCarloResult, clusterTol float64) MonteCarloSummary {
	if clusterTol <= 0 {
		clusterTol = DefaultClusterTol
	}

	sum := MonteCarloSummary{Trials: len(trials), ByStatus: make(map[solver.Status]int)}
	rs := make([]*solver.Result, len(trials))
	var iters []float64
	for i, t := range trials {
		if t.Run == nil {
			continue
		}
		rs[i] = t.Run.Result
		sum.ByStatus[t.Run.Result.Status]++
		if t.Run.Result.Converged() {
			iters = append(iters, float64(t.Run.Result.Iterations))
		}
	}

	switch len(iters) {
	case 0:
		sum.MeanIterations, sum.StdIterations = math.NaN(), math.NaN()
	case 1:
		sum.MeanIterations = iters[0]
	default:
		sum.MeanIterations, sum.StdIterations = stat.MeanStdDev(iters, nil)
	}
	sum.Roots = analysis.ClusterRoots(rs, clusterTol)
	return sum
}
