package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/rootlab/internal/analysis"
	"github.com/san-kum/rootlab/internal/automation"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/optim"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/storage"
	"github.com/san-kum/rootlab/internal/validate"
)

var (
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	trials int
	spread float64
	seed   int64

	grid      []string
	objective string
)

func parseParams(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(raw))
	for name, s := range raw {
		v, err := validate.Number(name, s)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// parseGrid reads name=v1,v2,... specs in order.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.TrimSpace(list) == "" {
			return nil, nil, fmt.Errorf("invalid grid %q, want name=v1,v2,...", spec)
		}
		var vals []float64
		for _, s := range strings.Split(list, ",") {
			v, err := validate.Number(name, s)
			if err != nil {
				return nil, nil, err
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = registry.ListMethods()
	}

	reqs := make([]experiment.Request, len(names))
	for i, name := range names {
		reqs[i] = cfg.Request
		reqs[i].Method = name
		if name != cfg.Method {
			reqs[i].Params = nil
		}
	}

	runs, err := registry.Ensemble(cmd.Context(), reqs, workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing methods on %s = 0 from x0 = %g (tol %g)\n\n", cfg.Formula, cfg.X0, cfg.Tolerance)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTATUS\tITER\tX\tORDER")
	for _, run := range runs {
		order := "-"
		if v, ok := run.Metrics["convergence_order"]; ok {
			order = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.15g\t%s\n", run.Request.Method, run.Result.Status, run.Result.Iterations, run.Result.X, order)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:     cfg.Request,
		Param:    sweepParam,
		Min:      sweepFrom,
		Max:      sweepTo,
		NumSteps: sweepSteps,
		Workers:  workers,
	}, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s over %s in [%g, %g]\n\n", cfg.Request.Title(), res.Param, sweepFrom, sweepTo)
	fmt.Fprintf(out, "  %s\n\n", analysis.BasinStrip(res.Basins))
	fmt.Fprint(out, analysis.Legend(res.Clusters))
	if chart := analysis.BasinToASCII(res.Basins, min(sweepSteps, 80), 12); chart != "" {
		fmt.Fprintf(out, "\nroot reached by %s:\n%s", res.Param, chart)
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:         cfg.Request,
		Perturbation: spread,
		NumTrials:    trials,
		Seed:         seed,
		Workers:      workers,
	}, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	sum := automation.MonteCarloStats(results, 0)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, x0 = %g ± %g, %d trials\n\n", cfg.Request.Title(), cfg.X0, spread, sum.Trials)

	statuses := make([]solver.Status, 0, len(sum.ByStatus))
	for s := range sum.ByStatus {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	for _, s := range statuses {
		fmt.Fprintf(out, "  %-24s %d\n", s, sum.ByStatus[s])
	}
	if !math.IsNaN(sum.MeanIterations) {
		fmt.Fprintf(out, "\n  iterations to converge: %.2f ± %.2f\n", sum.MeanIterations, sum.StdIterations)
	}
	if len(sum.Roots) > 0 {
		fmt.Fprintln(out, "\nroots:")
		fmt.Fprint(out, analysis.Legend(sum.Roots))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	logger.Info("scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	runs, err := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for _, run := range runs {
			runID, err := st.Save(run)
			if err != nil {
				return err
			}
			logger.Info("saved", "run", runID)
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSTATUS\tITER\tX")
	for i, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.15g\n", scenario.Steps[i].Name, run.Result.Status, run.Result.Iterations, run.Result.X)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("tune needs at least one --grid")
	}

	var obj optim.Objective = optim.Iterations
	if objective != "iterations" {
		obj = optim.Metric(objective)
	}

	best, all, err := optim.NewGridSearch(names, ranges).WithWorkers(workers).
		Search(cmd.Context(), experiment.NewRegistry(), optim.FromRequest(cfg.Request), obj)
	logger.Debug("grid evaluated", "candidates", len(all))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, %d candidates\n\nbest %s = %g\n", cfg.Request.Title(), len(all), objective, best.Score)
	for _, name := range names {
		fmt.Fprintf(out, "  %s = %g\n", name, best.Params[name])
	}
	fmt.Fprintf(out, "  x = %.15g\n", best.Run.Result.X)
	return nil
}
