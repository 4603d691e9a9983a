package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/plot"
	"github.com/san-kum/rootlab/internal/solver"
	"github.com/san-kum/rootlab/internal/storage"
	"github.com/san-kum/rootlab/internal/tui"
)

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sink, err := plot.New(cfg.Output.Plot, cmd.OutOrStdout(), svgPath, cfg.Output.Width, cfg.Output.Height)
	if err != nil {
		return err
	}

	logger.Debug("solving", "method", cfg.Method, "formula", cfg.Formula, "x0", cfg.X0, "tol", cfg.Tolerance)
	run := experiment.NewRegistry().Solve(cfg.Request)

	out := cmd.OutOrStdout()
	printRun(out, run)

	if len(run.Result.History) > 0 {
		fmt.Fprintln(out)
		if err := sink.Record(run.Result.History, run.Request.Title()); err != nil {
			return err
		}
		if cfg.Output.Plot == "svg" {
			logger.Info("wrote plot", "path", svgPath)
		}
	}

	if cfg.Output.Save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(run)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}
	return nil
}

func printRun(w io.Writer, run *experiment.Run) {
	res := run.Result
	fmt.Fprintf(w, "%s\n", run.Request.Title())
	fmt.Fprintf(w, "status: %s\n", res.Status)
	fmt.Fprintf(w, "x: %.17g\n", res.X)
	if !math.IsNaN(res.FX) {
		fmt.Fprintf(w, "f(x): %.6e\n", res.FX)
	}
	fmt.Fprintf(w, "iterations: %d\n", res.Iterations)
	if res.Cause != nil {
		fmt.Fprintf(w, "cause: %v\n", res.Cause)
	}

	if len(run.Metrics) == 0 {
		return
	}
	names := make([]string, 0, len(run.Metrics))
	for name := range run.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6g\n", name, run.Metrics[name])
	}
}

func requirements(req solver.Requirements) string {
	var parts []string
	switch req.Derivatives {
	case 0:
		parts = append(parts, "derivative-free")
	case 1:
		parts = append(parts, "f'")
	case 2:
		parts = append(parts, "f', f''")
	default:
		parts = append(parts, "f', f'', f'''")
	}
	if req.Bracket {
		parts = append(parts, "bracket")
	}
	return strings.Join(parts, ", ")
}

func listMethods(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tNEEDS\tPARAMS")
	for _, name := range registry.ListMethods() {
		info, err := registry.Describe(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, requirements(info.Requirements), strings.Join(info.Params, ","))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMETHOD\tFORMULA\tX0\tTOL")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\n", name, p.Method, p.Formula, p.X0, p.Tolerance)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tTIME\tFORMULA\tSTATUS\tITER\tX")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.10g\n",
			run.ID,
			run.Request.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Request.Formula,
			run.Status,
			run.Iterations,
			run.X,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	run, err := storage.New(dataDir).LoadRun(args[0])
	if err != nil {
		return err
	}
	if len(run.Result.History) == 0 {
		return fmt.Errorf("no data to plot")
	}

	sink, err := plot.New(plotKind, cmd.OutOrStdout(), svgPath, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "run: %s\n\n", args[0])
	return sink.Record(run.Result.History, run.Request.Title())
}

func exportJSON(cmd *cobra.Command, args []string) error {
	run, err := storage.New(dataDir).LoadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), run)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	h, err := storage.New(dataDir).LoadHistory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteHistoryCSV(cmd.OutOrStdout(), h)
}

func replayRun(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		run, err := storage.New(dataDir).LoadRun(args[0])
		if err != nil {
			return err
		}
		return tui.RunReplay(run)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.RunReplay(experiment.NewRegistry().Solve(cfg.Request))
}
