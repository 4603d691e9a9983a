package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/tui"
)

var (
	dataDir  string
	logLevel string

	// request flags
	method      string
	formula     string
	variable    string
	x0          float64
	tolerance   float64
	iterLimit   int
	precision   int
	derivatives string
	step        float64
	bracket     []float64
	params      map[string]string

	configFile string
	preset     string

	// output flags
	plotKind   string
	svgPath    string
	plotWidth  int
	plotHeight int
	save       bool

	workers int

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "rootlab"})
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rootlab",
		Short:         "root-finding lab for nonlinear equations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(lvl)
			logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunApp(experiment.NewRegistry(), config.GetPreset("sqrt3").Request)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rootlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve f(x) = 0 from one initial guess",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addRequestFlags(solveCmd)
	addOutputFlags(solveCmd)

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list iteration methods",
		Args:  cobra.NoArgs,
		RunE:  listMethods,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset problems",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the error history of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addOutputFlags(plotCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the error history of a stored run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "solve the same problem with several methods",
		RunE:  compareMethods,
	}
	addRequestFlags(compareCmd)
	compareCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the initial guess or another parameter and map the basins",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addRequestFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", experiment.ParamX0, "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -5, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 5, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 60, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "solve from randomly perturbed initial guesses",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addRequestFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Float64Var(&spread, "spread", 1, "half width of the x0 perturbation")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	monteCarloCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario of solves",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&save, "save", false, "store every run under the data directory")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search request parameters for the cheapest solve",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addRequestFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&objective, "objective", "iterations", "iterations or a metric name")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "step through the history of a stored run, or solve from flags and replay",
		Args:  cobra.MaximumNArgs(1),
		RunE:  replayRun,
	}
	addRequestFlags(replayCmd)

	rootCmd.AddCommand(solveCmd, methodsCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd,
		compareCmd, sweepCmd, monteCarloCmd, scenarioCmd, tuneCmd, replayCmd)
	return rootCmd
}

func addRequestFlags(cmd *cobra.Command) {
	def := experiment.DefaultRequest()
	f := cmd.Flags()
	f.StringVarP(&method, "method", "m", def.Method, "iteration method")
	f.StringVarP(&formula, "formula", "f", "", "function of the variable, e.g. \"x^2 - 3\"")
	f.StringVar(&variable, "var", "", "variable name (default x)")
	f.Float64Var(&x0, "x0", 0, "initial guess")
	f.Float64Var(&tolerance, "tol", def.Tolerance, "stop when |f(x)| <= tol")
	f.IntVar(&iterLimit, "iter-limit", def.IterLimit, "maximum iterations")
	f.IntVar(&precision, "precision", def.Precision, "significant digits kept per iterate")
	f.StringVar(&derivatives, "derivatives", def.Derivatives, "symbolic, numeric or dual")
	f.Float64Var(&step, "step", 0, "finite difference base step (numeric/dual)")
	f.Float64SliceVar(&bracket, "bracket", nil, "bracket end points a,b")
	f.StringToStringVar(&params, "param", nil, "method parameter name=value")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "start from a preset problem")
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&plotKind, "plot", config.DefaultPlot, "ascii, svg or none")
	f.StringVar(&svgPath, "svg", "", "svg output path")
	f.IntVar(&plotWidth, "width", config.DefaultPlotWidth, "plot width")
	f.IntVar(&plotHeight, "height", config.DefaultPlotHeight, "plot height")
	f.BoolVar(&save, "save", false, "store the run under the data directory")
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("method") {
		cfg.Method = method
	}
	if changed("formula") {
		cfg.Formula = formula
	}
	if changed("var") {
		cfg.Variable = variable
	}
	if changed("x0") {
		cfg.X0 = x0
	}
	if changed("tol") {
		cfg.Tolerance = tolerance
	}
	if changed("iter-limit") {
		cfg.IterLimit = iterLimit
	}
	if changed("precision") {
		cfg.Precision = precision
	}
	if changed("derivatives") {
		cfg.Derivatives = derivatives
	}
	if changed("step") {
		cfg.Step = step
	}
	if changed("bracket") {
		cfg.Bracket = bracket
	}
	if changed("param") {
		p, err := parseParams(params)
		if err != nil {
			return nil, err
		}
		cfg.Params = p
	}
	if changed("plot") {
		cfg.Output.Plot = plotKind
	}
	if changed("width") {
		cfg.Output.Width = plotWidth
	}
	if changed("height") {
		cfg.Output.Height = plotHeight
	}
	if changed("save") {
		cfg.Output.Save = save
	}
	return cfg, nil
}
