package automation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rootlab/internal/analysis"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/solver"
)

var quiet = log.New(io.Discard)

const scenarioYAML = `name: demo
description: three solves
steps:
  - name: sqrt3
    method: newton
    formula: x^2 - 3
    x0: 2
    save_as: out/sqrt3.json
  - method: euler
    formula: 9*x + 3
    x0: 0.5
  - method: yun-petkovic
    formula: x^2 - 3
    x0: 2
    tolerance: 1e-8
    bracket: [1, 2]
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	require.Len(t, s.Steps, 3)
	assert.Equal(t, "demo", s.Name)
	assert.Equal(t, "sqrt3", s.Steps[0].Name)
	assert.Equal(t, "x^2 - 3", s.Steps[0].Formula)
	assert.Equal(t, solver.DefaultTolerance, s.Steps[0].Tolerance)
	assert.Equal(t, "euler: 9*x + 3 = 0", s.Steps[1].Name)
	assert.Equal(t, []float64{1, 2}, s.Steps[2].Bracket)
	assert.Equal(t, 1e-8, s.Steps[2].Tolerance)
}

func TestLoadScenarioEmpty(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "name: nothing\n"))
	assert.True(t, errors.Is(err, ErrEmptyScenario))

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	path := writeScenario(t, scenarioYAML)
	s, err := LoadScenario(path)
	require.NoError(t, err)

	runs, err := RunScenario(context.Background(), s, experiment.NewRegistry(), quiet)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, solver.Converged, runs[0].Result.Status)
	assert.Equal(t, solver.NumericalFailure, runs[1].Result.Status)
	assert.Equal(t, solver.Converged, runs[2].Result.Status)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "out", "sqrt3.json"))
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Contains(t, saved, "history")
}

func TestRunScenarioCanceled(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runs, err := RunScenario(ctx, s, experiment.NewRegistry(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, runs)
}

func TestValues(t *testing.T) {
	vals, err := Values(-3, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -2, -1, 0, 1, 2, 3}, vals)

	vals, err = Values(5, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, vals)

	for _, bad := range [][3]float64{{0, 1, 0}, {1, 1, 3}, {2, 1, 3}} {
		_, err := Values(bad[0], bad[1], int(bad[2]))
		assert.True(t, errors.Is(err, ErrSweepRange), "%v", bad)
	}
}

func TestRunSweepBasins(t *testing.T) {
	base := experiment.DefaultRequest()
	base.Formula = "x^2 - 3"

	res, err := RunSweep(context.Background(), &ParameterSweep{
		Base:     base,
		Min:      -3,
		Max:      3,
		NumSteps: 7,
		Workers:  3,
	}, experiment.NewRegistry(), quiet)
	require.NoError(t, err)

	assert.Equal(t, experiment.ParamX0, res.Param)
	require.Len(t, res.Clusters, 2)
	assert.InDelta(t, -math.Sqrt(3), res.Clusters[0].Root, 1e-6)
	assert.InDelta(t, math.Sqrt(3), res.Clusters[1].Root, 1e-6)
	assert.Equal(t, "AAAxBBB", analysis.BasinStrip(res.Basins))
}

func TestRunSweepMethodParam(t *testing.T) {
	base := experiment.DefaultRequest()
	base.Method = "ren"
	base.Formula = "x^3 - 2*x - 5"
	base.X0 = 2
	base.Tolerance = 1e-8

	res, err := RunSweep(context.Background(), &ParameterSweep{
		Base:     base,
		Param:    "a",
		Min:      -1,
		Max:      0.5,
		NumSteps: 4,
	}, experiment.NewRegistry(), quiet)
	require.NoError(t, err)

	require.Len(t, res.Runs, 4)
	for i, run := range res.Runs {
		assert.Equal(t, solver.Converged, run.Result.Status, "a=%v", res.Values[i])
		assert.Equal(t, res.Values[i], run.Request.Params["a"])
	}
	require.Len(t, res.Clusters, 1)
	assert.InDelta(t, 2.0945514815, res.Clusters[0].Root, 1e-8)
}

func TestRunMonteCarloSeeded(t *testing.T) {
	base := experiment.DefaultRequest()
	base.Formula = "x^2 - 3"
	base.X0 = 2
	cfg := &MonteCarloConfig{Base: base, Perturbation: 0.5, NumTrials: 25, Seed: 7}

	reg := experiment.NewRegistry()
	a, err := RunMonteCarlo(context.Background(), cfg, reg, quiet)
	require.NoError(t, err)
	b, err := RunMonteCarlo(context.Background(), cfg, reg, quiet)
	require.NoError(t, err)

	require.Len(t, a, 25)
	for i := range a {
		assert.Equal(t, i, a[i].TrialID)
		assert.Equal(t, a[i].X0, b[i].X0)
		assert.GreaterOrEqual(t, a[i].X0, 1.5)
		assert.LessOrEqual(t, a[i].X0, 2.5)
	}

	sum := MonteCarloStats(a, 0)
	assert.Equal(t, 25, sum.Trials)
	assert.Equal(t, 25, sum.ByStatus[solver.Converged])
	require.Len(t, sum.Roots, 1)
	assert.InDelta(t, math.Sqrt(3), sum.Roots[0].Root, 1e-6)
	assert.Greater(t, sum.MeanIterations, 0.0)
	assert.False(t, math.IsNaN(sum.StdIterations))
}

func TestRunMonteCarloNoTrials(t *testing.T) {
	_, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{}, experiment.NewRegistry(), quiet)
	assert.True(t, errors.Is(err, ErrTrials))
}

func TestMonteCarloStatsNoneConverged(t *testing.T) {
	trials := []MonteCarloResult{{Run: experiment.Solve(experiment.Request{Method: "newton"})}}
	sum := MonteCarloStats(trials, 0)

	assert.Equal(t, 1, sum.ByStatus[solver.InvalidInput])
	assert.True(t, math.IsNaN(sum.MeanIterations))
	assert.Empty(t, sum.Roots)
}
