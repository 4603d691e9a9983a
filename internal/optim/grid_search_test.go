package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rootlab/internal/experiment"
)

func base(method, formula string, x0, tol float64) experiment.Request {
	req := experiment.DefaultRequest()
	req.Method = method
	req.Formula = formula
	req.X0 = x0
	req.Tolerance = tol
	return req
}

func TestGridSearchInitialGuess(t *testing.T) {
	g := NewGridSearch([]string{"x0"}, [][]float64{{0, 1, 2, 5}})
	best, all, err := g.Search(context.Background(), experiment.NewRegistry(), FromRequest(base("newton", "x^2 - 3", 0, 1e-6)), Iterations)
	require.NoError(t, err)

	require.Len(t, all, 4)
	assert.True(t, math.IsInf(all[0].Score, 1))
	assert.Equal(t, 2.0, best.Params["x0"])
	for _, c := range all {
		assert.GreaterOrEqual(t, c.Score, best.Score)
	}
}

func TestGridSearchMethodParam(t *testing.T) {
	reg := experiment.NewRegistry()
	req := base("ren", "x^3 - 2*x - 5", 2, 1e-8)
	as := []float64{-1, 0, 0.5}

	g := NewGridSearch([]string{"a", "x0"}, [][]float64{as, {2, 3}}).WithWorkers(2)
	best, all, err := g.Search(context.Background(), reg, FromRequest(req), nil)
	require.NoError(t, err)
	require.Len(t, all, 6)

	want := math.Inf(1)
	for _, c := range all {
		again, err := req.WithAll(c.Params)
		require.NoError(t, err)
		want = math.Min(want, Iterations(reg.Solve(again)))
	}
	assert.Equal(t, want, best.Score)
	assert.Equal(t, map[string]float64{"a": -1, "x0": 2}, all[0].Params)
}

func TestGridSearchMetric(t *testing.T) {
	g := NewGridSearch([]string{"x0"}, [][]float64{{1, 2}})
	best, _, err := g.Search(context.Background(), experiment.NewRegistry(),
		FromRequest(base("newton", "x^2 - 3", 0, 1e-6)), Metric("final_error"))
	require.NoError(t, err)
	assert.Less(t, best.Score, 1e-6)
}

func TestGridSearchNoFeasible(t *testing.T) {
	g := NewGridSearch([]string{"x0"}, [][]float64{{0.5}})
	_, all, err := g.Search(context.Background(), experiment.NewRegistry(), FromRequest(base("euler", "9*x + 3", 0, 1e-6)), Iterations)
	assert.True(t, errors.Is(err, ErrNoFeasible))
	assert.Len(t, all, 1)
}

func TestGridSearchRanges(t *testing.T) {
	g := NewGridSearch([]string{"x0", "a"}, [][]float64{{1}})
	_, _, err := g.Search(context.Background(), experiment.NewRegistry(), FromRequest(experiment.DefaultRequest()), nil)
	assert.True(t, errors.Is(err, ErrRanges))
}
