package experiment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rootlab/internal/solver"
)

func TestRequestWith(t *testing.T) {
	base := request("ren", "x^3 - 2*x - 5", 2, 1e-8)
	base.Bracket = []float64{2, 3}

	got, err := base.WithAll(map[string]float64{
		ParamX0:        2.5,
		ParamIterLimit: 40.4,
		ParamBracketB:  4,
		"a":            -1,
	})
	require.NoError(t, err)

	assert.Equal(t, 2.5, got.X0)
	assert.Equal(t, 40, got.IterLimit)
	assert.Equal(t, []float64{2, 4}, got.Bracket)
	assert.Equal(t, -1.0, got.Params["a"])

	assert.Equal(t, 2.0, base.X0)
	assert.Equal(t, []float64{2, 3}, base.Bracket)
	assert.Nil(t, base.Params)

	run := Solve(got)
	assert.Equal(t, solver.Converged, run.Result.Status)
}

func TestRequestWithBracketFromEmpty(t *testing.T) {
	got, err := DefaultRequest().With(ParamBracketB, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3}, got.Bracket)
}

func TestRequestWithEmptyName(t *testing.T) {
	_, err := DefaultRequest().With("", 1)
	assert.True(t, errors.Is(err, ErrUnknownParam))
}
