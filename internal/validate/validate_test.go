package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rootlab/internal/expr"
	"github.com/san-kum/rootlab/internal/solver"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		x0, tol float64
		field   string
		kind    error
	}{
		{"ok", "x^2 - 3", 2, 1e-6, "", nil},
		{"empty", "", 2, 1e-6, "formula", ErrFormula},
		{"blank", "  \t", 2, 1e-6, "formula", ErrFormula},
		{"syntax", "x +* 2", 2, 1e-6, "formula", ErrFormula},
		{"nan x0", "x", math.NaN(), 1e-6, "x0", ErrNumber},
		{"inf x0", "x", math.Inf(-1), 1e-6, "x0", ErrNumber},
		{"nan tol", "x", 1, math.NaN(), "tolerance", ErrNumber},
		{"zero tol", "x", 1, 0, "tolerance", ErrTolerance},
		{"negative tol", "x", 1, -1e-6, "tolerance", ErrTolerance},
		// formula is checked before x0
		{"order", "x +* 2", math.NaN(), -1, "formula", ErrFormula},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.formula, tt.x0, tt.tol)
			if tt.kind == nil {
				require.True(t, res.OK(), "unexpected error: %v", res.Err)
				assert.NotNil(t, res.Function)
				return
			}

			require.False(t, res.OK())
			assert.Nil(t, res.Function)
			assert.True(t, errors.Is(res.Err, tt.kind))
			assert.True(t, errors.Is(res.Err, solver.ErrInvalidInput))

			var fe *FieldError
			require.True(t, errors.As(res.Err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestValidateWrapsParseError(t *testing.T) {
	res := Validate("sin(x, 2)", 0, 1e-6)
	assert.True(t, errors.Is(res.Err, expr.ErrInvalidExpression))
}

func TestValidateVariable(t *testing.T) {
	res := Validate("t^2 - 2", 1, 1e-6, expr.WithVariable("t"))
	require.True(t, res.OK())
	assert.Equal(t, "t", res.Function.Variable())
}

func TestLimits(t *testing.T) {
	assert.NoError(t, Limits(10000, 50))
	assert.NoError(t, Limits(0, 0))
	assert.True(t, errors.Is(Limits(-1, 50), ErrLimits))
	assert.True(t, errors.Is(Limits(10, -1), ErrLimits))
}

func TestBracket(t *testing.T) {
	assert.NoError(t, Bracket([]float64{1, 2}))
	assert.NoError(t, Bracket([]float64{2, 1}))

	for _, b := range [][]float64{nil, {1}, {1, 2, 3}, {1, 1}, {math.NaN(), 1}, {0, math.Inf(1)}} {
		err := Bracket(b)
		assert.True(t, errors.Is(err, ErrBracket), "%v: %v", b, err)
		assert.True(t, errors.Is(err, solver.ErrInvalidInput))
	}
}

func TestNumber(t *testing.T) {
	v, err := Number("x0", " 1.5e-3 ")
	require.NoError(t, err)
	assert.Equal(t, 1.5e-3, v)

	for _, s := range []string{"abc", "", "NaN", "inf"} {
		_, err := Number("x0", s)
		assert.True(t, errors.Is(err, ErrNumber), "%q", s)
	}
}
