package solver

import (
	"math"
	"strconv"
)

// Round keeps digits significant decimal digits of x. It is the identity
// for digits <= 0, digits >= 17 and non-finite x.
func Round(x float64, digits int) float64 {
	if digits <= 0 || digits >= 17 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', digits, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// Div returns num/den, failing with a *SingularError when den is zero or
// the quotient is not finite.
func Div(num, den float64, quantity string) (float64, error) {
	if den == 0 {
		return 0, Singular(quantity, "zero denominator")
	}
	q := num / den
	if !Finite(q) {
		return 0, Singular(quantity, "non-finite value")
	}
	return q, nil
}

func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
