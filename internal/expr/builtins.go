package expr

import (
	"math"

	"gonum.org/v1/gonum/num/hyperdual"
)

type builtin struct {
	eval   func(a float64) float64
	domain func(a float64) string
	// d1 and d2 feed lift when dual is nil.
	d1, d2 func(a float64) float64
	dual   func(a hyperdual.Number) hyperdual.Number
	deriv  func(u Node) Node
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"sin": {
			eval:  math.Sin,
			dual:  hyperdual.Sin,
			deriv: func(u Node) Node { return call("cos", u) },
		},
		"cos": {
			eval:  math.Cos,
			dual:  hyperdual.Cos,
			deriv: func(u Node) Node { return neg(call("sin", u)) },
		},
		"tan": {
			eval: math.Tan,
			d1:   func(a float64) float64 { c := math.Cos(a); return 1 / (c * c) },
			d2: func(a float64) float64 {
				c := math.Cos(a)
				return 2 * math.Tan(a) / (c * c)
			},
			deriv: func(u Node) Node { return div(Num{1}, pow(call("cos", u), Num{2})) },
		},
		"asin": {
			eval:   math.Asin,
			domain: unitInterval,
			d1:     func(a float64) float64 { return 1 / math.Sqrt(1-a*a) },
			d2:     func(a float64) float64 { return a / math.Pow(1-a*a, 1.5) },
			deriv: func(u Node) Node {
				return div(Num{1}, call("sqrt", sub(Num{1}, pow(u, Num{2}))))
			},
		},
		"acos": {
			eval:   math.Acos,
			domain: unitInterval,
			d1:     func(a float64) float64 { return -1 / math.Sqrt(1-a*a) },
			d2:     func(a float64) float64 { return -a / math.Pow(1-a*a, 1.5) },
			deriv: func(u Node) Node {
				return neg(div(Num{1}, call("sqrt", sub(Num{1}, pow(u, Num{2})))))
			},
		},
		"atan": {
			eval:  math.Atan,
			d1:    func(a float64) float64 { return 1 / (1 + a*a) },
			d2:    func(a float64) float64 { return -2 * a / ((1 + a*a) * (1 + a*a)) },
			deriv: func(u Node) Node { return div(Num{1}, add(Num{1}, pow(u, Num{2}))) },
		},
		"sinh": {
			eval:  math.Sinh,
			d1:    math.Cosh,
			d2:    math.Sinh,
			deriv: func(u Node) Node { return call("cosh", u) },
		},
		"cosh": {
			eval:  math.Cosh,
			d1:    math.Sinh,
			d2:    math.Cosh,
			deriv: func(u Node) Node { return call("sinh", u) },
		},
		"tanh": {
			eval: math.Tanh,
			d1:   func(a float64) float64 { t := math.Tanh(a); return 1 - t*t },
			d2:   func(a float64) float64 { t := math.Tanh(a); return -2 * t * (1 - t*t) },
			deriv: func(u Node) Node {
				return sub(Num{1}, pow(call("tanh", u), Num{2}))
			},
		},
		"exp": {
			eval:  math.Exp,
			dual:  hyperdual.Exp,
			deriv: func(u Node) Node { return call("exp", u) },
		},
		"log": {
			eval:   math.Log,
			domain: positive,
			dual:   hyperdual.Log,
			deriv:  func(u Node) Node { return div(Num{1}, u) },
		},
		"log10": {
			eval:   math.Log10,
			domain: positive,
			d1:     func(a float64) float64 { return 1 / (a * math.Ln10) },
			d2:     func(a float64) float64 { return -1 / (a * a * math.Ln10) },
			deriv:  func(u Node) Node { return div(Num{1}, mul(u, Num{math.Ln10})) },
		},
		"log2": {
			eval:   math.Log2,
			domain: positive,
			d1:     func(a float64) float64 { return 1 / (a * math.Ln2) },
			d2:     func(a float64) float64 { return -1 / (a * a * math.Ln2) },
			deriv:  func(u Node) Node { return div(Num{1}, mul(u, Num{math.Ln2})) },
		},
		"sqrt": {
			eval: math.Sqrt,
			domain: func(a float64) string {
				if a < 0 {
					return "square root of negative number"
				}
				return ""
			},
			dual:  func(a hyperdual.Number) hyperdual.Number { return hyperdual.PowReal(a, 0.5) },
			deriv: func(u Node) Node { return div(Num{1}, mul(Num{2}, call("sqrt", u))) },
		},
		"cbrt": {
			eval: math.Cbrt,
			d1:   func(a float64) float64 { c := math.Cbrt(a); return 1 / (3 * c * c) },
			d2:   func(a float64) float64 { c := math.Cbrt(a); return -2 / (9 * a * c * c) },
			deriv: func(u Node) Node {
				return div(Num{1}, mul(Num{3}, pow(call("cbrt", u), Num{2})))
			},
		},
		"abs": {
			eval:  math.Abs,
			d1:    sign,
			d2:    func(float64) float64 { return 0 },
			deriv: func(u Node) Node { return call("sign", u) },
		},
		"sign": {
			eval:  sign,
			d1:    func(float64) float64 { return 0 },
			d2:    func(float64) float64 { return 0 },
			deriv: func(Node) Node { return Num{0} },
		},
	}
	builtins["ln"] = builtins["log"]
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func positive(a float64) string {
	if a <= 0 {
		return "logarithm of non-positive number"
	}
	return ""
}

func unitInterval(a float64) string {
	if a < -1 || a > 1 {
		return "argument outside [-1, 1]"
	}
	return ""
}

func sign(a float64) float64 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return 0
}
