package expr

import "math"

// The constructors below fold constants and drop identity terms so that
// repeated differentiation does not grow the tree without bound.

func isNum(n Node, v float64) bool {
	c, ok := n.(Num)
	return ok && c.V == v
}

func add(l, r Node) Node {
	switch {
	case isNum(l, 0):
		return r
	case isNum(r, 0):
		return l
	}
	if a, ok := l.(Num); ok {
		if b, ok := r.(Num); ok {
			return Num{a.V + b.V}
		}
	}
	if n, ok := r.(Neg); ok {
		return sub(l, n.X)
	}
	return Binary{Op: '+', L: l, R: r}
}

func sub(l, r Node) Node {
	switch {
	case isNum(r, 0):
		return l
	case isNum(l, 0):
		return neg(r)
	}
	if a, ok := l.(Num); ok {
		if b, ok := r.(Num); ok {
			return Num{a.V - b.V}
		}
	}
	if n, ok := r.(Neg); ok {
		return add(l, n.X)
	}
	return Binary{Op: '-', L: l, R: r}
}

func mul(l, r Node) Node {
	switch {
	case isNum(l, 0), isNum(r, 0):
		return Num{0}
	case isNum(l, 1):
		return r
	case isNum(r, 1):
		return l
	case isNum(l, -1):
		return neg(r)
	case isNum(r, -1):
		return neg(l)
	}
	a, lok := l.(Num)
	b, rok := r.(Num)
	if lok && rok {
		return Num{a.V * b.V}
	}
	if rok {
		// constants lead
		return Binary{Op: '*', L: b, R: l}
	}
	return Binary{Op: '*', L: l, R: r}
}

func div(l, r Node) Node {
	switch {
	case isNum(r, 1):
		return l
	case isNum(l, 0) && !isNum(r, 0):
		return Num{0}
	}
	if a, ok := l.(Num); ok {
		if b, ok := r.(Num); ok && b.V != 0 {
			return Num{a.V / b.V}
		}
	}
	return Binary{Op: '/', L: l, R: r}
}

func pow(base, exp Node) Node {
	switch {
	case isNum(exp, 0):
		return Num{1}
	case isNum(exp, 1):
		return base
	}
	if a, ok := base.(Num); ok {
		if b, ok := exp.(Num); ok {
			if v := math.Pow(a.V, b.V); !math.IsNaN(v) && !math.IsInf(v, 0) {
				return Num{v}
			}
		}
	}
	return Binary{Op: '^', L: base, R: exp}
}

func neg(n Node) Node {
	switch v := n.(type) {
	case Num:
		return Num{-v.V}
	case Neg:
		return v.X
	}
	return Neg{X: n}
}

func call(fn string, arg Node) Node {
	return Call{Fn: fn, Arg: arg}
}
