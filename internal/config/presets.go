package config

import (
	"sort"

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/solver"
)

func preset(method, formula string, x0, tol float64) *Config {
	cfg := DefaultConfig()
	cfg.Method = method
	cfg.Formula = formula
	cfg.X0 = x0
	cfg.Tolerance = tol
	return cfg
}

var presets = map[string]func() *Config{
	"sqrt3": func() *Config { return preset("newton", "x^2 - 3", 2, 1e-6) },
	"exp-linear": func() *Config {
		return preset("halley", "exp(x) - 3*x", 1, 1e-6)
	},
	"linear": func() *Config { return preset("euler", "9*x + 3", 0.5, 1e-6) },
	"cos-tight": func() *Config {
		return preset("newton", "cos(2*x)^2 - x^2", 0.75, 1e-16)
	},
	"invalid": func() *Config { return preset("newton", "x +* 2", 1, 1e-6) },
	"bracket": func() *Config {
		cfg := preset("yun-petkovic", "x^2 - 3", 2, 1e-8)
		cfg.Bracket = []float64{1, 2}
		return cfg
	},
	"kepler": func() *Config {
		// Kepler's equation E - e sin E = M with e = 0.9, M = 0.3.
		cfg := preset("danby-burkardt", "x - 0.9*sin(x) - 0.3", 1, 1e-12)
		cfg.IterLimit = 100
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	mk, ok := presets[name]
	if !ok {
		return nil
	}
	return mk()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expect is the outcome a preset is known to produce.
func Expect(name string) (solver.Status, bool) {
	s, ok := expected[name]
	return s, ok
}

var expected = map[string]solver.Status{
	"sqrt3":      solver.Converged,
	"exp-linear": solver.Converged,
	"linear":     solver.NumericalFailure,
	"invalid":    solver.InvalidInput,
	"bracket":    solver.Converged,
	"kepler":     solver.Converged,
}

// Requests converts configs to solve requests.
func Requests(cfgs ...*Config) []experiment.Request {
	out := make([]experiment.Request, len(cfgs))
	for i, c := range cfgs {
		out[i] = c.Request
	}
	return out
}
