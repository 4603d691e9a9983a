package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/rootlab/internal/methods"
	"github.com/san-kum/rootlab/internal/solver"
)

var (
	ErrUnknownMethod = errors.New("experiment: unknown method")
	ErrUnknownParam  = errors.New("experiment: unknown method parameter")
)

// MethodFactory builds a method from its named parameters.
type MethodFactory func(params map[string]float64) (solver.Method, error)

type methodEntry struct {
	factory MethodFactory
	params  []string
}

type Registry struct {
	methods map[string]methodEntry
}

func NewRegistry() *Registry {
	r := &Registry{methods: make(map[string]methodEntry)}

	plain := map[string]func() solver.Method{
		"newton":           func() solver.Method { return methods.NewNewton() },
		"halley":           func() solver.Method { return methods.NewHalley() },
		"chebyshev":        func() solver.Method { return methods.NewChebyshev() },
		"richmond":         func() solver.Method { return methods.NewRichmond() },
		"euler":            func() solver.Method { return methods.NewEuler() },
		"frontini-sormani": func() solver.Method { return methods.NewFrontiniSormani() },
		"danby-burkardt":   func() solver.Method { return methods.NewDanbyBurkardt() },
		"ostrowski":        func() solver.Method { return methods.NewOstrowski() },
		"newton-secant":    func() solver.Method { return methods.NewNewtonSecant() },
		"steffensen":       func() solver.Method { return methods.NewSteffensen() },
		"jain":             func() solver.Method { return methods.NewJain() },
		"liu":              func() solver.Method { return methods.NewLiu() },
		"yun-petkovic":     func() solver.Method { return methods.NewYunPetkovic() },
	}
	for name, mk := range plain {
		r.Register(name, nil, func(map[string]float64) (solver.Method, error) { return mk(), nil })
	}

	r.Register("ren", []string{"a"}, func(params map[string]float64) (solver.Method, error) {
		return methods.NewRen(params["a"]), nil
	})

	return r
}

// Register adds or replaces a method. params lists the parameter names the
// factory accepts; any other name is rejected by GetMethod.
func (r *Registry) Register(name string, params []string, f MethodFactory) {
	r.methods[name] = methodEntry{factory: f, params: params}
}

func (r *Registry) GetMethod(name string, params map[string]float64) (solver.Method, error) {
	entry, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	for p := range params {
		if !contains(entry.params, p) {
			return nil, fmt.Errorf("%w: %s does not take %q", ErrUnknownParam, name, p)
		}
	}
	return entry.factory(params)
}

func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MethodInfo describes a registered method for listings.
type MethodInfo struct {
	Name         string
	Requirements solver.Requirements
	Params       []string
}

func (r *Registry) Describe(name string) (MethodInfo, error) {
	entry, ok := r.methods[name]
	if !ok {
		return MethodInfo{}, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	m, err := entry.factory(nil)
	if err != nil {
		return MethodInfo{}, err
	}
	return MethodInfo{Name: name, Requirements: m.Requirements(), Params: entry.params}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
