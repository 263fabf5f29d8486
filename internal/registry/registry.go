package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/chipgrid/internal/rv"
)

var (
	// ErrUnknownExperiment is returned when a selector matches no method.
	ErrUnknownExperiment = errors.New("unknown experiment")
	// ErrDuplicateMethod is returned when two modules register the same name.
	ErrDuplicateMethod = errors.New("experiment method already registered")
	// ErrMissingArgument is returned when a required parameter has no value.
	ErrMissingArgument = errors.New("missing required argument")
	// ErrUnknownArgument is returned when an argument matches no parameter.
	ErrUnknownArgument = errors.New("unknown argument")
)

// Args are the runner's named arguments. Values are always strings; methods
// decide how to interpret them.
type Args map[string]string

// Param declares one argument a method accepts.
type Param struct {
	Name        string
	Description string
	Required    bool
}

// MethodFunc builds the experiments of one method.
type MethodFunc func(ctx context.Context, args Args) ([]*rv.Experiment, error)

// Method is a named, callable experiment definition.
type Method struct {
	Name        string
	Description string
	Params      []Param
	Fn          MethodFunc
}

// Module is the interface that every experiment set implements to be registered.
type Module interface {
	Register(r *Registry) error
}

// Registry holds the registered methods of one application instance.
type Registry struct {
	methods map[string]*Method
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{methods: make(map[string]*Method)}
}

// RegisterMethod adds m under m.Name.
func (r *Registry) RegisterMethod(m *Method) error {
	if m == nil || m.Name == "" {
		return errors.New("experiment method must have a name")
	}
	if _, ok := r.methods[m.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMethod, m.Name)
	}
	r.methods[m.Name] = m
	return nil
}

// Method returns the method registered under name.
func (r *Registry) Method(name string) (*Method, bool) {
	m, ok := r.methods[name]
	return m, ok
}

// Names returns every registered method name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves a selector to methods. An empty selector selects every
// method; an exact name selects that method; otherwise the selector is
// treated as a set name and selects every "<selector>.*" method.
func (r *Registry) Select(selector string) ([]*Method, error) {
	if m, ok := r.methods[selector]; ok && selector != "" {
		return []*Method{m}, nil
	}

	var out []*Method
	for _, name := range r.Names() {
		if selector == "" || strings.HasPrefix(name, selector+".") {
			out = append(out, r.methods[name])
		}
	}
	if len(out) == 0 {
		if selector == "" {
			return nil, fmt.Errorf("%w: registry is empty", ErrUnknownExperiment)
		}
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownExperiment, selector, strings.Join(r.Names(), ", "))
	}
	return out, nil
}

// Call checks args against the method's parameters and runs it.
func (m *Method) Call(ctx context.Context, args Args) ([]*rv.Experiment, error) {
	if err := m.CheckArgs(args); err != nil {
		return nil, err
	}
	exps, err := m.Fn(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", m.Name, err)
	}
	return exps, nil
}
