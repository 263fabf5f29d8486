package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/chipgrid/internal/ctxlog"
)

// CheckArgs reports the first unknown argument or missing required
// parameter, in name order.
func (m *Method) CheckArgs(args Args) error {
	declared := make(map[string]Param, len(m.Params))
	for _, p := range m.Params {
		declared[p.Name] = p
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("%w %q for %s", ErrUnknownArgument, name, m.Name)
		}
	}

	for _, p := range m.Params {
		if _, ok := args[p.Name]; p.Required && !ok {
			return fmt.Errorf("%w %q for %s", ErrMissingArgument, p.Name, m.Name)
		}
	}
	return nil
}

// ValidateRegistry checks every registered method is callable and declares
// each parameter once.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, name := range r.Names() {
		m := r.methods[name]
		if m.Fn == nil {
			errs = append(errs, fmt.Sprintf("method '%s': no function registered", name))
		}
		seen := make(map[string]struct{}, len(m.Params))
		for _, p := range m.Params {
			if p.Name == "" {
				errs = append(errs, fmt.Sprintf("method '%s': parameter without a name", name))
				continue
			}
			if _, dup := seen[p.Name]; dup {
				errs = append(errs, fmt.Sprintf("method '%s': parameter '%s' declared twice", name, p.Name))
			}
			seen[p.Name] = struct{}{}
		}
		if len(m.Params) == 0 {
			logger.Warn("Experiment method declares no parameters; every runner argument will be rejected.", "method", name)
		}
	}

	if len(errs) > 0 {
		return errors.New("registry validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
