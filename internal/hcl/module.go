package hcl

import (
	"context"
	"fmt"

	"github.com/vk/chipgrid/internal/registry"
	"github.com/vk/chipgrid/internal/rv"
)

// SetName is the registry prefix of experiments declared in definition files.
const SetName = "hcl"

// Module registers every loaded experiment block as "hcl.<name>".
type Module struct {
	defs *Definitions
}

// NewModule wraps loaded definitions for registration.
func NewModule(defs *Definitions) *Module {
	return &Module{defs: defs}
}

// Register implements registry.Module. Each method accepts every declared
// variable; variables without a default are required.
func (m *Module) Register(r *registry.Registry) error {
	params := make([]registry.Param, 0, len(m.defs.Variables))
	for _, name := range m.defs.VariableNames() {
		v := m.defs.Variables[name]
		params = append(params, registry.Param{
			Name:        name,
			Description: v.Description,
			Required:    v.Default == nil,
		})
	}

	for _, name := range m.defs.ExperimentNames() {
		def := m.defs.Experiments[name]
		err := r.RegisterMethod(&registry.Method{
			Name:        SetName + "." + name,
			Description: fmt.Sprintf("Declared in %s.", def.File),
			Params:      params,
			Fn: func(ctx context.Context, args registry.Args) ([]*rv.Experiment, error) {
				exp, err := m.defs.Evaluate(ctx, name, args)
				if err != nil {
					return nil, err
				}
				return []*rv.Experiment{exp}, nil
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
