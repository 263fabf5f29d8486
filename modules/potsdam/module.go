package potsdam

import (
	"context"

	"github.com/vk/chipgrid/internal/registry"
	"github.com/vk/chipgrid/internal/rv"
)

// SetName is the registry prefix of this experiment set.
const SetName = "potsdam"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterMethod(&registry.Method{
		Name:        SetName + ".main",
		Description: "ISPRS Potsdam car chip classification, ResNet50 Keras backend.",
		Params: []registry.Param{
			{Name: "root_uri", Description: "root directory for experiment output", Required: true},
			{Name: "data_uri", Description: "root directory of the Potsdam dataset", Required: true},
			{Name: "test_run", Description: "if True, run a very small experiment and generate debug output"},
		},
		Fn: runMain,
	})
}

func runMain(ctx context.Context, args registry.Args) ([]*rv.Experiment, error) {
	var testRun any = false
	if v, ok := args["test_run"]; ok {
		testRun = v
	}
	exp, err := ExpMain(ctx, args["root_uri"], args["data_uri"], testRun)
	if err != nil {
		return nil, err
	}
	return []*rv.Experiment{exp}, nil
}
