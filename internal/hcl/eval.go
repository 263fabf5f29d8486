package hcl

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/chipgrid/internal/ctxlog"
	"github.com/vk/chipgrid/internal/rv"
	"github.com/zclconf/go-cty/cty"
)

// Evaluate binds args to the declared variables, evaluates the locals and
// builds the named experiment through the rv constructors.
func (d *Definitions) Evaluate(ctx context.Context, name string, args map[string]string) (*rv.Experiment, error) {
	logger := ctxlog.FromContext(ctx).With("experiment", name)
	ctx = ctxlog.WithLogger(ctx, logger)

	def, ok := d.Experiments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefinition, name)
	}

	vars, err := d.bindVariables(args)
	if err != nil {
		return nil, err
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(vars)},
		Functions: functions(),
	}

	locals, err := d.evalLocals(evalCtx)
	if err != nil {
		return nil, err
	}
	evalCtx.Variables["local"] = cty.ObjectVal(locals)
	logger.Debug("Evaluation context ready.", "variables", len(vars), "locals", len(locals))

	var spec experimentSpec
	if diags := gohcl.DecodeBody(def.body, evalCtx, &spec); diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate experiment %q: %w", name, diags)
	}

	task, err := buildTask(spec.Task)
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", name, err)
	}

	backend, err := buildBackend(ctx, task, spec.Backend)
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", name, err)
	}

	trainScenes, err := buildScenes(evalCtx, spec.Dataset, task, spec.Dataset.TrainIDs)
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", name, err)
	}
	valScenes, err := buildScenes(evalCtx, spec.Dataset, task, spec.Dataset.ValidationIDs)
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", name, err)
	}

	logger.Debug("HCL experiment assembled.",
		"train_scenes", len(trainScenes),
		"validation_scenes", len(valScenes),
		"epochs", backend.NumEpochs,
		"batch_size", backend.BatchSize,
	)
	return rv.NewExperiment(name, spec.RootURI, task, backend, rv.NewDataset(trainScenes, valScenes)), nil
}

// bindVariables resolves every declared variable from args or its default.
func (d *Definitions) bindVariables(args map[string]string) (map[string]cty.Value, error) {
	argNames := make([]string, 0, len(args))
	for argName := range args {
		argNames = append(argNames, argName)
	}
	sort.Strings(argNames)
	for _, argName := range argNames {
		if _, ok := d.Variables[argName]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUndeclaredVariable, argName)
		}
	}

	vals := make(map[string]cty.Value, len(d.Variables))
	for _, varName := range d.VariableNames() {
		v := d.Variables[varName]
		raw, given := args[varName]
		switch {
		case given:
			val, err := argToCty(raw, v.Type)
			if err != nil {
				return nil, fmt.Errorf("invalid value for variable %q: %w", varName, err)
			}
			vals[varName] = val
		case v.Default != nil:
			vals[varName] = *v.Default
		default:
			return nil, fmt.Errorf("%w: %q", ErrMissingVariable, varName)
		}
	}
	return vals, nil
}

// evalLocals evaluates locals in dependency order. A local may refer to
// variables and to other locals.
func (d *Definitions) evalLocals(evalCtx *hcl.EvalContext) (map[string]cty.Value, error) {
	values := make(map[string]cty.Value, len(d.locals))
	pending := make([]string, 0, len(d.locals))
	for name := range d.locals {
		pending = append(pending, name)
	}
	sort.Strings(pending)

	for len(pending) > 0 {
		var blocked []string
		for _, name := range pending {
			attr := d.locals[name]
			if !localDepsReady(attr.Expr, values) {
				blocked = append(blocked, name)
				continue
			}
			evalCtx.Variables["local"] = cty.ObjectVal(maps.Clone(values))
			val, diags := attr.Expr.Value(evalCtx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate local %q: %w", name, diags)
			}
			values[name] = val
		}
		if len(blocked) == len(pending) {
			return nil, fmt.Errorf("locals %v refer to each other or to an undeclared local", blocked)
		}
		pending = blocked
	}
	return values, nil
}

func localDepsReady(expr hcl.Expression, values map[string]cty.Value) bool {
	for _, traversal := range expr.Variables() {
		if traversal.RootName() != "local" || len(traversal) < 2 {
			continue
		}
		attr, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			continue
		}
		if _, done := values[attr.Name]; !done {
			return false
		}
	}
	return true
}

func buildTask(spec taskSpec) (*rv.Task, error) {
	taskType := spec.Type
	if taskType == "" {
		taskType = rv.ChipClassification
	}

	classes := make(map[string]rv.ClassSpec, len(spec.Classes))
	for _, c := range spec.Classes {
		if _, dup := classes[c.Name]; dup {
			return nil, fmt.Errorf("class %q is declared more than once", c.Name)
		}
		classes[c.Name] = rv.ClassSpec{ID: c.ID, Color: c.Color}
	}
	return rv.NewTask(taskType, spec.ChipSize, classes)
}

func buildBackend(ctx context.Context, task *rv.Task, spec backendSpec) (*rv.Backend, error) {
	backendType := spec.Type
	if backendType == "" {
		backendType = rv.KerasClassification
	}

	trainOpts := rv.DefaultTrainOptions()
	trainOpts.ReplaceModel = spec.ReplaceModel
	if spec.SyncInterval != nil {
		trainOpts.SyncInterval = *spec.SyncInterval
	}
	if spec.DoMonitoring != nil {
		trainOpts.DoMonitoring = *spec.DoMonitoring
	}

	var mods []rv.ConfigMod
	if !spec.Config.IsNull() {
		native, err := ctyToNative(spec.Config)
		if err != nil {
			return nil, fmt.Errorf("backend config: %w", err)
		}
		values, ok := native.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("backend config must be an object, got %s", spec.Config.Type().FriendlyName())
		}
		mods = append(mods, rv.ConfigMod{
			Values: values,
			Options: rv.MergeOptions{
				SetMissingKeys:    spec.SetMissingKeys,
				IgnoreMissingKeys: spec.IgnoreMissingKeys,
			},
		})
	}

	return rv.NewBackend(ctx, backendType, task, rv.BackendOptions{
		ModelDefaults: spec.ModelDefaults,
		Debug:         spec.Debug,
		BatchSize:     spec.BatchSize,
		NumEpochs:     spec.NumEpochs,
		TrainOptions:  trainOpts,
		ConfigMods:    mods,
	})
}

// buildScenes evaluates the scene template once per id, with the normalized
// id bound as scene.id.
func buildScenes(evalCtx *hcl.EvalContext, dataset datasetSpec, task *rv.Task, ids []string) ([]*rv.Scene, error) {
	scenes := make([]*rv.Scene, 0, len(ids))
	for _, raw := range ids {
		id := rv.NormalizeSceneID(raw)

		sceneCtx := evalCtx.NewChild()
		sceneCtx.Variables = map[string]cty.Value{
			"scene": cty.ObjectVal(map[string]cty.Value{"id": cty.StringVal(id)}),
		}

		var spec sceneSpec
		if diags := gohcl.DecodeBody(dataset.Scene.Body, sceneCtx, &spec); diags.HasErrors() {
			return nil, fmt.Errorf("scene %q: %w", id, diags)
		}

		labels := rv.NewChipClassificationLabelSource(task, spec.LabelURI, rv.LabelSourceOptions{
			IOAThresh:               spec.IOAThresh,
			UseIntersectionOverCell: spec.UseIntersectionOverCell,
			PickMinClassID:          spec.PickMinClassID,
			BackgroundClassID:       spec.BackgroundClassID,
			InferCells:              spec.InferCells,
		})
		scenes = append(scenes, rv.NewScene(id, rv.NewGeoTIFFSource(spec.RasterURI, dataset.ChannelOrder), labels))
	}
	return scenes, nil
}
