// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

import (
	"context"
	"fmt"

	"github.com/vk/chipgrid/internal/ctxlog"
)

// Default train options of a Keras classification backend.
const (
	DefaultSyncInterval = 600
	DefaultDoMonitoring = true
)

// TrainOptions steer the runner's training command rather than the model.
type TrainOptions struct {
	SyncInterval int  `yaml:"sync_interval" json:"sync_interval"`
	DoMonitoring bool `yaml:"do_monitoring" json:"do_monitoring"`
	ReplaceModel bool `yaml:"replace_model" json:"replace_model"`
}

// DefaultTrainOptions returns the train options used when a caller sets none.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		SyncInterval: DefaultSyncInterval,
		DoMonitoring: DefaultDoMonitoring,
	}
}

// Backend describes the model family and how to train it. Config is the
// free-form tree the runner passes to the deep-learning backend.
type Backend struct {
	Type               string         `yaml:"type" json:"type"`
	ModelDefaults      string         `yaml:"model_defaults" json:"model_defaults"`
	PretrainedModelURI string         `yaml:"pretrained_model_uri,omitempty" json:"pretrained_model_uri,omitempty"`
	Debug              bool           `yaml:"debug" json:"debug"`
	BatchSize          int            `yaml:"batch_size" json:"batch_size"`
	NumEpochs          int            `yaml:"num_epochs" json:"num_epochs"`
	TrainOptions       TrainOptions   `yaml:"train_options" json:"train_options"`
	Config             map[string]any `yaml:"config" json:"config"`
}

// BackendOptions are the inputs of NewKerasClassificationBackend.
type BackendOptions struct {
	ModelDefaults string
	Debug         bool
	BatchSize     int
	NumEpochs     int
	TrainOptions  TrainOptions
	// ConfigMods are merged over the model defaults in order, after batch
	// size, epoch count and class names have been written.
	ConfigMods []ConfigMod
}

// NewKerasClassificationBackend starts from the catalogue's model defaults,
// writes the training scalars and the task's class names into the trainer
// options, then applies each config modification.
func NewKerasClassificationBackend(ctx context.Context, task *Task, opts BackendOptions) (*Backend, error) {
	logger := ctxlog.FromContext(ctx)

	defaults, err := LookupModelDefaults(KerasClassification, opts.ModelDefaults)
	if err != nil {
		return nil, err
	}
	cfg := defaults.Config
	if cfg == nil {
		cfg = make(map[string]any)
	}

	SetConfigValue(cfg, opts.BatchSize, "trainer", "options", "batchSize")
	SetConfigValue(cfg, opts.NumEpochs, "trainer", "options", "nbEpochs")
	classNames := make([]any, 0, len(task.Classes))
	for _, name := range task.ClassNames() {
		classNames = append(classNames, name)
	}
	SetConfigValue(cfg, classNames, "trainer", "options", "classNames")

	for i, mod := range opts.ConfigMods {
		cfg, err = MergeConfig(cfg, mod.Values, mod.Options)
		if err != nil {
			return nil, fmt.Errorf("config modification %d: %w", i, err)
		}
	}
	logger.Debug("Backend config assembled.",
		"type", KerasClassification,
		"model_defaults", opts.ModelDefaults,
		"mods", len(opts.ConfigMods),
	)

	return &Backend{
		Type:               KerasClassification,
		ModelDefaults:      opts.ModelDefaults,
		PretrainedModelURI: defaults.PretrainedModelURI,
		Debug:              opts.Debug,
		BatchSize:          opts.BatchSize,
		NumEpochs:          opts.NumEpochs,
		TrainOptions:       opts.TrainOptions,
		Config:             cfg,
	}, nil
}

// NewBackend dispatches on the backend type.
func NewBackend(ctx context.Context, backendType string, task *Task, opts BackendOptions) (*Backend, error) {
	if backendType != KerasClassification {
		return nil, fmt.Errorf("%w: backend %q", ErrUnsupportedType, backendType)
	}
	return NewKerasClassificationBackend(ctx, task, opts)
}

// LRSchedule returns the learning-rate schedule from the trainer options,
// if one is set.
func (b *Backend) LRSchedule() ([]any, bool) {
	v, ok := ConfigValue(b.Config, "trainer", "options", "lrSchedule")
	if !ok {
		return nil, false
	}
	schedule, ok := v.([]any)
	return schedule, ok
}
