// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

// Experiment is the root descriptor handed to the external runner.
type Experiment struct {
	ID      string   `yaml:"id" json:"id"`
	RootURI string   `yaml:"root_uri" json:"root_uri"`
	Task    *Task    `yaml:"task" json:"task"`
	Backend *Backend `yaml:"backend" json:"backend"`
	Dataset *Dataset `yaml:"dataset" json:"dataset"`
}

// NewExperiment combines the parts of an experiment.
func NewExperiment(id, rootURI string, task *Task, backend *Backend, dataset *Dataset) *Experiment {
	return &Experiment{
		ID:      id,
		RootURI: rootURI,
		Task:    task,
		Backend: backend,
		Dataset: dataset,
	}
}
