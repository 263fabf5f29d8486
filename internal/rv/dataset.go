// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

// Dataset holds the train and validation scenes in input order.
type Dataset struct {
	TrainScenes      []*Scene `yaml:"train_scenes" json:"train_scenes"`
	ValidationScenes []*Scene `yaml:"validation_scenes" json:"validation_scenes"`
}

// NewDataset aggregates scene lists. No disjointness check is made here;
// see Overlap.
func NewDataset(train, validation []*Scene) *Dataset {
	return &Dataset{
		TrainScenes:      train,
		ValidationScenes: validation,
	}
}

// Overlap returns the scene ids present in both the train and validation
// lists, in validation order.
func (d *Dataset) Overlap() []string {
	train := make(map[string]struct{}, len(d.TrainScenes))
	for _, s := range d.TrainScenes {
		train[s.ID] = struct{}{}
	}

	var dup []string
	for _, s := range d.ValidationScenes {
		if _, ok := train[s.ID]; ok {
			dup = append(dup, s.ID)
		}
	}
	return dup
}
