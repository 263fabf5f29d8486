// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

import (
	"fmt"
	"sort"
)

// ClassItem is one entry of a task's class map.
type ClassItem struct {
	ID    int    `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// ClassSpec is the (id, color) pair a caller supplies per class name.
type ClassSpec struct {
	ID    int
	Color string
}

// Task describes the learning problem.
type Task struct {
	Type     string      `yaml:"type" json:"type"`
	ChipSize int         `yaml:"chip_size" json:"chip_size"`
	Classes  []ClassItem `yaml:"classes" json:"classes"`
}

// NewChipClassificationTask builds a chip classification task. Classes are
// stored ordered by id so the serialized form is stable.
func NewChipClassificationTask(chipSize int, classes map[string]ClassSpec) *Task {
	items := make([]ClassItem, 0, len(classes))
	for name, spec := range classes {
		items = append(items, ClassItem{ID: spec.ID, Name: name, Color: spec.Color})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ID != items[j].ID {
			return items[i].ID < items[j].ID
		}
		return items[i].Name < items[j].Name
	})

	return &Task{
		Type:     ChipClassification,
		ChipSize: chipSize,
		Classes:  items,
	}
}

// NewTask builds a task of the given type. Only chip classification is known.
func NewTask(taskType string, chipSize int, classes map[string]ClassSpec) (*Task, error) {
	if taskType != ChipClassification {
		return nil, fmt.Errorf("%w: task %q", ErrUnsupportedType, taskType)
	}
	return NewChipClassificationTask(chipSize, classes), nil
}

// ClassNames returns the class names in id order.
func (t *Task) ClassNames() []string {
	names := make([]string, len(t.Classes))
	for i, c := range t.Classes {
		names[i] = c.Name
	}
	return names
}

// ClassByID looks up a class by its numeric id.
func (t *Task) ClassByID(id int) (ClassItem, bool) {
	for _, c := range t.Classes {
		if c.ID == id {
			return c, true
		}
	}
	return ClassItem{}, false
}
