// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// ModelDefaults is a catalogue entry: where the pretrained weights live and
// the backend config tree the weights were trained with.
type ModelDefaults struct {
	PretrainedModelURI string         `yaml:"pretrained_model_uri"`
	Config             map[string]any `yaml:"config"`
}

// catalogue is keyed by backend type, then model defaults key.
type catalogue map[string]map[string]ModelDefaults

var (
	loadCatalogueOnce sync.Once
	loadedCatalogue   catalogue
	loadCatalogueErr  error
)

func loadCatalogue() (catalogue, error) {
	loadCatalogueOnce.Do(func() {
		loadedCatalogue, loadCatalogueErr = parseCatalogue(defaultsFS)
	})
	return loadedCatalogue, loadCatalogueErr
}

func parseCatalogue(fsys fs.FS) (catalogue, error) {
	files, err := fs.Glob(fsys, "defaults/*.yaml")
	if err != nil {
		return nil, err
	}

	cat := make(catalogue)
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read model defaults %s: %w", name, err)
		}
		var part catalogue
		if err := yaml.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("failed to parse model defaults %s: %w", name, err)
		}
		for backendType, entries := range part {
			if cat[backendType] == nil {
				cat[backendType] = make(map[string]ModelDefaults)
			}
			for key, entry := range entries {
				cat[backendType][key] = entry
			}
		}
	}
	return cat, nil
}

// LookupModelDefaults returns the catalogue entry for a backend type and
// model defaults key. The returned config is a private copy.
func LookupModelDefaults(backendType, key string) (ModelDefaults, error) {
	cat, err := loadCatalogue()
	if err != nil {
		return ModelDefaults{}, err
	}
	entry, ok := cat[backendType][key]
	if !ok {
		return ModelDefaults{}, fmt.Errorf("%w: %s/%s", ErrUnknownModelDefaults, backendType, key)
	}
	return ModelDefaults{
		PretrainedModelURI: entry.PretrainedModelURI,
		Config:             copyMap(entry.Config),
	}, nil
}
