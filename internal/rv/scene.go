// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

import "strings"

// RasterSource points at the imagery of one scene.
type RasterSource struct {
	Type         string   `yaml:"type" json:"type"`
	URIs         []string `yaml:"uris" json:"uris"`
	ChannelOrder []int    `yaml:"channel_order,omitempty" json:"channel_order,omitempty"`
}

// LabelSource describes how the runner interprets the label geometry of a
// scene when cutting it into cells.
type LabelSource struct {
	Type                    string  `yaml:"type" json:"type"`
	URI                     string  `yaml:"uri" json:"uri"`
	IOAThresh               float64 `yaml:"ioa_thresh" json:"ioa_thresh"`
	UseIntersectionOverCell bool    `yaml:"use_intersection_over_cell" json:"use_intersection_over_cell"`
	PickMinClassID          bool    `yaml:"pick_min_class_id" json:"pick_min_class_id"`
	BackgroundClassID       int     `yaml:"background_class_id" json:"background_class_id"`
	InferCells              bool    `yaml:"infer_cells" json:"infer_cells"`
	CellSize                int     `yaml:"cell_size" json:"cell_size"`
}

// LabelSourceOptions are the knobs of a chip classification GeoJSON label
// source.
type LabelSourceOptions struct {
	IOAThresh               float64
	UseIntersectionOverCell bool
	PickMinClassID          bool
	BackgroundClassID       int
	InferCells              bool
}

// Scene is one (raster, labels) pair.
type Scene struct {
	ID           string       `yaml:"id" json:"id"`
	RasterSource RasterSource `yaml:"raster_source" json:"raster_source"`
	LabelSource  LabelSource  `yaml:"label_source" json:"label_source"`
}

// NormalizeSceneID replaces hyphens with underscores. No other character is
// touched.
func NormalizeSceneID(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}

// NewGeoTIFFSource builds a raster source over a single GeoTIFF. A nil
// channel order keeps the raster's own band order.
func NewGeoTIFFSource(uri string, channelOrder []int) RasterSource {
	var order []int
	if channelOrder != nil {
		order = append([]int(nil), channelOrder...)
	}
	return RasterSource{
		Type:         GeoTIFFSource,
		URIs:         []string{uri},
		ChannelOrder: order,
	}
}

// NewChipClassificationLabelSource builds a GeoJSON label source. The cell
// size follows the task's chip size.
func NewChipClassificationLabelSource(task *Task, uri string, opts LabelSourceOptions) LabelSource {
	return LabelSource{
		Type:                    ChipClassificationGeoJSON,
		URI:                     uri,
		IOAThresh:               opts.IOAThresh,
		UseIntersectionOverCell: opts.UseIntersectionOverCell,
		PickMinClassID:          opts.PickMinClassID,
		BackgroundClassID:       opts.BackgroundClassID,
		InferCells:              opts.InferCells,
		CellSize:                task.ChipSize,
	}
}

// NewScene assembles a scene. The id is stored as given; callers normalize
// it before deriving paths from it.
func NewScene(id string, raster RasterSource, labels LabelSource) *Scene {
	return &Scene{
		ID:           id,
		RasterSource: raster,
		LabelSource:  labels,
	}
}
