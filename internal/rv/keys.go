// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

// Task types.
const (
	ChipClassification = "CHIP_CLASSIFICATION"
)

// Backend types.
const (
	KerasClassification = "KERAS_CLASSIFICATION"
)

// Model defaults keys understood by the catalogue.
const (
	Resnet50Imagenet = "RESNET50_IMAGENET"
)

// Raster and label source types.
const (
	GeoTIFFSource             = "GEOTIFF_SOURCE"
	ChipClassificationGeoJSON = "CHIP_CLASSIFICATION_GEOJSON"
)
