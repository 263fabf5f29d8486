// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package rv defines the descriptor objects an experiment is made of (task,
// backend, scenes, dataset, experiment) and the constructors that assemble
// them. Descriptors are plain values: they are built once, serialized, and
// handed to the external runner, which owns training, raster I/O and
// persistence. Nothing in this package touches the file system beyond the
// embedded model-defaults catalogue.
package rv
