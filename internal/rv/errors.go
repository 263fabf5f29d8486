// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

import "errors"

var (
	// ErrMissingConfigKey is returned by MergeConfig when a modification names
	// a key the base config does not have and neither SetMissingKeys nor
	// IgnoreMissingKeys is enabled.
	ErrMissingConfigKey = errors.New("config key not present in base config")

	// ErrUnknownModelDefaults is returned when the catalogue has no entry for
	// a backend type / model defaults pair.
	ErrUnknownModelDefaults = errors.New("unknown model defaults")

	// ErrUnsupportedType is returned when a task or backend type is not one
	// this package can build.
	ErrUnsupportedType = errors.New("unsupported descriptor type")
)
