// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

import (
	"fmt"
	"sort"
)

// MergeOptions controls how MergeConfig treats keys the base lacks.
type MergeOptions struct {
	// SetMissingKeys adds keys (and whole subtrees) the base does not have.
	SetMissingKeys bool
	// IgnoreMissingKeys silently drops them. SetMissingKeys wins when both
	// are set.
	IgnoreMissingKeys bool
}

// ConfigMod is one modification applied on top of a backend's default
// config.
type ConfigMod struct {
	Values  map[string]any
	Options MergeOptions
}

// MergeConfig deep-merges mod into a copy of base and returns the copy.
// Nested maps merge key by key; any other value in mod (lists included)
// replaces the base value. Keys of base that mod does not mention are kept.
// Neither argument is modified.
func MergeConfig(base, mod map[string]any, opts MergeOptions) (map[string]any, error) {
	out := copyMap(base)
	if out == nil {
		out = make(map[string]any)
	}
	if err := mergeInto(out, mod, opts, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func mergeInto(dst, src map[string]any, opts MergeOptions, prefix string) error {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := src[k]
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		existing, ok := dst[k]
		if !ok {
			switch {
			case opts.SetMissingKeys:
				dst[k] = copyValue(v)
			case opts.IgnoreMissingKeys:
			default:
				return fmt.Errorf("%w: %s", ErrMissingConfigKey, path)
			}
			continue
		}

		dstMap, dstIsMap := existing.(map[string]any)
		srcMap, srcIsMap := v.(map[string]any)
		if dstIsMap && srcIsMap {
			if err := mergeInto(dstMap, srcMap, opts, path); err != nil {
				return err
			}
			continue
		}
		dst[k] = copyValue(v)
	}
	return nil
}

// SetConfigValue writes value at the dotted path, creating intermediate maps
// as needed. A non-map value in the way is replaced. An empty path is a no-op.
func SetConfigValue(cfg map[string]any, value any, path ...string) {
	if len(path) == 0 {
		return
	}
	cur := cfg
	for _, k := range path[:len(path)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[k] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

// ConfigValue reads the value at the dotted path.
func ConfigValue(cfg map[string]any, path ...string) (any, bool) {
	var cur any = cfg
	for _, k := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
