// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rv

import "reflect"

// CoerceFlag turns the literal strings "True" and "False" into booleans.
// Runner arguments arrive as strings; every other value, including "true"
// and "false", is returned unchanged and judged later by Truthy.
func CoerceFlag(v any) any {
	if s, ok := v.(string); ok {
		switch s {
		case "True":
			return true
		case "False":
			return false
		}
	}
	return v
}

// Truthy reports whether v counts as set in a boolean context: nil, false,
// zero numbers, empty strings and empty collections are false, everything
// else is true. A non-empty string such as "false" is true.
func Truthy(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
