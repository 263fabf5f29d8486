package hcl

import (
	"fmt"
	"math/big"

	"github.com/vk/chipgrid/internal/rv"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ctyToNative converts a cty value into plain Go values: string, bool, int
// for whole numbers, float64 otherwise, []any and map[string]any. Null and
// unknown values become nil.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			goMap[key.AsString()] = native
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported cty type for conversion: %s", ty.FriendlyName())
	}
}

// argToCty converts a runner argument to the variable's declared type.
// Unless the type is string, "True" and "False" are read as booleans first,
// the way the Go experiments read them. Collection and object types take the
// argument as JSON.
func argToCty(raw string, ty cty.Type) (cty.Value, error) {
	if !ty.IsPrimitiveType() && ty != cty.DynamicPseudoType {
		return ctyjson.Unmarshal([]byte(raw), ty)
	}
	if ty == cty.String {
		return cty.StringVal(raw), nil
	}

	var val cty.Value
	switch coerced := rv.CoerceFlag(raw).(type) {
	case bool:
		val = cty.BoolVal(coerced)
	default:
		val = cty.StringVal(raw)
	}
	if ty == cty.DynamicPseudoType {
		return val, nil
	}
	return convert.Convert(val, ty)
}
