package hcl

import (
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions is the function table available to definition expressions.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"concat":  stdlib.ConcatFunc,
		"format":  stdlib.FormatFunc,
		"length":  stdlib.LengthFunc,
		"lower":   stdlib.LowerFunc,
		"replace": stdlib.ReplaceFunc,
		"slice":   stdlib.SliceFunc,
		"upper":   stdlib.UpperFunc,
	}
}
