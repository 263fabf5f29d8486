package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/chipgrid/internal/ctxlog"
)

// isExprDefined reports whether an optional attribute was written in the
// source. gohcl fills absent hcl.Expression fields with a synthetic null
// expression whose range has zero width, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}

	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}
