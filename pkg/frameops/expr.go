package frameops

import (
	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/types"
)

const nullifyMaskName = "__nullify_mask"

// Destruct projects a struct expression into nested fields, one level per
// name. An unknown field fails with types.ErrTypeMismatch on evaluation.
func Destruct(e expr.Expression, names ...string) expr.Expression {
	for _, name := range names {
		e = expr.Field(e, name)
	}
	return e
}

// HashExpr hashes the values of e into a UINT64 column named "Hash".
func HashExpr(e expr.Expression) expr.Expression {
	applied := expr.Apply(e, "hash", Lift(Hash), expr.ToType(types.ColumnTypeUInt64))
	return expr.Alias(applied, HashName)
}

// NormalizeExpr divides the values of e by their sum. The result is FLOAT64
// and keeps the name of e.
func NormalizeExpr(e expr.Expression) expr.Expression {
	return expr.Apply(e, "normalize", Lift(Normalize), expr.ToType(types.ColumnTypeFloat64))
}

// NullifyExpr keeps e where mask is true and yields null elsewhere.
func NullifyExpr(e, mask expr.Expression) expr.Expression {
	return expr.When(mask).Then(e).Otherwise(expr.Lit(nil))
}

// NullifyStruct gives the same result as NullifyExpr, computed as one column
// function over a struct of e and mask.
func NullifyStruct(e, mask expr.Expression) expr.Expression {
	packed := expr.AsStruct("nullify", e, expr.Alias(mask, nullifyMaskName))
	return expr.Apply(packed, "nullify", NullifyFields, expr.FirstFieldType())
}

func RoundExpr(e expr.Expression, decimals uint32) expr.Expression {
	return expr.Apply(e, "round", Lift(Round(decimals)), expr.SameType())
}

// ClipMinIf clamps negative values of e to 0 when clip is set.
func ClipMinIf(e expr.Expression, clip bool) expr.Expression {
	if !clip {
		return e
	}
	return expr.ClipMin(e, expr.Lit(0))
}

func NormalizeIf(e expr.Expression, normalize bool) expr.Expression {
	if !normalize {
		return e
	}
	return NormalizeExpr(e)
}

// PercentIf multiplies e by 100 when percent is set.
func PercentIf(e expr.Expression, percent bool) expr.Expression {
	if !percent {
		return e
	}
	return expr.Mul(e, expr.Lit(100))
}

// Expr wraps an expression with chainable combinators:
//
//	frameops.On(expr.Col("score")).ClipMinIf(true).Normalize().PercentIf(true)
type Expr struct {
	expr.Expression
}

func On(e expr.Expression) Expr { return Expr{Expression: e} }

func (e Expr) Destruct(names ...string) Expr     { return On(Destruct(e.Expression, names...)) }
func (e Expr) Hash() Expr                        { return On(HashExpr(e.Expression)) }
func (e Expr) Normalize() Expr                   { return On(NormalizeExpr(e.Expression)) }
func (e Expr) Nullify(mask expr.Expression) Expr { return On(NullifyExpr(e.Expression, mask)) }
func (e Expr) Round(decimals uint32) Expr        { return On(RoundExpr(e.Expression, decimals)) }
func (e Expr) ClipMinIf(clip bool) Expr          { return On(ClipMinIf(e.Expression, clip)) }
func (e Expr) NormalizeIf(normalize bool) Expr   { return On(NormalizeIf(e.Expression, normalize)) }
func (e Expr) PercentIf(percent bool) Expr       { return On(PercentIf(e.Expression, percent)) }
func (e Expr) Alias(name string) Expr            { return On(expr.Alias(e.Expression, name)) }
