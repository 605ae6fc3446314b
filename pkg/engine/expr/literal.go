package expr

import (
	"fmt"

	"tomyframe/pkg/engine/types"
)

const literalName = "literal"

// LiteralExpr is a scalar broadcast to the height of the frame it is
// evaluated against. A nil Value is an untyped null.
type LiteralExpr struct {
	Value any
	Type  types.ColumnType
}

// Lit builds a literal from a Go scalar. Integers become INT64 (unsigned ones
// UINT64), floats FLOAT64.
func Lit(v any) *LiteralExpr {
	switch x := v.(type) {
	case nil:
		return &LiteralExpr{Type: types.ColumnTypeNull}
	case int:
		return &LiteralExpr{Value: int64(x), Type: types.ColumnTypeInt64}
	case int32:
		return &LiteralExpr{Value: int64(x), Type: types.ColumnTypeInt64}
	case int64:
		return &LiteralExpr{Value: x, Type: types.ColumnTypeInt64}
	case uint:
		return &LiteralExpr{Value: uint64(x), Type: types.ColumnTypeUInt64}
	case uint32:
		return &LiteralExpr{Value: uint64(x), Type: types.ColumnTypeUInt64}
	case uint64:
		return &LiteralExpr{Value: x, Type: types.ColumnTypeUInt64}
	case float32:
		return &LiteralExpr{Value: float64(x), Type: types.ColumnTypeFloat64}
	case float64:
		return &LiteralExpr{Value: x, Type: types.ColumnTypeFloat64}
	case bool:
		return &LiteralExpr{Value: x, Type: types.ColumnTypeBoolean}
	case string:
		return &LiteralExpr{Value: x, Type: types.ColumnTypeVarchar}
	}
	panic(fmt.Sprintf("unsupported literal %v (%T)", v, v))
}

// NullLit is a null literal of a given type.
func NullLit(typ types.ColumnType) *LiteralExpr {
	return &LiteralExpr{Type: typ}
}

func (e *LiteralExpr) String() string {
	if e.Value == nil {
		return "lit(null)"
	}
	return fmt.Sprintf("lit(%v)", e.Value)
}

func (e *LiteralExpr) GetUsedColumns() []string {
	return nil
}

func (e *LiteralExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	if e.Value == nil {
		return types.NewNullSeries(literalName, e.Type, frame.Height()), nil
	}
	single, err := types.NewSeries(literalName, e.Type, []any{e.Value})
	if err != nil {
		return nil, err
	}
	return types.BroadcastSeries(single, frame.Height())
}
