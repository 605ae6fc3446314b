package expr

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/types"
)

type UnaryOperator int

const (
	OpNot UnaryOperator = iota
	OpMinus
)

func (o UnaryOperator) String() string {
	var toString = map[UnaryOperator]string{
		OpNot:   "NOT",
		OpMinus: "MINUS",
	}
	stringVal, ok := toString[o]
	if !ok {
		return "UNKNOWN"
	}
	return stringVal
}

func UnaryOpFromString(op string) (UnaryOperator, error) {
	var fromString = map[string]UnaryOperator{
		"NOT":   OpNot,
		"MINUS": OpMinus,
	}
	operator, ok := fromString[op]
	if !ok {
		return 0, errors.Newf("unknown unary operator: %s", op)
	}
	return operator, nil
}

type UnaryOpExpr struct {
	Operand  Expression
	Operator UnaryOperator
}

func NewUnaryOp(operand Expression, op UnaryOperator) *UnaryOpExpr {
	return &UnaryOpExpr{
		Operand:  operand,
		Operator: op,
	}
}

func Not(e Expression) *UnaryOpExpr { return NewUnaryOp(e, OpNot) }
func Neg(e Expression) *UnaryOpExpr { return NewUnaryOp(e, OpMinus) }

func (e *UnaryOpExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Operator, e.Operand)
}

func (e *UnaryOpExpr) GetUsedColumns() []string {
	return e.Operand.GetUsedColumns()
}

func (e *UnaryOpExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	col, err := evaluateSeries(e.Operand, frame)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case OpNot:
		values, valid, err := col.BoolValues()
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating %s", e)
		}
		return boolSeries(len(values), func(i int) (bool, bool) {
			return !values[i], valid[i]
		}).WithName(col.GetName()), nil

	case OpMinus:
		switch col.GetType() {
		case types.ColumnTypeNull:
			return col, nil
		case types.ColumnTypeFloat64:
			return negate[float64](col)
		case types.ColumnTypeInt64, types.ColumnTypeUInt64:
			signed, err := col.Cast(types.ColumnTypeInt64)
			if err != nil {
				return nil, err
			}
			return negate[int64](signed)
		default:
			return nil, errors.Wrapf(types.ErrTypeMismatch, "MINUS requires a numeric operand, got %s", col.GetType())
		}
	}

	return nil, errors.Newf("execution for %s not implemented", e.Operator)
}

func negate[T int64 | float64](s *types.Series) (*types.Series, error) {
	c, err := types.PrimitiveChunk[T](s)
	if err != nil {
		return nil, err
	}
	res := types.MapPrimitive(c, func(v T) (T, bool) { return -v, true })
	return types.NewSeriesFromChunk(s.GetName(), res), nil
}
