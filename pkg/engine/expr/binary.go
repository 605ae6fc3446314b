package expr

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/kelindar/bitmap"

	"tomyframe/pkg/engine/types"
)

type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpAnd
	OpOr
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessEqual
	OpGreaterThan
	OpGreaterEqual
)

func (o BinaryOperator) String() string {
	var toString = map[BinaryOperator]string{
		OpAdd:          "ADD",
		OpSubtract:     "SUBTRACT",
		OpMultiply:     "MULTIPLY",
		OpDivide:       "DIVIDE",
		OpAnd:          "AND",
		OpOr:           "OR",
		OpEqual:        "=",
		OpNotEqual:     "!=",
		OpLessThan:     "<",
		OpLessEqual:    "<=",
		OpGreaterThan:  ">",
		OpGreaterEqual: ">=",
	}
	stringVal, ok := toString[o]
	if !ok {
		return "UNKNOWN"
	}
	return stringVal
}

func BinaryOpFromString(op string) (BinaryOperator, error) {
	var fromString = map[string]BinaryOperator{
		"ADD":           OpAdd,
		"SUBTRACT":      OpSubtract,
		"MULTIPLY":      OpMultiply,
		"DIVIDE":        OpDivide,
		"AND":           OpAnd,
		"OR":            OpOr,
		"EQUAL":         OpEqual,
		"NOT_EQUAL":     OpNotEqual,
		"LESS_THAN":     OpLessThan,
		"LESS_EQUAL":    OpLessEqual,
		"GREATER_THAN":  OpGreaterThan,
		"GREATER_EQUAL": OpGreaterEqual,
	}
	operator, ok := fromString[op]
	if !ok {
		return 0, errors.Newf("unknown binary operator: %s", op)
	}
	return operator, nil
}

func (o BinaryOperator) isArithmetic() bool {
	return o == OpAdd || o == OpSubtract || o == OpMultiply || o == OpDivide
}

func (o BinaryOperator) isLogical() bool {
	return o == OpAnd || o == OpOr
}

// BinaryOpExpr combines two columns row by row. Nulls propagate, except for
// AND/OR which follow three-valued logic. The result keeps the left name.
type BinaryOpExpr struct {
	Left     Expression
	Right    Expression
	Operator BinaryOperator
}

func NewBinaryOp(left, right Expression, op BinaryOperator) *BinaryOpExpr {
	return &BinaryOpExpr{
		Left:     left,
		Right:    right,
		Operator: op,
	}
}

func Add(l, r Expression) *BinaryOpExpr { return NewBinaryOp(l, r, OpAdd) }
func Sub(l, r Expression) *BinaryOpExpr { return NewBinaryOp(l, r, OpSubtract) }
func Mul(l, r Expression) *BinaryOpExpr { return NewBinaryOp(l, r, OpMultiply) }
func Div(l, r Expression) *BinaryOpExpr { return NewBinaryOp(l, r, OpDivide) }
func And(l, r Expression) *BinaryOpExpr { return NewBinaryOp(l, r, OpAnd) }
func Or(l, r Expression) *BinaryOpExpr  { return NewBinaryOp(l, r, OpOr) }
func Eq(l, r Expression) *BinaryOpExpr  { return NewBinaryOp(l, r, OpEqual) }
func Neq(l, r Expression) *BinaryOpExpr { return NewBinaryOp(l, r, OpNotEqual) }
func Lt(l, r Expression) *BinaryOpExpr  { return NewBinaryOp(l, r, OpLessThan) }
func Le(l, r Expression) *BinaryOpExpr  { return NewBinaryOp(l, r, OpLessEqual) }
func Gt(l, r Expression) *BinaryOpExpr  { return NewBinaryOp(l, r, OpGreaterThan) }
func Ge(l, r Expression) *BinaryOpExpr  { return NewBinaryOp(l, r, OpGreaterEqual) }

func (e *BinaryOpExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
}

func (e *BinaryOpExpr) GetUsedColumns() []string {
	leftCols := e.Left.GetUsedColumns()
	rightCols := e.Right.GetUsedColumns()
	return append(leftCols[:len(leftCols):len(leftCols)], rightCols...)
}

func (e *BinaryOpExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	leftCol, err := evaluateSeries(e.Left, frame)
	if err != nil {
		return nil, err
	}
	rightCol, err := evaluateSeries(e.Right, frame)
	if err != nil {
		return nil, err
	}

	var res *types.Series
	switch {
	case e.Operator.isArithmetic():
		res, err = e.evaluateArithmetic(leftCol, rightCol)
	case e.Operator.isLogical():
		res, err = e.evaluateLogical(leftCol, rightCol)
	default:
		res, err = e.evaluateComparison(leftCol, rightCol)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating %s", e)
	}
	return res.WithName(leftCol.GetName()), nil
}

func (e *BinaryOpExpr) evaluateArithmetic(l, r *types.Series) (*types.Series, error) {
	typ, err := types.NumericSupertype(l.GetType(), r.GetType())
	if err != nil {
		return nil, err
	}
	if typ == types.ColumnTypeNull {
		return types.NewNullSeries("result", typ, l.Len()), nil
	}
	if l, err = l.Cast(typ); err != nil {
		return nil, err
	}
	if r, err = r.Cast(typ); err != nil {
		return nil, err
	}

	switch typ {
	case types.ColumnTypeInt64:
		return arithmetic[int64](e.Operator, l, r)
	case types.ColumnTypeUInt64:
		return arithmetic[uint64](e.Operator, l, r)
	default:
		return arithmetic[float64](e.Operator, l, r)
	}
}

func arithmetic[T types.Numeric](op BinaryOperator, l, r *types.Series) (*types.Series, error) {
	lc, err := types.PrimitiveChunk[T](l)
	if err != nil {
		return nil, err
	}
	rc, err := types.PrimitiveChunk[T](r)
	if err != nil {
		return nil, err
	}
	var zero T
	_, isFloat := any(zero).(float64)

	res := types.ZipPrimitive(lc, rc, func(a, b T) (T, bool) {
		switch op {
		case OpAdd:
			return a + b, true
		case OpSubtract:
			return a - b, true
		case OpMultiply:
			return a * b, true
		default:
			// integer division by zero yields null
			if b == 0 && !isFloat {
				return 0, false
			}
			return a / b, true
		}
	})
	return types.NewSeriesFromChunk("result", res), nil
}

func (e *BinaryOpExpr) evaluateLogical(l, r *types.Series) (*types.Series, error) {
	lv, lValid, err := l.BoolValues()
	if err != nil {
		return nil, err
	}
	rv, rValid, err := r.BoolValues()
	if err != nil {
		return nil, err
	}

	return boolSeries(len(lv), func(i int) (bool, bool) {
		lFalse, rFalse := lValid[i] && !lv[i], rValid[i] && !rv[i]
		lTrue, rTrue := lValid[i] && lv[i], rValid[i] && rv[i]
		if e.Operator == OpAnd {
			switch {
			case lFalse || rFalse:
				return false, true
			case lTrue && rTrue:
				return true, true
			}
			return false, false
		}
		switch {
		case lTrue || rTrue:
			return true, true
		case lFalse && rFalse:
			return false, true
		}
		return false, false
	}), nil
}

func (e *BinaryOpExpr) evaluateComparison(l, r *types.Series) (*types.Series, error) {
	lt, rt := l.GetType(), r.GetType()
	if lt == types.ColumnTypeNull || rt == types.ColumnTypeNull {
		return types.NewNullSeries("result", types.ColumnTypeBoolean, l.Len()), nil
	}

	switch {
	case lt == types.ColumnTypeVarchar && rt == types.ColumnTypeVarchar:
		return e.compareVarchar(l, r)
	case lt == types.ColumnTypeBoolean && rt == types.ColumnTypeBoolean:
		l, _ = l.Cast(types.ColumnTypeInt64)
		r, _ = r.Cast(types.ColumnTypeInt64)
		return compareNumeric[int64](e.Operator, l, r)
	}

	typ, err := types.NumericSupertype(lt, rt)
	if err != nil {
		return nil, err
	}
	if l, err = l.Cast(typ); err != nil {
		return nil, err
	}
	if r, err = r.Cast(typ); err != nil {
		return nil, err
	}
	switch typ {
	case types.ColumnTypeInt64:
		return compareNumeric[int64](e.Operator, l, r)
	case types.ColumnTypeUInt64:
		return compareNumeric[uint64](e.Operator, l, r)
	default:
		return compareNumeric[float64](e.Operator, l, r)
	}
}

func compareNumeric[T types.Numeric](op BinaryOperator, l, r *types.Series) (*types.Series, error) {
	lc, err := types.PrimitiveChunk[T](l)
	if err != nil {
		return nil, err
	}
	rc, err := types.PrimitiveChunk[T](r)
	if err != nil {
		return nil, err
	}
	res := types.ZipPrimitive(lc, rc, func(a, b T) (bool, bool) {
		return comparisonHolds(op, types.CompareOrdered(a, b)), true
	})
	return types.NewSeriesFromChunk("result", res), nil
}

func (e *BinaryOpExpr) compareVarchar(l, r *types.Series) (*types.Series, error) {
	lc := l.Rechunk().Chunks()[0].(*types.VarcharChunkColumn)
	rc := r.Rechunk().Chunks()[0].(*types.VarcharChunkColumn)
	return boolSeries(lc.Len(), func(i int) (bool, bool) {
		if lc.IsNull(i) || rc.IsNull(i) {
			return false, false
		}
		return comparisonHolds(e.Operator, types.CompareOrdered(lc.Value(i), rc.Value(i))), true
	}), nil
}

func comparisonHolds(op BinaryOperator, c int) bool {
	switch op {
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	case OpLessThan:
		return c < 0
	case OpLessEqual:
		return c <= 0
	case OpGreaterThan:
		return c > 0
	case OpGreaterEqual:
		return c >= 0
	}
	return false
}

// boolSeries builds a BOOLEAN series of n rows; fn returns the value and
// whether it is valid.
func boolSeries(n int, fn func(i int) (bool, bool)) *types.Series {
	res := make([]bool, n)
	var nulls bitmap.Bitmap
	for i := range res {
		v, valid := fn(i)
		if !valid {
			nulls.Set(uint32(i))
			continue
		}
		res[i] = v
	}
	return types.NewSeriesFromChunk("result", types.NewPrimitiveColumn(res, nulls))
}
