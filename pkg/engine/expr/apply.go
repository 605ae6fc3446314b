package expr

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/types"
)

// ColumnFunc transforms a whole column. Returning ok=false means the
// function does not apply to this column; the column is then passed through
// unchanged. That outcome is not an error.
type ColumnFunc func(col types.Column) (res types.Column, ok bool, err error)

// OutputType derives the declared result type from the input column.
type OutputType func(input types.Column) types.ColumnType

func SameType() OutputType {
	return func(input types.Column) types.ColumnType { return input.GetType() }
}

func ToType(t types.ColumnType) OutputType {
	return func(types.Column) types.ColumnType { return t }
}

// FirstFieldType declares the type of the first field of a struct input.
func FirstFieldType() OutputType {
	return func(input types.Column) types.ColumnType {
		if s, ok := input.(*types.StructColumn); ok {
			return s.Fields()[0].GetType()
		}
		return input.GetType()
	}
}

type ApplyExpr struct {
	Inner  Expression
	Name   string
	Fn     ColumnFunc
	Output OutputType
}

func Apply(e Expression, name string, fn ColumnFunc, output OutputType) *ApplyExpr {
	return &ApplyExpr{Inner: e, Name: name, Fn: fn, Output: output}
}

func (e *ApplyExpr) String() string           { return fmt.Sprintf("%s.apply(%s)", e.Inner, e.Name) }
func (e *ApplyExpr) GetUsedColumns() []string { return e.Inner.GetUsedColumns() }

// Evaluate runs Fn over the inner column. A scalar result whose type differs
// from the declared one is cast to it.
func (e *ApplyExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	col, err := e.Inner.Evaluate(frame)
	if err != nil {
		return nil, err
	}
	res, ok, err := e.Fn(col)
	if err != nil {
		return nil, errors.Wrapf(err, "apply %s to %q", e.Name, col.GetName())
	}
	if !ok {
		return col, nil
	}
	if res.Len() != col.Len() {
		return nil, errors.Wrapf(types.ErrLengthMismatch, "apply %s returned %d rows for %d", e.Name, res.Len(), col.Len())
	}

	want := e.Output(col)
	if res.GetType() == want {
		return res, nil
	}
	s, isSeries := res.(*types.Series)
	if !isSeries || want == types.ColumnTypeStruct {
		return nil, errors.Wrapf(types.ErrTypeMismatch, "apply %s returned %s, declared %s", e.Name, res.GetType(), want)
	}
	return s.Cast(want)
}
