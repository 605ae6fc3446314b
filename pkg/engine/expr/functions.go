package expr

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/types"
)

type FunctionName string

const (
	FnStrLen   FunctionName = "STRLEN"
	FnConcat   FunctionName = "CONCAT"
	FnReplace  FunctionName = "REPLACE"
	FnUpper    FunctionName = "UPPER"
	FnLower    FunctionName = "LOWER"
	FnClipMin  FunctionName = "CLIP_MIN"
	FnIsNull   FunctionName = "IS_NULL"
	FnFillNull FunctionName = "FILL_NULL"
)

func FunctionNameFromString(name string) (FunctionName, error) {
	switch fn := FunctionName(strings.ToUpper(name)); fn {
	case FnStrLen, FnConcat, FnReplace, FnUpper, FnLower, FnClipMin, FnIsNull, FnFillNull:
		return fn, nil
	default:
		return "", errors.Newf("unknown function: %s", name)
	}
}

type FunctionExpr struct {
	Name      FunctionName
	Arguments []Expression
}

// NewFunction checks the argument count of a scalar function. Argument
// types are checked on evaluation.
func NewFunction(name FunctionName, args []Expression) (*FunctionExpr, error) {
	switch name {
	case FnStrLen, FnUpper, FnLower, FnIsNull:
		if len(args) != 1 {
			return nil, errors.Newf("%s expects 1 argument, got %d", name, len(args))
		}
	case FnConcat:
		if len(args) < 2 {
			return nil, errors.Newf("CONCAT expects at least 2 arguments")
		}
	case FnReplace:
		if len(args) != 3 {
			return nil, errors.Newf("REPLACE expects 3 arguments (source, old, new)")
		}
	case FnClipMin, FnFillNull:
		if len(args) != 2 {
			return nil, errors.Newf("%s expects 2 arguments, got %d", name, len(args))
		}
	default:
		return nil, errors.Newf("unsupported function: %s", name)
	}

	return &FunctionExpr{
		Name:      name,
		Arguments: args,
	}, nil
}

// ClipMin replaces values below lower with lower. Nulls stay null.
func ClipMin(e, lower Expression) *FunctionExpr {
	return &FunctionExpr{Name: FnClipMin, Arguments: []Expression{e, lower}}
}

func IsNull(e Expression) *FunctionExpr {
	return &FunctionExpr{Name: FnIsNull, Arguments: []Expression{e}}
}

func FillNull(e, value Expression) *FunctionExpr {
	return &FunctionExpr{Name: FnFillNull, Arguments: []Expression{e, value}}
}

func (e *FunctionExpr) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

func (e *FunctionExpr) GetUsedColumns() []string {
	var cols []string
	for _, arg := range e.Arguments {
		cols = append(cols, arg.GetUsedColumns()...)
	}
	return cols
}

func (e *FunctionExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	args := make([]*types.Series, len(e.Arguments))
	for i, argExpr := range e.Arguments {
		col, err := evaluateSeries(argExpr, frame)
		if err != nil {
			return nil, err
		}
		args[i] = col
	}

	var res *types.Series
	var err error
	switch e.Name {
	case FnStrLen:
		res, err = e.evalStrLen(args)
	case FnConcat:
		res, err = e.evalConcat(args)
	case FnUpper, FnLower:
		res, err = e.evalUpperLower(args)
	case FnReplace:
		res, err = e.evalReplace(args)
	case FnClipMin:
		res, err = e.evalClipMin(args)
	case FnIsNull:
		res, err = e.evalIsNull(args)
	case FnFillNull:
		res, err = e.evalFillNull(args)
	default:
		return nil, errors.Newf("runtime error: function %s not implemented", e.Name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating %s", e)
	}
	return res, nil
}

func varcharArg(s *types.Series, pos int) (*types.VarcharChunkColumn, error) {
	switch s.GetType() {
	case types.ColumnTypeVarchar:
	case types.ColumnTypeNull:
		s = types.NewNullSeries(s.GetName(), types.ColumnTypeVarchar, s.Len())
	default:
		return nil, errors.Wrapf(types.ErrTypeMismatch, "argument %d must be VARCHAR, got %s", pos, s.GetType())
	}
	return s.Rechunk().Chunks()[0].(*types.VarcharChunkColumn), nil
}

func mapStrings(name string, n int, cols []*types.VarcharChunkColumn, fn func(vals []string) string) *types.Series {
	values := make([]any, n)
	vals := make([]string, len(cols))
	for i := 0; i < n; i++ {
		null := false
		for j, c := range cols {
			if c.IsNull(i) {
				null = true
				break
			}
			vals[j] = c.Value(i)
		}
		if !null {
			values[i] = fn(vals)
		}
	}
	res, _ := types.NewSeries(name, types.ColumnTypeVarchar, values)
	return res
}

func (e *FunctionExpr) evalStrLen(args []*types.Series) (*types.Series, error) {
	col, err := varcharArg(args[0], 0)
	if err != nil {
		return nil, err
	}
	values := make([]any, col.Len())
	for i := range values {
		if !col.IsNull(i) {
			values[i] = int64(col.NextOffset(i) - col.Offsets[i])
		}
	}
	return types.NewSeries(args[0].GetName(), types.ColumnTypeInt64, values)
}

func (e *FunctionExpr) evalConcat(args []*types.Series) (*types.Series, error) {
	cols := make([]*types.VarcharChunkColumn, len(args))
	for i, a := range args {
		c, err := varcharArg(a, i)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return mapStrings(args[0].GetName(), args[0].Len(), cols, func(vals []string) string {
		return strings.Join(vals, "")
	}), nil
}

func (e *FunctionExpr) evalUpperLower(args []*types.Series) (*types.Series, error) {
	col, err := varcharArg(args[0], 0)
	if err != nil {
		return nil, err
	}
	return mapStrings(args[0].GetName(), col.Len(), []*types.VarcharChunkColumn{col}, func(vals []string) string {
		if e.Name == FnUpper {
			return strings.ToUpper(vals[0])
		}
		return strings.ToLower(vals[0])
	}), nil
}

func (e *FunctionExpr) evalReplace(args []*types.Series) (*types.Series, error) {
	cols := make([]*types.VarcharChunkColumn, len(args))
	for i, a := range args {
		c, err := varcharArg(a, i)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return mapStrings(args[0].GetName(), args[0].Len(), cols, func(vals []string) string {
		if vals[1] == "" {
			return vals[0]
		}
		return strings.ReplaceAll(vals[0], vals[1], vals[2])
	}), nil
}

// evalClipMin keeps the type of the clipped column; the bound is cast to it.
func (e *FunctionExpr) evalClipMin(args []*types.Series) (*types.Series, error) {
	src, bound := args[0], args[1]
	switch src.GetType() {
	case types.ColumnTypeNull:
		return src, nil
	case types.ColumnTypeInt64:
		return clipMin[int64](src, bound)
	case types.ColumnTypeUInt64:
		return clipMin[uint64](src, bound)
	case types.ColumnTypeFloat64:
		return clipMin[float64](src, bound)
	default:
		return nil, errors.Wrapf(types.ErrTypeMismatch, "CLIP_MIN requires a numeric column, got %s", src.GetType())
	}
}

func clipMin[T types.Numeric](src, bound *types.Series) (*types.Series, error) {
	if !bound.GetType().IsNumeric() && bound.GetType() != types.ColumnTypeNull {
		return nil, errors.Wrapf(types.ErrTypeMismatch, "CLIP_MIN bound must be numeric, got %s", bound.GetType())
	}
	castBound, err := bound.Cast(src.GetType())
	if err != nil {
		return nil, err
	}
	sc, err := types.PrimitiveChunk[T](src)
	if err != nil {
		return nil, err
	}
	bc, err := types.PrimitiveChunk[T](castBound)
	if err != nil {
		return nil, err
	}

	res := &types.PrimitiveChunkColumn[T]{Values: make([]T, len(sc.Values)), Nulls: sc.Nulls}
	for i, v := range sc.Values {
		if !bc.IsNull(i) && v < bc.Values[i] {
			v = bc.Values[i]
		}
		res.Values[i] = v
	}
	return types.NewSeriesFromChunk(src.GetName(), res), nil
}

func (e *FunctionExpr) evalIsNull(args []*types.Series) (*types.Series, error) {
	src := args[0]
	return boolSeries(src.Len(), func(i int) (bool, bool) {
		return src.IsNull(i), true
	}).WithName(src.GetName()), nil
}

func (e *FunctionExpr) evalFillNull(args []*types.Series) (*types.Series, error) {
	src, fill := args[0], args[1]
	notNull := boolSeries(src.Len(), func(i int) (bool, bool) {
		return !src.IsNull(i), true
	})
	res, err := types.ZipWith(notNull, src, fill)
	if err != nil {
		return nil, err
	}
	return res.(*types.Series), nil
}
