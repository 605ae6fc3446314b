package expr

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/types"
)

// FieldExpr projects a struct column onto one of its fields.
type FieldExpr struct {
	Inner Expression
	Name  string
}

func Field(e Expression, name string) *FieldExpr {
	return &FieldExpr{Inner: e, Name: name}
}

func (e *FieldExpr) String() string           { return fmt.Sprintf("%s.field(%q)", e.Inner, e.Name) }
func (e *FieldExpr) GetUsedColumns() []string { return e.Inner.GetUsedColumns() }

func (e *FieldExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	col, err := e.Inner.Evaluate(frame)
	if err != nil {
		return nil, err
	}
	s, ok := col.(*types.StructColumn)
	if !ok {
		return nil, errors.Wrapf(types.ErrTypeMismatch, "cannot take field %q of %s column %q", e.Name, col.GetType(), col.GetName())
	}
	return s.Field(e.Name)
}

// StructExpr packs the results of several expressions into one struct
// column. Field names are the result names of the expressions.
type StructExpr struct {
	Name   string
	Fields []Expression
}

func AsStruct(name string, fields ...Expression) *StructExpr {
	return &StructExpr{Name: name, Fields: fields}
}

func (e *StructExpr) String() string {
	fields := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		fields[i] = f.String()
	}
	return fmt.Sprintf("struct(%q, %s)", e.Name, strings.Join(fields, ", "))
}

func (e *StructExpr) GetUsedColumns() []string {
	return GetUsedColumnsFromExpressions(e.Fields)
}

func (e *StructExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	cols := make([]types.Column, len(e.Fields))
	for i, f := range e.Fields {
		col, err := f.Evaluate(frame)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return types.NewStructColumn(e.Name, cols...)
}
