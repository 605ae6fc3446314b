package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Column is a named unit of a Frame: either a *Series or a *StructColumn.
type Column interface {
	GetName() string
	GetType() ColumnType
	Len() int
	NChunks() int
	Get(i int) any
	Rename(name string) Column
}

// AsSeries reduces a column to a single Series. A struct with exactly one
// field reduces to that field; any other struct is not reducible.
func AsSeries(c Column) (*Series, bool) {
	switch col := c.(type) {
	case *Series:
		return col, true
	case *StructColumn:
		if len(col.fields) != 1 {
			return nil, false
		}
		return AsSeries(col.fields[0])
	default:
		return nil, false
	}
}

func SliceColumn(c Column, offset, length int) Column {
	switch col := c.(type) {
	case *Series:
		return col.Slice(offset, length)
	case *StructColumn:
		return col.Slice(offset, length)
	default:
		panic(fmt.Sprintf("unsupported column %T", c))
	}
}

// AppendColumn stacks b below a. A Null-typed series on either side is
// widened to the shape of the other side.
func AppendColumn(a, b Column) (Column, error) {
	if s, ok := a.(*Series); ok && s.typ == ColumnTypeNull && b.GetType() == ColumnTypeStruct {
		a = NullColumnLike(b, s.Len()).Rename(s.GetName())
	}
	if s, ok := b.(*Series); ok && s.typ == ColumnTypeNull && a.GetType() == ColumnTypeStruct {
		b = NullColumnLike(a, s.Len())
	}

	switch left := a.(type) {
	case *Series:
		right, ok := b.(*Series)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "cannot append %s column %q to %s column %q",
				b.GetType(), b.GetName(), a.GetType(), a.GetName())
		}
		return left.Append(right)
	case *StructColumn:
		right, ok := b.(*StructColumn)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "cannot append %s column %q to %s column %q",
				b.GetType(), b.GetName(), a.GetType(), a.GetName())
		}
		return left.Append(right)
	default:
		panic(fmt.Sprintf("unsupported column %T", a))
	}
}

func RechunkColumn(c Column) Column {
	switch col := c.(type) {
	case *Series:
		return col.Rechunk()
	case *StructColumn:
		return col.Rechunk()
	default:
		panic(fmt.Sprintf("unsupported column %T", c))
	}
}

// NullColumnLike returns n null rows shaped like c.
func NullColumnLike(c Column, n int) Column {
	switch col := c.(type) {
	case *Series:
		return col.NullLike(n)
	case *StructColumn:
		return col.NullLike(n)
	default:
		panic(fmt.Sprintf("unsupported column %T", c))
	}
}

// ColumnValues returns every row of c; struct rows are maps.
func ColumnValues(c Column) []any {
	if s, ok := c.(*Series); ok {
		return s.Values()
	}
	res := make([]any, c.Len())
	for i := range res {
		res[i] = c.Get(i)
	}
	return res
}
