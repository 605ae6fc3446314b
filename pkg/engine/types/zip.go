package types

import (
	"github.com/cockroachdb/errors"
)

// ZipWith selects, row by row, the value of a where mask is true and the
// value of b where mask is false or null. Struct columns are zipped field by
// field; a Null-typed branch adopts the shape of the other branch.
func ZipWith(mask *Series, a, b Column) (Column, error) {
	if mask.typ != ColumnTypeBoolean && mask.typ != ColumnTypeNull {
		return nil, errors.Wrapf(ErrTypeMismatch, "mask %q is %s, expected BOOLEAN", mask.name, mask.typ)
	}
	n := mask.Len()
	if a.Len() != n || b.Len() != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "mask %q has %d rows, branches have %d and %d",
			mask.name, n, a.Len(), b.Len())
	}

	if s, ok := a.(*Series); ok && s.typ == ColumnTypeNull && b.GetType() == ColumnTypeStruct {
		a = NullColumnLike(b, n).Rename(a.GetName())
	}
	if s, ok := b.(*Series); ok && s.typ == ColumnTypeNull && a.GetType() == ColumnTypeStruct {
		b = NullColumnLike(a, n)
	}

	maskValues, maskValid, err := mask.BoolValues()
	if err != nil {
		return nil, err
	}
	takeA := make([]bool, n)
	for i := range takeA {
		takeA[i] = maskValid[i] && maskValues[i]
	}
	return zipColumns(takeA, a, b)
}

func zipColumns(takeA []bool, a, b Column) (Column, error) {
	switch left := a.(type) {
	case *StructColumn:
		right, ok := b.(*StructColumn)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "cannot combine STRUCT %q with %s %q", a.GetName(), b.GetType(), b.GetName())
		}
		return zipStructs(takeA, left, right)
	case *Series:
		right, ok := b.(*Series)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "cannot combine %s %q with STRUCT %q", a.GetType(), a.GetName(), b.GetName())
		}
		return zipSeries(takeA, left, right)
	default:
		return nil, errors.Newf("unsupported column %T", a)
	}
}

func zipStructs(takeA []bool, a, b *StructColumn) (Column, error) {
	if len(a.fields) != len(b.fields) {
		return nil, errors.Wrapf(ErrTypeMismatch, "struct fields %v and %v differ", a.FieldNames(), b.FieldNames())
	}
	fields := make([]Column, len(a.fields))
	for i, f := range a.fields {
		if f.GetName() != b.fields[i].GetName() {
			return nil, errors.Wrapf(ErrTypeMismatch, "struct fields %v and %v differ", a.FieldNames(), b.FieldNames())
		}
		zipped, err := zipColumns(takeA, f, b.fields[i])
		if err != nil {
			return nil, err
		}
		fields[i] = zipped
	}
	return &StructColumn{name: a.name, fields: fields, length: len(takeA)}, nil
}

func zipSeries(takeA []bool, a, b *Series) (Column, error) {
	typ, err := Supertype(a.typ, b.typ)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot combine %q and %q", a.name, b.name)
	}
	if a, err = a.Cast(typ); err != nil {
		return nil, err
	}
	if b, err = b.Cast(typ); err != nil {
		return nil, err
	}

	left := a.Rechunk().chunks[0]
	right := b.Rechunk().chunks[0]
	builder, err := newChunkBuilder(typ, len(takeA), false)
	if err != nil {
		return nil, err
	}
	for i, fromA := range takeA {
		v := right.GetAny(i)
		if fromA {
			v = left.GetAny(i)
		}
		if !builder.Append(v) {
			return nil, errors.AssertionFailedf("value %v does not fit %s", v, typ)
		}
	}
	return NewSeriesFromChunk(a.name, builder.Build()), nil
}

// Supertype returns the type two branches are unified to. Equal types unify
// to themselves, Null adopts the other side and numerics widen.
func Supertype(a, b ColumnType) (ColumnType, error) {
	switch {
	case a == b:
		return a, nil
	case a == ColumnTypeNull:
		return b, nil
	case b == ColumnTypeNull:
		return a, nil
	case a.IsNumeric() && b.IsNumeric():
		return NumericSupertype(a, b)
	default:
		return 0, errors.Wrapf(ErrTypeMismatch, "no common type for %s and %s", a, b)
	}
}
