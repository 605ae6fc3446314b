package types

import (
	"github.com/cockroachdb/errors"
)

// Cast converts the series to another type. The cast is not strict: values
// that cannot be represented in the target type (out of range integers,
// unparsable strings, NaN to integer) become null.
func (s *Series) Cast(to ColumnType) (*Series, error) {
	if s.typ == to {
		return s, nil
	}
	if to == ColumnTypeStruct {
		return nil, errors.Wrapf(ErrTypeMismatch, "cannot cast %s series %q to STRUCT", s.typ, s.name)
	}
	if s.typ == ColumnTypeNull {
		return NewNullSeries(s.name, to, s.length), nil
	}
	if to == ColumnTypeNull {
		if s.NullCount() != s.length {
			return nil, errors.Wrapf(ErrTypeMismatch, "series %q has non-null values and cannot be cast to NULL", s.name)
		}
		return NewNullSeries(s.name, to, s.length), nil
	}

	b, err := newChunkBuilder(to, s.length, true)
	if err != nil {
		return nil, err
	}
	for _, c := range s.chunks {
		for i := 0; i < c.Len(); i++ {
			if !b.Append(c.GetAny(i)) {
				b.AppendNull()
			}
		}
	}
	return NewSeriesFromChunk(s.name, b.Build()), nil
}
