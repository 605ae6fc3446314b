package types

import (
	"github.com/cockroachdb/errors"
	"github.com/kelindar/bitmap"
	"golang.org/x/exp/constraints"
)

// PrimitiveChunk returns the series as a single chunk of element type T.
func PrimitiveChunk[T Primitive](s *Series) (*PrimitiveChunkColumn[T], error) {
	if want := primitiveType[T](); s.typ != want {
		return nil, errors.Wrapf(ErrTypeMismatch, "series %q is %s, expected %s", s.name, s.typ, want)
	}
	return s.Rechunk().chunks[0].(*PrimitiveChunkColumn[T]), nil
}

// MapPrimitive applies fn to every non-null element. Nulls stay null and fn
// returning false turns the element into a null.
func MapPrimitive[T, R Primitive](c *PrimitiveChunkColumn[T], fn func(T) (R, bool)) *PrimitiveChunkColumn[R] {
	res := make([]R, len(c.Values))
	var nulls bitmap.Bitmap
	for i, v := range c.Values {
		if c.IsNull(i) {
			nulls.Set(uint32(i))
			continue
		}
		out, ok := fn(v)
		if !ok {
			nulls.Set(uint32(i))
			continue
		}
		res[i] = out
	}
	return &PrimitiveChunkColumn[R]{Values: res, Nulls: nulls}
}

// ZipPrimitive applies fn to aligned pairs. A null on either side, or fn
// returning false, produces a null.
func ZipPrimitive[T, R Primitive](l, r *PrimitiveChunkColumn[T], fn func(a, b T) (R, bool)) *PrimitiveChunkColumn[R] {
	res := make([]R, len(l.Values))
	var nulls bitmap.Bitmap
	for i := range l.Values {
		if l.IsNull(i) || r.IsNull(i) {
			nulls.Set(uint32(i))
			continue
		}
		out, ok := fn(l.Values[i], r.Values[i])
		if !ok {
			nulls.Set(uint32(i))
			continue
		}
		res[i] = out
	}
	return &PrimitiveChunkColumn[R]{Values: res, Nulls: nulls}
}

// CompareOrdered returns -1, 0 or 1.
func CompareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// BroadcastSeries repeats a single-row series n times.
func BroadcastSeries(s *Series, n int) (*Series, error) {
	if s.length == n {
		return s, nil
	}
	if s.length != 1 {
		return nil, errors.Wrapf(ErrLengthMismatch, "cannot broadcast series %q of %d rows to %d", s.name, s.length, n)
	}
	v := s.Get(0)
	if v == nil {
		return NewNullSeries(s.name, s.typ, n), nil
	}
	b, err := newChunkBuilder(s.typ, n, false)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		b.Append(v)
	}
	return NewSeriesFromChunk(s.name, b.Build()), nil
}

// MapValues builds a series of type typ from fn applied to every row of s.
// fn receives nil for null rows; returning nil produces a null.
func MapValues(s *Series, typ ColumnType, fn func(v any) (any, error)) (*Series, error) {
	b, err := newChunkBuilder(typ, s.length, false)
	if err != nil {
		return nil, err
	}
	for _, c := range s.chunks {
		for i := 0; i < c.Len(); i++ {
			out, err := fn(c.GetAny(i))
			if err != nil {
				return nil, err
			}
			if !b.Append(out) {
				return nil, errors.Wrapf(ErrTypeMismatch, "value %v (%T) is not %s", out, out, typ)
			}
		}
	}
	return NewSeriesFromChunk(s.name, b.Build()), nil
}
