package frameops

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/zeebo/xxh3"

	"tomyframe/pkg/engine/types"
)

// HashName is the name of every column produced by Hash.
const HashName = "Hash"

// maxDecimals covers every fractional digit a float64 can carry, so rounding
// to more places leaves the value unchanged.
const maxDecimals = 340

func decimalPlaces(decimals uint32) int32 {
	return int32(min(decimals, maxDecimals))
}

// SeriesFunc is a transform over a single series. It must not modify its
// input and must return a series of the same length.
type SeriesFunc func(s *types.Series) (*types.Series, error)

// Hash returns one xxh3 hash per element, seeded with HashSeed. The hashed
// bytes start with a type tag, so a null and equal-looking values of
// different types hash differently.
func Hash(s *types.Series) (*types.Series, error) {
	seed := HashSeed()
	out := make([]uint64, s.Len())
	var buf []byte
	for i, v := range s.Values() {
		var err error
		buf, err = appendHashKey(buf[:0], v)
		if err != nil {
			return nil, columnError("hash", s.GetName(), err)
		}
		out[i] = xxh3.HashSeed(buf, seed)
	}
	return types.NewUInt64Series(HashName, out), nil
}

func appendHashKey(buf []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return append(buf, 0x00), nil
	case bool:
		if x {
			return append(buf, 0x01, 1), nil
		}
		return append(buf, 0x01, 0), nil
	case int64:
		return binary.LittleEndian.AppendUint64(append(buf, 0x02), uint64(x)), nil
	case uint64:
		return binary.LittleEndian.AppendUint64(append(buf, 0x03), x), nil
	case float64:
		return binary.LittleEndian.AppendUint64(append(buf, 0x04), math.Float64bits(x)), nil
	case string:
		return append(append(buf, 0x05), x...), nil
	}
	return nil, errors.Wrapf(types.ErrTypeMismatch, "cannot hash %T", v)
}

// Normalize divides every element by the sum of the non-null elements. A
// null element counts as 0, so it yields 0/sum rather than null. When there
// is no non-null element every output is null.
func Normalize(s *types.Series) (*types.Series, error) {
	sum, ok, err := s.Sum()
	if err != nil {
		return nil, columnError("normalize", s.GetName(), err)
	}
	if !ok {
		return types.NewNullSeries(s.GetName(), types.ColumnTypeFloat64, s.Len()), nil
	}
	values, valid, err := s.Float64Values()
	if err != nil {
		return nil, columnError("normalize", s.GetName(), err)
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if !valid[i] {
			v = 0
		}
		out[i] = v / sum
	}
	return types.NewFloat64Series(s.GetName(), out), nil
}

// Nullify keeps s[i] where mask[i] is true and sets it to null where the
// mask is false or null.
func Nullify(s, mask *types.Series) (*types.Series, error) {
	if t := mask.GetType(); t != types.ColumnTypeBoolean && t != types.ColumnTypeNull {
		return nil, columnError("nullify", s.GetName(),
			errors.Wrapf(types.ErrTypeMismatch, "mask %q is %s, expected BOOLEAN", mask.GetName(), t))
	}
	res, err := types.ZipWith(mask, s, s.NullLike(s.Len()))
	if err != nil {
		return nil, columnError("nullify", s.GetName(), err)
	}
	out, ok := res.(*types.Series)
	if !ok {
		return nil, errors.AssertionFailedf("nullify of series %q produced %T", s.GetName(), res)
	}
	return out, nil
}

// Round returns a transform rounding floats to decimals fractional digits,
// ties to even. Integer series are returned as they are. NaN and infinities
// are kept.
func Round(decimals uint32) SeriesFunc {
	places := decimalPlaces(decimals)
	return func(s *types.Series) (*types.Series, error) {
		switch s.GetType() {
		case types.ColumnTypeInt64, types.ColumnTypeUInt64, types.ColumnTypeNull:
			return s, nil
		case types.ColumnTypeFloat64:
		default:
			return nil, columnError("round", s.GetName(),
				errors.Wrapf(types.ErrTypeMismatch, "cannot round %s", s.GetType()))
		}
		chunk, err := types.PrimitiveChunk[float64](s)
		if err != nil {
			return nil, columnError("round", s.GetName(), err)
		}
		rounded := types.MapPrimitive(chunk, func(v float64) (float64, bool) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return v, true
			}
			return decimal.NewFromFloat(v).RoundBank(places).InexactFloat64(), true
		})
		return types.NewSeriesFromChunk(s.GetName(), rounded), nil
	}
}
