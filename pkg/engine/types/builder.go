package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kelindar/bitmap"
)

// chunkBuilder accumulates untyped values into a single typed chunk.
// Append reports false when the value cannot be represented in the
// builder's type; nothing is appended in that case.
type chunkBuilder interface {
	Append(v any) bool
	AppendNull()
	Len() int
	Build() ChunkColumn
}

type primitiveBuilder[T Primitive] struct {
	values []T
	nulls  bitmap.Bitmap
	conv   func(any) (T, bool)
}

func (b *primitiveBuilder[T]) Append(v any) bool {
	if v == nil {
		b.AppendNull()
		return true
	}
	val, ok := b.conv(v)
	if !ok {
		return false
	}
	b.values = append(b.values, val)
	return true
}

func (b *primitiveBuilder[T]) AppendNull() {
	b.nulls.Set(uint32(len(b.values)))
	var zero T
	b.values = append(b.values, zero)
}

func (b *primitiveBuilder[T]) Len() int { return len(b.values) }

func (b *primitiveBuilder[T]) Build() ChunkColumn {
	if b.values == nil {
		b.values = []T{}
	}
	return &PrimitiveChunkColumn[T]{Values: b.values, Nulls: b.nulls}
}

type varcharBuilder struct {
	offsets []uint64
	data    []byte
	nulls   bitmap.Bitmap
	conv    func(any) (string, bool)
}

func (b *varcharBuilder) Append(v any) bool {
	if v == nil {
		b.AppendNull()
		return true
	}
	s, ok := b.conv(v)
	if !ok {
		return false
	}
	b.offsets = append(b.offsets, uint64(len(b.data)))
	b.data = append(b.data, s...)
	return true
}

func (b *varcharBuilder) AppendNull() {
	b.nulls.Set(uint32(len(b.offsets)))
	b.offsets = append(b.offsets, uint64(len(b.data)))
}

func (b *varcharBuilder) Len() int { return len(b.offsets) }

func (b *varcharBuilder) Build() ChunkColumn {
	if b.offsets == nil {
		b.offsets = []uint64{}
	}
	return &VarcharChunkColumn{Offsets: b.offsets, Data: b.data, Nulls: b.nulls}
}

type nullBuilder struct {
	n int
}

func (b *nullBuilder) Append(v any) bool {
	if v != nil {
		return false
	}
	b.n++
	return true
}

func (b *nullBuilder) AppendNull()        { b.n++ }
func (b *nullBuilder) Len() int           { return b.n }
func (b *nullBuilder) Build() ChunkColumn { return &NullChunkColumn{Length: b.n} }

// newChunkBuilder returns a builder for typ. A lenient builder accepts any
// value that can be converted to typ (parsing strings, truncating floats);
// a strict one only accepts lossless Go conversions.
func newChunkBuilder(typ ColumnType, capacity int, lenient bool) (chunkBuilder, error) {
	switch typ {
	case ColumnTypeInt64:
		conv := toInt64
		if lenient {
			conv = castToInt64
		}
		return &primitiveBuilder[int64]{values: make([]int64, 0, capacity), conv: conv}, nil
	case ColumnTypeUInt64:
		conv := toUInt64
		if lenient {
			conv = castToUInt64
		}
		return &primitiveBuilder[uint64]{values: make([]uint64, 0, capacity), conv: conv}, nil
	case ColumnTypeFloat64:
		conv := toFloat64
		if lenient {
			conv = castToFloat64
		}
		return &primitiveBuilder[float64]{values: make([]float64, 0, capacity), conv: conv}, nil
	case ColumnTypeBoolean:
		conv := toBool
		if lenient {
			conv = castToBool
		}
		return &primitiveBuilder[bool]{values: make([]bool, 0, capacity), conv: conv}, nil
	case ColumnTypeVarchar:
		conv := toString
		if lenient {
			conv = castToString
		}
		return &varcharBuilder{offsets: make([]uint64, 0, capacity), conv: conv}, nil
	case ColumnTypeNull:
		return &nullBuilder{}, nil
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "cannot build a %s chunk from scalar values", typ)
	}
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}

func toUInt64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	}
	i, ok := toInt64(v)
	if !ok || i < 0 {
		return 0, false
	}
	return uint64(i), true
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	i, ok := toInt64(v)
	if !ok {
		return 0, false
	}
	return float64(i), true
}

func toBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func castToInt64(v any) (int64, bool) {
	if i, ok := toInt64(v); ok {
		return i, true
	}
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	}
	if f, ok := toFloat64(v); ok {
		return floatToInt64(f)
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func castToUInt64(v any) (uint64, bool) {
	if u, ok := toUInt64(v); ok {
		return u, true
	}
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToUInt64(f)
	}
	if f, ok := toFloat64(v); ok {
		return floatToUInt64(f)
	}
	return 0, false
}

func floatToUInt64(f float64) (uint64, bool) {
	if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}

func castToFloat64(v any) (float64, bool) {
	if f, ok := toFloat64(v); ok {
		return f, true
	}
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func castToBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return b, err == nil
	}
	if f, ok := toFloat64(v); ok {
		return f != 0, true
	}
	return false, false
}

func castToString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	}
	return fmt.Sprint(v), true
}
