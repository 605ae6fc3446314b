package types

import (
	"fmt"

	"github.com/kelindar/bitmap"
)

// ChunkColumn is one contiguous, typed block of a Series. Null positions are
// kept in a bitmap where a set bit marks a null row.
type ChunkColumn interface {
	GetType() ColumnType
	Len() int
	IsNull(i int) bool
	NullCount() int
	GetAny(i int) any
	Slice(start, end int) ChunkColumn
	CopyTo(other ChunkColumn, rowOffset int)
}

type Numeric interface {
	int64 | uint64 | float64
}

type Primitive interface {
	Numeric | bool
}

type PrimitiveChunkColumn[T Primitive] struct {
	Values []T
	Nulls  bitmap.Bitmap
}

type (
	Int64ChunkColumn   = PrimitiveChunkColumn[int64]
	UInt64ChunkColumn  = PrimitiveChunkColumn[uint64]
	Float64ChunkColumn = PrimitiveChunkColumn[float64]
	BooleanChunkColumn = PrimitiveChunkColumn[bool]
)

func primitiveType[T Primitive]() ColumnType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return ColumnTypeBoolean
	case int64:
		return ColumnTypeInt64
	case uint64:
		return ColumnTypeUInt64
	case float64:
		return ColumnTypeFloat64
	}
	panic(fmt.Sprintf("unsupported primitive type %T", zero))
}

func (c *PrimitiveChunkColumn[T]) GetType() ColumnType { return primitiveType[T]() }
func (c *PrimitiveChunkColumn[T]) Len() int            { return len(c.Values) }
func (c *PrimitiveChunkColumn[T]) IsNull(i int) bool   { return c.Nulls.Contains(uint32(i)) }
func (c *PrimitiveChunkColumn[T]) NullCount() int      { return c.Nulls.Count() }

func (c *PrimitiveChunkColumn[T]) GetAny(i int) any {
	if c.IsNull(i) {
		return nil
	}
	return c.Values[i]
}

// Slice shares the value buffer with c; the capacity is capped so appends
// on the result never write into c.
func (c *PrimitiveChunkColumn[T]) Slice(start, end int) ChunkColumn {
	return &PrimitiveChunkColumn[T]{
		Values: c.Values[start:end:end],
		Nulls:  sliceNulls(c.Nulls, start, end),
	}
}

func (c *PrimitiveChunkColumn[T]) CopyTo(other ChunkColumn, rowOffset int) {
	target := other.(*PrimitiveChunkColumn[T])
	copy(target.Values[rowOffset:], c.Values)
	copyNulls(&target.Nulls, c.Nulls, c.Len(), rowOffset)
}

func NewPrimitiveColumn[T Primitive](values []T, nulls bitmap.Bitmap) *PrimitiveChunkColumn[T] {
	return &PrimitiveChunkColumn[T]{
		Values: values,
		Nulls:  nulls,
	}
}

func NewInt64Column(values []int64) *Int64ChunkColumn {
	return &Int64ChunkColumn{Values: values}
}

func NewUInt64Column(values []uint64) *UInt64ChunkColumn {
	return &UInt64ChunkColumn{Values: values}
}

func NewFloat64Column(values []float64) *Float64ChunkColumn {
	return &Float64ChunkColumn{Values: values}
}

func NewBooleanColumn(values []bool) *BooleanChunkColumn {
	return &BooleanChunkColumn{Values: values}
}

type VarcharChunkColumn struct {
	Offsets []uint64
	Data    []byte
	Nulls   bitmap.Bitmap
}

func (c *VarcharChunkColumn) GetType() ColumnType { return ColumnTypeVarchar }
func (c *VarcharChunkColumn) Len() int            { return len(c.Offsets) }
func (c *VarcharChunkColumn) IsNull(i int) bool   { return c.Nulls.Contains(uint32(i)) }
func (c *VarcharChunkColumn) NullCount() int      { return c.Nulls.Count() }

func (c *VarcharChunkColumn) GetAny(i int) any {
	if c.IsNull(i) {
		return nil
	}
	return c.Value(i)
}

func (c *VarcharChunkColumn) Value(i int) string {
	return string(c.Data[c.Offsets[i]:c.NextOffset(i)])
}

func (c *VarcharChunkColumn) NextOffset(idx int) uint64 {
	if idx == len(c.Offsets)-1 {
		return uint64(len(c.Data))
	}
	return c.Offsets[idx+1]
}

func (c *VarcharChunkColumn) Slice(start, end int) ChunkColumn {
	count := end - start
	if count == 0 {
		return &VarcharChunkColumn{}
	}

	startByte := c.Offsets[start]
	endByte := c.NextOffset(end - 1)

	newData := make([]byte, endByte-startByte)
	copy(newData, c.Data[startByte:endByte])

	newOffsets := make([]uint64, count)
	for j := 0; j < count; j++ {
		newOffsets[j] = c.Offsets[start+j] - startByte
	}

	return &VarcharChunkColumn{
		Offsets: newOffsets,
		Data:    newData,
		Nulls:   sliceNulls(c.Nulls, start, end),
	}
}

func (c *VarcharChunkColumn) CopyTo(other ChunkColumn, rowOffset int) {
	target := other.(*VarcharChunkColumn)

	oldLen := len(target.Data)
	for i, off := range c.Offsets {
		target.Offsets[rowOffset+i] = off + uint64(oldLen)
	}
	target.Data = append(target.Data, c.Data...)
	copyNulls(&target.Nulls, c.Nulls, c.Len(), rowOffset)
}

func (c *VarcharChunkColumn) GetValuesAsString() []string {
	res := make([]string, len(c.Offsets))
	for i := range c.Offsets {
		res[i] = c.Value(i)
	}
	return res
}

func VarcharChunkColumnFromStrings(values []string) *VarcharChunkColumn {
	totalSize := 0
	for _, str := range values {
		totalSize += len(str)
	}
	dataBytes := make([]byte, totalSize)
	offsets := make([]uint64, len(values))
	var currentOffset uint64
	for i, str := range values {
		offsets[i] = currentOffset
		copy(dataBytes[currentOffset:], str)
		currentOffset += uint64(len(str))
	}
	return &VarcharChunkColumn{Offsets: offsets, Data: dataBytes}
}

// NullChunkColumn is the storage of an untyped all-null block.
type NullChunkColumn struct {
	Length int
}

func (c *NullChunkColumn) GetType() ColumnType { return ColumnTypeNull }
func (c *NullChunkColumn) Len() int            { return c.Length }
func (c *NullChunkColumn) IsNull(int) bool     { return true }
func (c *NullChunkColumn) NullCount() int      { return c.Length }
func (c *NullChunkColumn) GetAny(int) any      { return nil }

func (c *NullChunkColumn) Slice(start, end int) ChunkColumn {
	return &NullChunkColumn{Length: end - start}
}

func (c *NullChunkColumn) CopyTo(ChunkColumn, int) {}

// CloneEmpty allocates a chunk of the same type as c, sized to hold capacity
// rows. Varchar data starts empty with maxDataSize bytes reserved; CopyTo
// appends to it.
func CloneEmpty(c ChunkColumn, capacity, maxDataSize int) ChunkColumn {
	switch c.GetType() {
	case ColumnTypeInt64:
		return &Int64ChunkColumn{Values: make([]int64, capacity)}
	case ColumnTypeUInt64:
		return &UInt64ChunkColumn{Values: make([]uint64, capacity)}
	case ColumnTypeFloat64:
		return &Float64ChunkColumn{Values: make([]float64, capacity)}
	case ColumnTypeBoolean:
		return &BooleanChunkColumn{Values: make([]bool, capacity)}
	case ColumnTypeVarchar:
		return &VarcharChunkColumn{
			Offsets: make([]uint64, capacity),
			Data:    make([]byte, 0, maxDataSize),
		}
	case ColumnTypeNull:
		return &NullChunkColumn{Length: capacity}
	default:
		panic("unsupported chunk column type")
	}
}

// NewNullChunk returns a chunk of n null rows of the given type.
func NewNullChunk(typ ColumnType, n int) ChunkColumn {
	nulls := allNulls(n)
	switch typ {
	case ColumnTypeInt64:
		return &Int64ChunkColumn{Values: make([]int64, n), Nulls: nulls}
	case ColumnTypeUInt64:
		return &UInt64ChunkColumn{Values: make([]uint64, n), Nulls: nulls}
	case ColumnTypeFloat64:
		return &Float64ChunkColumn{Values: make([]float64, n), Nulls: nulls}
	case ColumnTypeBoolean:
		return &BooleanChunkColumn{Values: make([]bool, n), Nulls: nulls}
	case ColumnTypeVarchar:
		return &VarcharChunkColumn{Offsets: make([]uint64, n), Nulls: nulls}
	case ColumnTypeNull:
		return &NullChunkColumn{Length: n}
	default:
		panic(fmt.Sprintf("cannot build a null chunk of type %s", typ))
	}
}

func allNulls(n int) bitmap.Bitmap {
	var nulls bitmap.Bitmap
	for i := 0; i < n; i++ {
		nulls.Set(uint32(i))
	}
	return nulls
}

func sliceNulls(nulls bitmap.Bitmap, start, end int) bitmap.Bitmap {
	if nulls.Count() == 0 {
		return nil
	}
	var res bitmap.Bitmap
	for i := start; i < end; i++ {
		if nulls.Contains(uint32(i)) {
			res.Set(uint32(i - start))
		}
	}
	return res
}

func copyNulls(dst *bitmap.Bitmap, src bitmap.Bitmap, n, rowOffset int) {
	if src.Count() == 0 {
		return
	}
	for i := 0; i < n; i++ {
		if src.Contains(uint32(i)) {
			dst.Set(uint32(rowOffset + i))
		}
	}
}
