package types

import (
	"github.com/cockroachdb/errors"
)

// Series is a named, typed, nullable array stored as one or more chunks.
// Every chunk has the series' type.
type Series struct {
	name   string
	typ    ColumnType
	chunks []ChunkColumn
	length int
}

func (s *Series) GetName() string       { return s.name }
func (s *Series) GetType() ColumnType   { return s.typ }
func (s *Series) Len() int              { return s.length }
func (s *Series) NChunks() int          { return len(s.chunks) }
func (s *Series) Chunks() []ChunkColumn { return s.chunks }

func (s *Series) locate(i int) (ChunkColumn, int) {
	off := i
	for _, c := range s.chunks {
		if off < c.Len() {
			return c, off
		}
		off -= c.Len()
	}
	panic(errors.Wrapf(ErrIndexOutOfRange, "row %d of series %q with %d rows", i, s.name, s.length))
}

func (s *Series) IsNull(i int) bool {
	c, off := s.locate(i)
	return c.IsNull(off)
}

// Get returns the value at row i, or nil when it is null.
func (s *Series) Get(i int) any {
	c, off := s.locate(i)
	return c.GetAny(off)
}

func (s *Series) NullCount() int {
	count := 0
	for _, c := range s.chunks {
		count += c.NullCount()
	}
	return count
}

func (s *Series) Values() []any {
	res := make([]any, 0, s.length)
	for _, c := range s.chunks {
		for i := 0; i < c.Len(); i++ {
			res = append(res, c.GetAny(i))
		}
	}
	return res
}

func (s *Series) WithName(name string) *Series {
	return &Series{name: name, typ: s.typ, chunks: s.chunks, length: s.length}
}

func (s *Series) Rename(name string) Column { return s.WithName(name) }

// Slice returns the rows [offset, offset+length). Windows reaching past the
// end are truncated.
func (s *Series) Slice(offset, length int) *Series {
	offset, length = clampWindow(offset, length, s.length)

	var chunks []ChunkColumn
	pos := 0
	end := offset + length
	for _, c := range s.chunks {
		cStart, cEnd := pos, pos+c.Len()
		pos = cEnd
		if cEnd <= offset || cStart >= end {
			continue
		}
		from := max(offset, cStart) - cStart
		to := min(end, cEnd) - cStart
		chunks = append(chunks, c.Slice(from, to))
	}
	if len(chunks) == 0 {
		chunks = []ChunkColumn{NewNullChunk(s.typ, 0)}
	}
	return &Series{name: s.name, typ: s.typ, chunks: chunks, length: length}
}

func clampWindow(offset, length, total int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if length < 0 {
		length = 0
	}
	if offset+length > total {
		length = total - offset
	}
	return offset, length
}

// Append returns a series holding the rows of s followed by the rows of
// other. A Null-typed side takes the type of the other side.
func (s *Series) Append(other *Series) (*Series, error) {
	left, right := s, other
	switch {
	case left.typ == right.typ:
	case left.typ == ColumnTypeNull:
		left = NewNullSeries(left.name, right.typ, left.length)
	case right.typ == ColumnTypeNull:
		right = NewNullSeries(right.name, left.typ, right.length)
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "cannot append %s series %q to %s series %q",
			right.typ, right.name, left.typ, left.name)
	}

	chunks := make([]ChunkColumn, 0, len(left.chunks)+len(right.chunks))
	for _, c := range append(left.chunks[:len(left.chunks):len(left.chunks)], right.chunks...) {
		if c.Len() > 0 {
			chunks = append(chunks, c)
		}
	}
	if len(chunks) == 0 {
		chunks = append(chunks, NewNullChunk(left.typ, 0))
	}
	return &Series{name: s.name, typ: left.typ, chunks: chunks, length: left.length + right.length}, nil
}

// Rechunk returns the series stored as a single contiguous chunk.
func (s *Series) Rechunk() *Series {
	if len(s.chunks) == 1 {
		return s
	}

	totalDataSize := 0
	for _, c := range s.chunks {
		if vCol, ok := c.(*VarcharChunkColumn); ok {
			totalDataSize += len(vCol.Data)
		}
	}

	merged := CloneEmpty(s.chunks[0], s.length, totalDataSize)
	currentRow := 0
	for _, c := range s.chunks {
		c.CopyTo(merged, currentRow)
		currentRow += c.Len()
	}
	return &Series{name: s.name, typ: s.typ, chunks: []ChunkColumn{merged}, length: s.length}
}

func (s *Series) NullLike(n int) *Series {
	return NewNullSeries(s.name, s.typ, n)
}

// Sum adds up the non-null elements as float64. ok is false when there is
// no non-null element.
func (s *Series) Sum() (sum float64, ok bool, err error) {
	switch s.typ {
	case ColumnTypeNull:
		return 0, false, nil
	case ColumnTypeInt64, ColumnTypeUInt64, ColumnTypeFloat64, ColumnTypeBoolean:
	default:
		return 0, false, errors.Wrapf(ErrTypeMismatch, "cannot sum %s series %q", s.typ, s.name)
	}

	values, valid, err := s.Float64Values()
	if err != nil {
		return 0, false, err
	}
	for i, v := range values {
		if valid[i] {
			sum += v
			ok = true
		}
	}
	return sum, ok, nil
}

// Float64Values casts the series to Float64 and returns its values with a
// validity flag per row.
func (s *Series) Float64Values() ([]float64, []bool, error) {
	casted, err := s.Cast(ColumnTypeFloat64)
	if err != nil {
		return nil, nil, err
	}
	col := casted.Rechunk().chunks[0].(*Float64ChunkColumn)
	return col.Values, validity(col), nil
}

// BoolValues returns the values of a Boolean series with a validity flag per
// row. A Null series yields all-invalid rows.
func (s *Series) BoolValues() ([]bool, []bool, error) {
	if s.typ == ColumnTypeNull {
		return make([]bool, s.length), make([]bool, s.length), nil
	}
	if s.typ != ColumnTypeBoolean {
		return nil, nil, errors.Wrapf(ErrTypeMismatch, "series %q is %s, expected BOOLEAN", s.name, s.typ)
	}
	col := s.Rechunk().chunks[0].(*BooleanChunkColumn)
	return col.Values, validity(col), nil
}

func validity(c ChunkColumn) []bool {
	valid := make([]bool, c.Len())
	for i := range valid {
		valid[i] = !c.IsNull(i)
	}
	return valid
}

// NewSeries builds a single-chunk series of the given type. nil values are
// nulls; other values must convert to typ without loss.
func NewSeries(name string, typ ColumnType, values []any) (*Series, error) {
	b, err := newChunkBuilder(typ, len(values), false)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if !b.Append(v) {
			return nil, errors.Wrapf(ErrTypeMismatch, "series %q: value %v (%T) at row %d is not %s", name, v, v, i, typ)
		}
	}
	return NewSeriesFromChunk(name, b.Build()), nil
}

// NewNullSeries returns n null rows of the given type.
func NewNullSeries(name string, typ ColumnType, n int) *Series {
	return NewSeriesFromChunk(name, NewNullChunk(typ, n))
}

func NewSeriesFromChunk(name string, chunk ChunkColumn) *Series {
	return &Series{name: name, typ: chunk.GetType(), chunks: []ChunkColumn{chunk}, length: chunk.Len()}
}

// NewSeriesFromChunks assembles a series of type typ from existing chunks.
func NewSeriesFromChunks(name string, typ ColumnType, chunks []ChunkColumn) (*Series, error) {
	length := 0
	for i, c := range chunks {
		if c.GetType() != typ {
			return nil, errors.Wrapf(ErrTypeMismatch, "series %q: chunk %d is %s, expected %s", name, i, c.GetType(), typ)
		}
		length += c.Len()
	}
	if len(chunks) == 0 {
		chunks = []ChunkColumn{NewNullChunk(typ, 0)}
	}
	return &Series{name: name, typ: typ, chunks: chunks, length: length}, nil
}

func NewInt64Series(name string, values []int64) *Series {
	return NewSeriesFromChunk(name, NewInt64Column(values))
}

func NewUInt64Series(name string, values []uint64) *Series {
	return NewSeriesFromChunk(name, NewUInt64Column(values))
}

func NewFloat64Series(name string, values []float64) *Series {
	return NewSeriesFromChunk(name, NewFloat64Column(values))
}

func NewBooleanSeries(name string, values []bool) *Series {
	return NewSeriesFromChunk(name, NewBooleanColumn(values))
}

func NewVarcharSeries(name string, values []string) *Series {
	return NewSeriesFromChunk(name, VarcharChunkColumnFromStrings(values))
}
