package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

type Field struct {
	Name string
	Type ColumnType
}

// Schema is the ordered list of a frame's column names and types.
type Schema []Field

func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

func (s Schema) Index(name string) int {
	for i, f := range s {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Frame is an ordered set of equally long, uniquely named columns.
type Frame struct {
	columns []Column
	height  int
}

// NewFrame validates that column names are distinct and that all columns
// have the same length. Every problem is reported in one ValidationError.
func NewFrame(columns ...Column) (*Frame, error) {
	height := 0
	if len(columns) > 0 {
		height = columns[0].Len()
	}
	return NewFrameWithHeight(height, columns...)
}

// NewFrameWithHeight is NewFrame for frames that may have no columns but
// still carry a row count.
func NewFrameWithHeight(height int, columns ...Column) (*Frame, error) {
	verr := &ValidationError{}
	seen := make(map[string]struct{}, len(columns))
	for i, c := range columns {
		if c == nil {
			verr.Add("column is nil", fmt.Sprintf("column %d", i))
			continue
		}
		if _, ok := seen[c.GetName()]; ok {
			verr.Add("duplicate column name", c.GetName())
		}
		seen[c.GetName()] = struct{}{}
		if c.Len() != height {
			verr.AddErr(errors.Wrapf(ErrLengthMismatch, "has %d rows, expected %d", c.Len(), height), c.GetName())
		}
	}
	if verr.HasProblems() {
		return nil, verr
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Frame{columns: cols, height: height}, nil
}

func (f *Frame) Height() int { return f.height }
func (f *Frame) Width() int  { return len(f.columns) }

func (f *Frame) Columns() []Column {
	res := make([]Column, len(f.columns))
	copy(res, f.columns)
	return res
}

func (f *Frame) ColumnAt(i int) Column { return f.columns[i] }

func (f *Frame) Column(name string) (Column, error) {
	for _, c := range f.columns {
		if c.GetName() == name {
			return c, nil
		}
	}
	return nil, errors.Wrapf(ErrColumnNotFound, "%q", name)
}

func (f *Frame) Schema() Schema {
	schema := make(Schema, len(f.columns))
	for i, c := range f.columns {
		schema[i] = Field{Name: c.GetName(), Type: c.GetType()}
	}
	return schema
}

// Slice returns rows [offset, offset+length); the window is truncated at
// the end of the frame.
func (f *Frame) Slice(offset, length int) *Frame {
	offset, length = clampWindow(offset, length, f.height)
	cols := make([]Column, len(f.columns))
	for i, c := range f.columns {
		cols[i] = SliceColumn(c, offset, length)
	}
	return &Frame{columns: cols, height: length}
}

// VStack returns the rows of f followed by the rows of other. Both frames
// must have the same column names in the same order; column types must
// match, except that Null columns take the type of the other side.
func (f *Frame) VStack(other *Frame) (*Frame, error) {
	if f.Width() != other.Width() {
		return nil, errors.Wrapf(ErrTypeMismatch, "cannot stack frame with columns %v onto frame with columns %v",
			other.Schema().Names(), f.Schema().Names())
	}
	cols := make([]Column, len(f.columns))
	for i, c := range f.columns {
		o := other.columns[i]
		if c.GetName() != o.GetName() {
			return nil, errors.Wrapf(ErrTypeMismatch, "cannot stack column %q onto column %q", o.GetName(), c.GetName())
		}
		merged, err := AppendColumn(c, o)
		if err != nil {
			return nil, err
		}
		cols[i] = merged
	}
	return &Frame{columns: cols, height: f.height + other.height}, nil
}

// Rechunk returns a frame whose columns are each stored as one chunk. At
// most workers columns are merged concurrently; workers <= 0 means no limit.
func (f *Frame) Rechunk(workers int) *Frame {
	cols := make([]Column, len(f.columns))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, c := range f.columns {
		g.Go(func() error {
			cols[i] = RechunkColumn(c)
			return nil
		})
	}
	_ = g.Wait()
	return &Frame{columns: cols, height: f.height}
}

// NChunks returns the largest chunk count among the columns.
func (f *Frame) NChunks() int {
	n := 0
	for _, c := range f.columns {
		n = max(n, c.NChunks())
	}
	return n
}

// Replace swaps the contents of f with those of other.
func (f *Frame) Replace(other *Frame) {
	f.columns = other.columns
	f.height = other.height
}

func (f *Frame) Clone() *Frame {
	return &Frame{columns: f.Columns(), height: f.height}
}

// NullLike returns n rows with the schema of f where every value is null.
func (f *Frame) NullLike(n int) *Frame {
	cols := make([]Column, len(f.columns))
	for i, c := range f.columns {
		cols[i] = NullColumnLike(c, n)
	}
	return &Frame{columns: cols, height: n}
}

// WithColumn returns a frame where col replaces the column of the same name,
// or is appended when no such column exists.
func (f *Frame) WithColumn(col Column) (*Frame, error) {
	if col.Len() != f.height && len(f.columns) > 0 {
		return nil, errors.Wrapf(ErrLengthMismatch, "column %q has %d rows, frame has %d", col.GetName(), col.Len(), f.height)
	}
	cols := f.Columns()
	replaced := false
	for i, c := range cols {
		if c.GetName() == col.GetName() {
			cols[i] = col
			replaced = true
		}
	}
	if !replaced {
		cols = append(cols, col)
	}
	return &Frame{columns: cols, height: col.Len()}, nil
}

// Row returns the values of row i in column order.
func (f *Frame) Row(i int) ([]any, error) {
	if i < 0 || i >= f.height {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "row %d of frame with %d rows", i, f.height)
	}
	row := make([]any, len(f.columns))
	for j, c := range f.columns {
		row[j] = c.Get(i)
	}
	return row, nil
}
