package frameops

import (
	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/types"
)

// RowMutator adds, removes and windows the rows of a frame in place. A
// failed call leaves the frame unchanged. Implementations are not safe for
// concurrent use on the same frame.
type RowMutator interface {
	AddRow() error
	DeleteRow(row int) error
	FirstRowsTo(row int) error
	LastRowsFrom(row int) error
}

// Ext attaches the row mutations to a frame.
type Ext struct {
	*types.Frame
}

var _ RowMutator = Ext{}

func Extend(df *types.Frame) Ext { return Ext{Frame: df} }

func (e Ext) AddRow() error              { return AddRow(e.Frame) }
func (e Ext) DeleteRow(row int) error    { return DeleteRow(e.Frame, row) }
func (e Ext) FirstRowsTo(row int) error  { return FirstRowsTo(e.Frame, row) }
func (e Ext) LastRowsFrom(row int) error { return LastRowsFrom(e.Frame, row) }

// AddRow appends one row where every column holds a null of its own type.
// The frame is left as a single chunk.
func AddRow(df *types.Frame) error {
	stacked, err := df.VStack(df.NullLike(1))
	if err != nil {
		return rowError("add_row", df.Height(), err)
	}
	df.Replace(stacked.Rechunk(RechunkWorkers()))
	Logger().Debug("add_row", "height", df.Height(), "chunks", df.NChunks())
	return nil
}

// DeleteRow removes row and leaves the frame as a single chunk.
func DeleteRow(df *types.Frame, row int) error {
	height := df.Height()
	if row < 0 || row >= height {
		return rowError("delete_row", row,
			errors.Wrapf(types.ErrIndexOutOfRange, "frame has %d rows", height))
	}
	stacked, err := df.Slice(0, row).VStack(df.Slice(row+1, height))
	if err != nil {
		return rowError("delete_row", row, err)
	}
	df.Replace(stacked.Rechunk(RechunkWorkers()))
	Logger().Debug("delete_row", "row", row, "height", df.Height(), "chunks", df.NChunks())
	return nil
}

// FirstRowsTo keeps rows [0, row].
func FirstRowsTo(df *types.Frame, row int) error {
	if row < 0 || row >= df.Height() {
		return rowError("first_rows_to", row,
			errors.Wrapf(types.ErrIndexOutOfRange, "frame has %d rows", df.Height()))
	}
	df.Replace(df.Slice(0, row+1))
	Logger().Debug("first_rows_to", "row", row, "height", df.Height())
	return nil
}

// LastRowsFrom keeps rows [row, end). row may equal the height, which
// empties the frame.
func LastRowsFrom(df *types.Frame, row int) error {
	height := df.Height()
	if row < 0 || row > height {
		return rowError("last_rows_from", row,
			errors.Wrapf(types.ErrIndexOutOfRange, "frame has %d rows", height))
	}
	df.Replace(df.Slice(row, height))
	Logger().Debug("last_rows_from", "row", row, "height", df.Height())
	return nil
}
