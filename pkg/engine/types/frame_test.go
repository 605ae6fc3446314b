package types

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func sampleFrame(t *testing.T) *Frame {
	t.Helper()
	score, err := NewSeries("score", ColumnTypeFloat64, []any{1.5, nil, 3.5})
	require.NoError(t, err)
	f, err := NewFrame(NewInt64Series("id", []int64{1, 2, 3}), score)
	require.NoError(t, err)
	return f
}

func TestNewFrameValidation(t *testing.T) {
	_, err := NewFrame(
		NewInt64Series("a", []int64{1, 2}),
		NewInt64Series("a", []int64{1, 2}),
		NewInt64Series("b", []int64{1}),
	)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 2)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestFrameSliceAndRow(t *testing.T) {
	f := sampleFrame(t)
	require.Equal(t, Schema{{"id", ColumnTypeInt64}, {"score", ColumnTypeFloat64}}, f.Schema())

	tail := f.Slice(1, 10)
	require.Equal(t, 2, tail.Height())
	row, err := tail.Row(0)
	require.NoError(t, err)
	require.Equal(t, []any{int64(2), nil}, row)

	_, err = tail.Row(2)
	require.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestFrameVStack(t *testing.T) {
	f := sampleFrame(t)

	stacked, err := f.VStack(f.NullLike(1))
	require.NoError(t, err)
	require.Equal(t, 4, stacked.Height())
	require.Equal(t, f.Schema(), stacked.Schema())
	require.Equal(t, 2, stacked.NChunks())

	single := stacked.Rechunk(2)
	require.Equal(t, 1, single.NChunks())
	row, err := single.Row(3)
	require.NoError(t, err)
	require.Equal(t, []any{nil, nil}, row)

	other, err := NewFrame(NewInt64Series("score", []int64{1}), NewInt64Series("id", []int64{1}))
	require.NoError(t, err)
	_, err = f.VStack(other)
	require.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestFrameReplace(t *testing.T) {
	f := sampleFrame(t)
	before := f.Clone()
	f.Replace(f.Slice(0, 1))
	require.Equal(t, 1, f.Height())
	require.Equal(t, 3, before.Height())
}

func TestFrameColumnNotFound(t *testing.T) {
	_, err := sampleFrame(t).Column("missing")
	require.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestZeroWidthFrameKeepsHeight(t *testing.T) {
	f, err := NewFrameWithHeight(2)
	require.NoError(t, err)
	stacked, err := f.VStack(f.NullLike(1))
	require.NoError(t, err)
	require.Equal(t, 3, stacked.Height())
	require.Equal(t, 0, stacked.Width())
}
