package operators

import (
	"github.com/cockroachdb/errors"
	"github.com/kelindar/bitmap"

	"tomyframe/pkg/engine/types"
)

// FilterBatchColumns keeps only the rows at indices, in that order.
func FilterBatchColumns(frame *types.Frame, indices []int) (*types.Frame, error) {
	columns := frame.Columns()
	result := make([]types.Column, len(columns))
	for i, col := range columns {
		filtered, err := filterColumn(col, indices)
		if err != nil {
			return nil, err
		}
		result[i] = filtered
	}
	return types.NewFrameWithHeight(len(indices), result...)
}

func filterColumn(col types.Column, indices []int) (types.Column, error) {
	switch c := col.(type) {
	case *types.StructColumn:
		fields := c.Fields()
		for i, f := range fields {
			filtered, err := filterColumn(f, indices)
			if err != nil {
				return nil, err
			}
			fields[i] = filtered
		}
		return types.NewStructColumn(c.GetName(), fields...)
	case *types.Series:
		chunk, err := filterChunk(c.Rechunk().Chunks()[0], indices)
		if err != nil {
			return nil, err
		}
		return types.NewSeriesFromChunk(c.GetName(), chunk), nil
	default:
		return nil, errors.Newf("unsupported column type in filterColumn: %T", col)
	}
}

func filterChunk(chunk types.ChunkColumn, indices []int) (types.ChunkColumn, error) {
	switch c := chunk.(type) {
	case *types.Int64ChunkColumn:
		return keepOnlyIndices(c, indices), nil
	case *types.UInt64ChunkColumn:
		return keepOnlyIndices(c, indices), nil
	case *types.Float64ChunkColumn:
		return keepOnlyIndices(c, indices), nil
	case *types.BooleanChunkColumn:
		return keepOnlyIndices(c, indices), nil
	case *types.VarcharChunkColumn:
		return filterBatchVarcharColumn(c, indices), nil
	case *types.NullChunkColumn:
		return &types.NullChunkColumn{Length: len(indices)}, nil
	default:
		return nil, errors.Newf("unsupported chunk type in filterChunk: %T", chunk)
	}
}

func keepOnlyIndices[T types.Primitive](c *types.PrimitiveChunkColumn[T], indices []int) *types.PrimitiveChunkColumn[T] {
	newVals := make([]T, len(indices))
	var nulls bitmap.Bitmap
	for j, idx := range indices {
		newVals[j] = c.Values[idx]
		if c.IsNull(idx) {
			nulls.Set(uint32(j))
		}
	}
	return types.NewPrimitiveColumn(newVals, nulls)
}

func filterBatchVarcharColumn(col *types.VarcharChunkColumn, indices []int) *types.VarcharChunkColumn {
	totalDataSize := 0
	for _, idx := range indices {
		totalDataSize += int(col.NextOffset(idx) - col.Offsets[idx])
	}

	newData := make([]byte, 0, totalDataSize)
	newOffsets := make([]uint64, len(indices))
	var nulls bitmap.Bitmap

	for j, idx := range indices {
		start := col.Offsets[idx]
		end := col.NextOffset(idx)

		chunk := col.Data[start:end]

		newOffsets[j] = uint64(len(newData))
		newData = append(newData, chunk...)
		if col.IsNull(idx) {
			nulls.Set(uint32(j))
		}
	}

	return &types.VarcharChunkColumn{Offsets: newOffsets, Data: newData, Nulls: nulls}
}

// MergeChunkResultsWithinOneSchema stacks batches of the same schema and
// stores every column as a single chunk.
func MergeChunkResultsWithinOneSchema(chunks []*types.ChunkResult, workers int) (*types.ChunkResult, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	merged := chunks[0].Frame
	for _, chunk := range chunks[1:] {
		var err error
		merged, err = merged.VStack(chunk.Frame)
		if err != nil {
			return nil, err
		}
	}

	return &types.ChunkResult{
		Frame: merged.Rechunk(workers),
	}, nil
}
