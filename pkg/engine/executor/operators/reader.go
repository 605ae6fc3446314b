package operators

import (
	"tomyframe/pkg/engine/types"
)

// FrameReaderOperator yields an in-memory frame in batches of ChunkSize
// rows. An empty frame still yields one empty batch so that the schema
// reaches the collector.
type FrameReaderOperator struct {
	Source    *types.Frame
	ChunkSize int

	offset  int
	emitted bool
}

func NewFrameReaderOperator(source *types.Frame, chunkSize int) *FrameReaderOperator {
	return &FrameReaderOperator{
		Source:    source,
		ChunkSize: chunkSize,
	}
}

func (r *FrameReaderOperator) Close() {
	r.Source = nil
}

func (r *FrameReaderOperator) NextBatch() (*types.ChunkResult, error) {
	if r.Source == nil {
		return nil, nil
	}
	if r.offset >= r.Source.Height() && r.emitted {
		return nil, nil
	}

	size := r.ChunkSize
	if size <= 0 {
		size = r.Source.Height()
	}
	batch := r.Source.Slice(r.offset, size)
	r.offset += batch.Height()
	r.emitted = true

	return &types.ChunkResult{Frame: batch}, nil
}
