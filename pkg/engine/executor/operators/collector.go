package operators

import (
	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/types"
)

// CollectAllBatches drains op and merges the batches into one single-chunk
// frame. When every batch is empty the first one is returned so the schema
// survives.
func CollectAllBatches(op Operator, workers int) (*types.Frame, error) {
	var allChunks []*types.ChunkResult
	var template *types.Frame

	for {
		batch, err := op.NextBatch()
		if err != nil {
			return nil, err
		}
		if batch == nil {
			break
		}
		if template == nil {
			template = batch.Frame
		}
		if batch.RowCount() == 0 {
			continue
		}
		allChunks = append(allChunks, batch)
	}

	if len(allChunks) == 0 {
		if template == nil {
			return types.NewFrame()
		}
		return template.Rechunk(workers), nil
	}
	finalChunk, err := MergeChunkResultsWithinOneSchema(allChunks, workers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge all batches")
	}

	return finalChunk.Frame, nil
}
