package operators

import "tomyframe/pkg/engine/types"

type Operator interface {
	Close()
	NextBatch() (*types.ChunkResult, error)
}
