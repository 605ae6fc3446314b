package operators

import (
	"tomyframe/pkg/engine/types"
)

// BarrierOperator drains its child and yields everything as one batch.
// Expressions evaluated above it see whole columns instead of batches.
type BarrierOperator struct {
	Child   Operator
	Workers int

	done bool
}

func NewBarrierOperator(child Operator, workers int) *BarrierOperator {
	return &BarrierOperator{Child: child, Workers: workers}
}

func (op *BarrierOperator) Close() {
	if op.Child != nil {
		op.Child.Close()
		op.Child = nil
	}
}

func (op *BarrierOperator) NextBatch() (*types.ChunkResult, error) {
	if op.done || op.Child == nil {
		return nil, nil
	}
	op.done = true

	frame, err := CollectAllBatches(op.Child, op.Workers)
	if err != nil {
		return nil, err
	}
	return &types.ChunkResult{Frame: frame}, nil
}
