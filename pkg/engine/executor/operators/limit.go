package operators

import (
	"tomyframe/pkg/engine/types"
)

type LimitOperator struct {
	Child Operator
	Limit int

	count   int
	emitted bool
}

func NewLimitOperator(child Operator, limit int) *LimitOperator {
	return &LimitOperator{
		Child: child,
		Limit: limit,
		count: 0,
	}
}

func (op *LimitOperator) Close() {
	if op.Child != nil {
		op.Child.Close()
		op.Child = nil
	}
}

func (op *LimitOperator) NextBatch() (*types.ChunkResult, error) {
	// the first batch is always pulled so that a zero limit keeps the schema
	if op.count >= op.Limit && op.emitted {
		op.Close()
		return nil, nil
	}
	if op.Child == nil {
		return nil, nil
	}

	batch, err := op.Child.NextBatch()
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	op.emitted = true

	remaining := op.Limit - op.count
	if batch.RowCount() <= remaining {
		op.count += batch.RowCount()
		return batch, nil
	}

	op.count += remaining

	return &types.ChunkResult{
		Frame: batch.Frame.Slice(0, remaining),
	}, nil
}
