package operators

import (
	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/types"
)

// FilterOperator keeps the rows whose predicate is true; false and null
// rows are dropped.
type FilterOperator struct {
	Child Operator
}

func (op *FilterOperator) Close() {
	if op.Child != nil {
		op.Child.Close()
		op.Child = nil
	}
}

func (op *FilterOperator) NextBatch() (*types.ChunkResult, error) {
	batch, err := op.Child.NextBatch()
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if batch.Predicate == nil {
		return nil, errors.AssertionFailedf("filter received a batch without predicate")
	}

	values, valid, err := batch.Predicate.BoolValues()
	if err != nil {
		return nil, errors.Wrap(err, "where expression must return boolean")
	}

	passIndices := make([]int, 0, len(values))
	for i, v := range values {
		if valid[i] && v {
			passIndices = append(passIndices, i)
		}
	}

	if len(passIndices) == batch.RowCount() {
		return &types.ChunkResult{Frame: batch.Frame}, nil
	}

	filtered, err := FilterBatchColumns(batch.Frame, passIndices)
	if err != nil {
		return nil, err
	}
	return &types.ChunkResult{Frame: filtered}, nil
}
