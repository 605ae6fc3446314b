package operators

import (
	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/types"
)

type TransformationOperator struct {
	Child       Operator
	Expressions []expr.Expression
	IsFilter    bool // whether the transformation is used for filtering
	KeepInput   bool // results are added to the input columns instead of replacing them
}

func NewFilterTransformationOperator(child Operator, whereExpr expr.Expression) *TransformationOperator {
	return &TransformationOperator{
		Child:       child,
		Expressions: []expr.Expression{whereExpr},
		IsFilter:    true,
	}
}

func NewTransformationOperator(child Operator, expressions []expr.Expression) *TransformationOperator {
	return &TransformationOperator{
		Child:       child,
		Expressions: expressions,
		IsFilter:    false,
	}
}

func (op *TransformationOperator) Close() {
	if op.Child != nil {
		op.Child.Close()
		op.Child = nil
	}
	op.Expressions = nil
}

func (op *TransformationOperator) NextBatch() (*types.ChunkResult, error) {
	batch, err := op.Child.NextBatch()
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}

	newColumns := make([]types.Column, len(op.Expressions))
	for i, e := range op.Expressions {
		col, err := e.Evaluate(batch.Frame)
		if err != nil {
			return nil, err
		}
		newColumns[i] = col
	}

	if op.IsFilter {
		predicate, ok := newColumns[len(newColumns)-1].(*types.Series)
		if !ok {
			return nil, types.NewVErr("where expression must return a plain boolean column", "WhereClause")
		}
		return &types.ChunkResult{
			Frame:     batch.Frame,
			Predicate: predicate,
		}, nil
	}

	if op.KeepInput {
		frame := batch.Frame
		for _, col := range newColumns {
			if frame, err = frame.WithColumn(col); err != nil {
				return nil, err
			}
		}
		return &types.ChunkResult{Frame: frame}, nil
	}

	frame, err := types.NewFrameWithHeight(batch.RowCount(), newColumns...)
	if err != nil {
		return nil, err
	}
	return &types.ChunkResult{Frame: frame}, nil
}
