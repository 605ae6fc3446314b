package executor

import (
	"tomyframe/pkg/engine/executor/operators"
	"tomyframe/pkg/engine/planner"
	"tomyframe/pkg/engine/types"
)

func (e *Executor) executeSelect(p *planner.SelectPlan) (*types.Frame, error) {
	var lastOp operators.Operator = operators.NewFrameReaderOperator(p.Source, e.chunkSize)

	if p.QueryDef.WhereExpr != nil {
		lastOp = operators.NewFilterTransformationOperator(lastOp, p.QueryDef.WhereExpr)

		lastOp = &operators.FilterOperator{
			Child: lastOp,
		}
	}

	// projections may aggregate over whole columns
	lastOp = operators.NewBarrierOperator(lastOp, e.rechunkWorkers)

	lastOp = &operators.TransformationOperator{
		Child:       lastOp,
		Expressions: p.QueryDef.SelectExpr,
		KeepInput:   p.QueryDef.KeepInput,
	}

	if p.QueryDef.Limit >= 0 {
		lastOp = operators.NewLimitOperator(lastOp, p.QueryDef.Limit)
	}

	defer lastOp.Close()
	res, err := operators.CollectAllBatches(lastOp, e.rechunkWorkers)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("select executed",
		"source_rows", p.Source.Height(),
		"rows", res.Height(),
		"columns", res.Width())
	return res, nil
}
