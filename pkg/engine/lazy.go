package engine

import (
	"tomyframe/pkg/config"
	"tomyframe/pkg/engine/executor"
	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/planner"
	"tomyframe/pkg/engine/types"
)

// LazyFrame records filters, projections and limits over a source frame and
// runs them on Collect. Each builder call returns a new LazyFrame.
type LazyFrame struct {
	source   *types.Frame
	steps    []*planner.SelectQueryDefinition
	executor *executor.Executor
}

func Lazy(df *types.Frame) *LazyFrame {
	cfg := config.Default()
	return &LazyFrame{
		source:   df,
		executor: executor.NewExecutor(cfg.ChunkSize, cfg.RechunkWorkers, nil),
	}
}

func (lf *LazyFrame) WithExecutor(ex *executor.Executor) *LazyFrame {
	return &LazyFrame{source: lf.source, steps: lf.steps, executor: ex}
}

// Filter keeps the rows where e is true.
func (lf *LazyFrame) Filter(e expr.Expression) *LazyFrame {
	return lf.then(func(last *planner.SelectQueryDefinition) bool {
		if last.WhereExpr != nil || len(last.SelectExpr) > 0 || last.KeepInput || last.Limit >= 0 {
			return false
		}
		last.WhereExpr = e
		return true
	}, &planner.SelectQueryDefinition{WhereExpr: e, Limit: -1})
}

// Select replaces the columns with the results of es.
func (lf *LazyFrame) Select(es ...expr.Expression) *LazyFrame {
	return lf.then(func(last *planner.SelectQueryDefinition) bool {
		if len(last.SelectExpr) > 0 || last.KeepInput || last.Limit >= 0 {
			return false
		}
		last.SelectExpr = es
		return true
	}, &planner.SelectQueryDefinition{SelectExpr: es, Limit: -1})
}

// WithColumns adds the results of es to the columns, replacing columns of
// the same name.
func (lf *LazyFrame) WithColumns(es ...expr.Expression) *LazyFrame {
	return lf.then(func(last *planner.SelectQueryDefinition) bool {
		if len(last.SelectExpr) > 0 || last.KeepInput || last.Limit >= 0 {
			return false
		}
		last.SelectExpr = es
		last.KeepInput = true
		return true
	}, &planner.SelectQueryDefinition{SelectExpr: es, KeepInput: true, Limit: -1})
}

func (lf *LazyFrame) Limit(n int) *LazyFrame {
	return lf.then(func(last *planner.SelectQueryDefinition) bool {
		if last.Limit >= 0 {
			return false
		}
		last.Limit = n
		return true
	}, &planner.SelectQueryDefinition{Limit: n})
}

// then folds a new step into the last one when merge accepts it, otherwise
// appends step.
func (lf *LazyFrame) then(merge func(last *planner.SelectQueryDefinition) bool, step *planner.SelectQueryDefinition) *LazyFrame {
	steps := make([]*planner.SelectQueryDefinition, len(lf.steps), len(lf.steps)+1)
	copy(steps, lf.steps)
	if n := len(steps); n > 0 {
		last := *steps[n-1]
		if merge(&last) {
			steps[n-1] = &last
			return &LazyFrame{source: lf.source, steps: steps, executor: lf.executor}
		}
	}
	steps = append(steps, step)
	return &LazyFrame{source: lf.source, steps: steps, executor: lf.executor}
}

// Collect executes the recorded steps and returns a single-chunk frame.
func (lf *LazyFrame) Collect() (*types.Frame, error) {
	frame := lf.source
	if len(lf.steps) == 0 {
		return frame.Clone(), nil
	}
	for _, step := range lf.steps {
		plan, err := planner.PlanSelect(frame, step)
		if err != nil {
			return nil, err
		}
		if frame, err = lf.executor.Execute(plan); err != nil {
			return nil, err
		}
	}
	return frame, nil
}
