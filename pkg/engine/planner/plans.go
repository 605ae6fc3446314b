package planner

import (
	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/types"
)

type PlanType int

const (
	PlanTypeSelect PlanType = iota
)

type QueryPlan interface {
	Type() PlanType
}

type SelectPlan struct {
	Source   *types.Frame
	QueryDef *SelectQueryDefinition
}

func (p *SelectPlan) Type() PlanType {
	return PlanTypeSelect
}

type SelectQueryDefinition struct {
	// SelectExpr is the projection. Empty means every input column.
	SelectExpr []expr.Expression
	// KeepInput makes SelectExpr extend the input columns instead of
	// replacing them; a result named like an input column replaces it.
	KeepInput bool
	WhereExpr expr.Expression
	// Limit caps the number of output rows; negative means no limit.
	Limit int
}
