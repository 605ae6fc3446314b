package planner

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/types"
)

// PlanSelect checks def against the schema of source and resolves the
// projection. Every problem found is reported in a single ValidationError.
func PlanSelect(source *types.Frame, def *SelectQueryDefinition) (*SelectPlan, error) {
	if source == nil {
		return nil, errors.New("select needs a source frame")
	}
	if def == nil {
		def = &SelectQueryDefinition{Limit: -1}
	}

	queryDef, err := validateAndMapQuery(source.Schema(), def)
	if err != nil {
		return nil, err
	}

	return &SelectPlan{
		Source:   source,
		QueryDef: queryDef,
	}, nil
}

func validateAndMapQuery(schema types.Schema, def *SelectQueryDefinition) (*SelectQueryDefinition, error) {
	ve := &types.ValidationError{}

	for i, e := range def.SelectExpr {
		if e == nil {
			ve.Add("expression cannot be nil", fmt.Sprintf("SelectClause %d", i))
			continue
		}
		ve.Extend(validateColumnRefs(schema, e, fmt.Sprintf("SelectClause %d", i)))
	}
	if def.WhereExpr != nil {
		ve.Extend(validateColumnRefs(schema, def.WhereExpr, "WhereClause"))
	}
	if def.Limit < -1 {
		ve.Add(fmt.Sprintf("limit must be non-negative, got %d", def.Limit), "LimitClause")
	}

	if ve.HasProblems() {
		return nil, ve
	}

	return &SelectQueryDefinition{
		SelectExpr: projection(schema, def),
		KeepInput:  def.KeepInput,
		WhereExpr:  def.WhereExpr,
		Limit:      def.Limit,
	}, nil
}

func validateColumnRefs(schema types.Schema, e expr.Expression, context string) error {
	ve := &types.ValidationError{}
	for _, col := range e.GetUsedColumns() {
		if schema.Index(col) < 0 {
			ve.AddErr(errors.Wrapf(types.ErrColumnNotFound, "%q", col), context)
		}
	}
	return ve.ErrOrNil()
}

// projection resolves an empty plain projection to every input column.
func projection(schema types.Schema, def *SelectQueryDefinition) []expr.Expression {
	if len(def.SelectExpr) > 0 || def.KeepInput {
		return def.SelectExpr
	}

	res := make([]expr.Expression, len(schema))
	for i, f := range schema {
		res[i] = expr.Col(f.Name)
	}
	return res
}
