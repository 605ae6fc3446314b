package executor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/planner"
	"tomyframe/pkg/engine/types"
)

func sourceFrame(t *testing.T) *types.Frame {
	t.Helper()
	score, err := types.NewSeries("score", types.ColumnTypeFloat64, []any{0.5, nil, 2.5, 4.0, 1.0})
	require.NoError(t, err)
	frame, err := types.NewFrame(types.NewInt64Series("id", []int64{1, 2, 3, 4, 5}), score)
	require.NoError(t, err)
	return frame
}

func TestExecuteSelect(t *testing.T) {
	source := sourceFrame(t)

	tests := []struct {
		name    string
		def     *planner.SelectQueryDefinition
		columns []string
		want    []any
	}{
		{
			name: "filter and project",
			def: &planner.SelectQueryDefinition{
				SelectExpr: []expr.Expression{expr.Col("id")},
				WhereExpr:  expr.Gt(expr.Col("score"), expr.Lit(0.75)),
				Limit:      -1,
			},
			columns: []string{"id"},
			want:    []any{[]any{int64(3), int64(4), int64(5)}},
		},
		{
			name: "limit across batches",
			def: &planner.SelectQueryDefinition{
				SelectExpr: []expr.Expression{expr.Alias(expr.Mul(expr.Col("id"), expr.Lit(10)), "x")},
				Limit:      3,
			},
			columns: []string{"x"},
			want:    []any{[]any{int64(10), int64(20), int64(30)}},
		},
		{
			name: "keep input",
			def: &planner.SelectQueryDefinition{
				SelectExpr: []expr.Expression{expr.Alias(expr.Lit(true), "flag")},
				KeepInput:  true,
				Limit:      1,
			},
			columns: []string{"id", "score", "flag"},
			want:    []any{[]any{int64(1)}, []any{0.5}, []any{true}},
		},
		{
			name: "everything filtered keeps schema",
			def: &planner.SelectQueryDefinition{
				WhereExpr: expr.Lt(expr.Col("id"), expr.Lit(0)),
				Limit:     -1,
			},
			columns: []string{"id", "score"},
			want:    []any{[]any{}, []any{}},
		},
		{
			name: "zero limit keeps schema",
			def: &planner.SelectQueryDefinition{
				Limit: 0,
			},
			columns: []string{"id", "score"},
			want:    []any{[]any{}, []any{}},
		},
	}

	for _, chunkSize := range []int{1, 2, 100} {
		ex := NewExecutor(chunkSize, 2, nil)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				plan, err := planner.PlanSelect(source, tt.def)
				require.NoError(t, err)

				res, err := ex.Execute(plan)
				require.NoError(t, err)
				require.LessOrEqual(t, res.NChunks(), 1)

				out := res.ToColumnarResult()
				require.Equal(t, tt.columns, out.ColumnNames)
				require.Equal(t, tt.want, out.Columns)
			})
		}
	}
}

func TestPlanSelectValidation(t *testing.T) {
	_, err := planner.PlanSelect(sourceFrame(t), &planner.SelectQueryDefinition{
		SelectExpr: []expr.Expression{expr.Col("missing")},
		WhereExpr:  expr.Col("other"),
		Limit:      -5,
	})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 3)
	require.ErrorIs(t, err, types.ErrColumnNotFound)
}

func TestProjectionSeesWholeColumn(t *testing.T) {
	rowCount := func(col types.Column) (types.Column, bool, error) {
		counts := make([]int64, col.Len())
		for i := range counts {
			counts[i] = int64(col.Len())
		}
		return types.NewInt64Series("n", counts), true, nil
	}
	def := &planner.SelectQueryDefinition{
		SelectExpr: []expr.Expression{expr.Apply(expr.Col("id"), "count", rowCount, expr.SameType())},
		WhereExpr:  expr.Gt(expr.Col("id"), expr.Lit(1)),
		Limit:      -1,
	}

	plan, err := planner.PlanSelect(sourceFrame(t), def)
	require.NoError(t, err)
	res, err := NewExecutor(1, 2, nil).Execute(plan)
	require.NoError(t, err)

	out := res.ToColumnarResult()
	require.Equal(t, []any{[]any{int64(4), int64(4), int64(4), int64(4)}}, out.Columns)
}
