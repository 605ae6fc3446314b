package frameops_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"tomyframe/pkg/engine"
	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/types"
	"tomyframe/pkg/frameops"
)

func scoresFrame(t *testing.T) *types.Frame {
	t.Helper()
	df, err := types.NewFrame(
		types.NewInt64Series("id", []int64{1, 2, 3, 4}),
		types.NewFloat64Series("score", []float64{-2, 1, 3, 4}),
		mustSeries(t, "keep", types.ColumnTypeBoolean, true, false, nil, true),
	)
	require.NoError(t, err)
	return df
}

func evaluate(t *testing.T, e expr.Expression, df *types.Frame) types.Column {
	t.Helper()
	col, err := e.Evaluate(df)
	require.NoError(t, err)
	return col
}

func TestDestruct(t *testing.T) {
	inner, err := types.NewStructColumn("a", types.NewInt64Series("b", []int64{5}))
	require.NoError(t, err)
	outer, err := types.NewStructColumn("s", inner)
	require.NoError(t, err)
	df, err := types.NewFrame(outer)
	require.NoError(t, err)

	col := evaluate(t, frameops.Destruct(expr.Col("s"), "a", "b"), df)
	require.Equal(t, "b", col.GetName())
	require.Equal(t, []any{int64(5)}, types.ColumnValues(col))

	// chained calls walk the same path
	col = evaluate(t, frameops.Destruct(frameops.Destruct(expr.Col("s"), "a"), "b"), df)
	require.Equal(t, []any{int64(5)}, types.ColumnValues(col))

	_, err = frameops.Destruct(expr.Col("s"), "a", "c").Evaluate(df)
	require.True(t, errors.Is(err, types.ErrTypeMismatch))

	_, err = frameops.Destruct(expr.Col("s"), "a", "b", "c").Evaluate(df)
	require.True(t, errors.Is(err, types.ErrTypeMismatch))
}

func TestHashExpr(t *testing.T) {
	df := scoresFrame(t)

	col := evaluate(t, frameops.HashExpr(expr.Col("id")), df)
	require.Equal(t, frameops.HashName, col.GetName())
	require.Equal(t, types.ColumnTypeUInt64, col.GetType())

	direct, err := frameops.Hash(types.NewInt64Series("id", []int64{1, 2, 3, 4}))
	require.NoError(t, err)
	require.Equal(t, direct.Values(), types.ColumnValues(col))
}

func TestNormalizeExpr(t *testing.T) {
	df := scoresFrame(t)

	col := evaluate(t, frameops.NormalizeExpr(expr.Col("id")), df)
	require.Equal(t, "id", col.GetName())
	require.Equal(t, types.ColumnTypeFloat64, col.GetType())
	require.Equal(t, []any{0.1, 0.2, 0.3, 0.4}, types.ColumnValues(col))
}

func TestNormalizeExprLeavesCompositeColumns(t *testing.T) {
	df := scoresFrame(t)
	packed := expr.AsStruct("pair", expr.Col("id"), expr.Col("score"))

	col := evaluate(t, frameops.NormalizeExpr(packed), df)
	require.Equal(t, types.ColumnTypeStruct, col.GetType())
	require.Equal(t, map[string]any{"id": int64(1), "score": -2.0}, col.Get(0))
}

func TestNullifyExpr(t *testing.T) {
	df := scoresFrame(t)
	want := []any{-2.0, nil, nil, 4.0}

	viaTernary := evaluate(t, frameops.NullifyExpr(expr.Col("score"), expr.Col("keep")), df)
	require.Equal(t, "score", viaTernary.GetName())
	require.Equal(t, types.ColumnTypeFloat64, viaTernary.GetType())
	require.Equal(t, want, types.ColumnValues(viaTernary))

	viaStruct := evaluate(t, frameops.NullifyStruct(expr.Col("score"), expr.Col("keep")), df)
	require.Equal(t, "score", viaStruct.GetName())
	require.Equal(t, want, types.ColumnValues(viaStruct))

	_, err := frameops.NullifyExpr(expr.Col("score"), expr.Col("id")).Evaluate(df)
	require.True(t, errors.Is(err, types.ErrTypeMismatch))
}

func TestRoundExpr(t *testing.T) {
	df, err := types.NewFrame(types.NewFloat64Series("x", []float64{0.125, 0.135, 1.25}))
	require.NoError(t, err)

	col := evaluate(t, frameops.RoundExpr(expr.Col("x"), 2), df)
	require.Equal(t, []any{0.12, 0.14, 1.25}, types.ColumnValues(col))
}

func TestConditionalCombinators(t *testing.T) {
	df := scoresFrame(t)
	score := expr.Col("score")

	tests := []struct {
		name string
		e    expr.Expression
		want []any
	}{
		{"clip off", frameops.ClipMinIf(score, false), []any{-2.0, 1.0, 3.0, 4.0}},
		{"clip on", frameops.ClipMinIf(score, true), []any{0.0, 1.0, 3.0, 4.0}},
		{"percent off", frameops.PercentIf(score, false), []any{-2.0, 1.0, 3.0, 4.0}},
		{"percent on", frameops.PercentIf(score, true), []any{-200.0, 100.0, 300.0, 400.0}},
		{"normalize off", frameops.NormalizeIf(score, false), []any{-2.0, 1.0, 3.0, 4.0}},
		{"normalize on", frameops.NormalizeIf(score, true), []any{-1.0 / 3, 1.0 / 6, 0.5, 2.0 / 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := evaluate(t, tt.e, df)
			require.Equal(t, "score", col.GetName())
			if diff := cmp.Diff(tt.want, types.ColumnValues(col)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	require.Same(t, score, frameops.ClipMinIf(score, false))
}

func TestChainedCombinatorsInLazyFrame(t *testing.T) {
	df := scoresFrame(t)

	share := frameops.On(expr.Col("score")).
		ClipMinIf(true).
		Normalize().
		PercentIf(true).
		Round(1).
		Alias("share")

	res, err := engine.Lazy(df).
		Filter(expr.Gt(expr.Col("id"), expr.Lit(1))).
		WithColumns(share, frameops.On(expr.Col("id")).Hash()).
		Collect()
	require.NoError(t, err)

	require.Equal(t, []string{"id", "score", "keep", "share", frameops.HashName}, res.Schema().Names())

	col, err := res.Column("share")
	require.NoError(t, err)
	require.Equal(t, []any{12.5, 37.5, 50.0}, types.ColumnValues(col))
}
