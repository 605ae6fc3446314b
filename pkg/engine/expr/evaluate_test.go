package expr_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/types"
)

func validate(t *testing.T, result interface{}, expected interface{}) {
	t.Helper()
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %v, got %v", expected, result)
	}
}

func evaluate(t *testing.T, e expr.Expression, frame *types.Frame) []any {
	t.Helper()
	col, err := e.Evaluate(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return types.ColumnValues(col)
}

func testFrame(t *testing.T) *types.Frame {
	t.Helper()
	frame, err := types.NewFrame(
		types.NewInt64Series("id", []int64{1, 2, 3}),
		types.NewInt64Series("value", []int64{10, 20, 30}),
		types.NewVarcharSeries("name", []string{"alice", "bob", "charlie"}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return frame
}

func TestEvaluateComplexExpressions(t *testing.T) {
	frame := testFrame(t)

	t.Run("Expr1: (id + 5) * value", func(t *testing.T) {
		expr1 := expr.Mul(expr.Add(expr.Col("id"), expr.Lit(5)), expr.Col("value"))
		validate(t, evaluate(t, expr1, frame), []any{int64(60), int64(140), int64(240)})
	})

	t.Run("Expr2: STRLEN(name) > 3", func(t *testing.T) {
		strlenExpr, err := expr.NewFunction(expr.FnStrLen, []expr.Expression{expr.Col("name")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		validate(t, evaluate(t, expr.Gt(strlenExpr, expr.Lit(3)), frame), []any{true, false, true})
	})

	t.Run("Expr3: CONCAT(UPPER(name), '_suffix')", func(t *testing.T) {
		upperExpr, _ := expr.NewFunction(expr.FnUpper, []expr.Expression{expr.Col("name")})
		expr3, err := expr.NewFunction(expr.FnConcat, []expr.Expression{upperExpr, expr.Lit("_suffix")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		validate(t, evaluate(t, expr3, frame), []any{"ALICE_suffix", "BOB_suffix", "CHARLIE_suffix"})
	})

	t.Run("Expr4: REPLACE(name, 'a', 'X')", func(t *testing.T) {
		replaceExpr, err := expr.NewFunction(expr.FnReplace, []expr.Expression{expr.Col("name"), expr.Lit("a"), expr.Lit("X")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		validate(t, evaluate(t, replaceExpr, frame), []any{"Xlice", "bob", "chXrlie"})
	})

	t.Run("Expr5: SomethingLonger", func(t *testing.T) {
		// (STRLEN(CONCAT(UPPER(name), '!!!')) + id >= 9)
		// AND (true OR false)
		// AND NOT (id = 0)
		// AND (LOWER(name) != 'empty')
		upperName, _ := expr.NewFunction(expr.FnUpper, []expr.Expression{expr.Col("name")})
		concatExpr, _ := expr.NewFunction(expr.FnConcat, []expr.Expression{upperName, expr.Lit("!!!")})
		strlenExpr, _ := expr.NewFunction(expr.FnStrLen, []expr.Expression{concatExpr})
		comp1 := expr.Ge(expr.Add(strlenExpr, expr.Col("id")), expr.Lit(9))
		validate(t, evaluate(t, comp1, frame), []any{true, false, true})

		logicOr := expr.Or(expr.Lit(true), expr.Lit(false))
		validate(t, evaluate(t, logicOr, frame), []any{true, true, true})

		notExpr := expr.Not(expr.Eq(expr.Col("id"), expr.Lit(0)))
		validate(t, evaluate(t, notExpr, frame), []any{true, true, true})

		lowerName, _ := expr.NewFunction(expr.FnLower, []expr.Expression{expr.Col("name")})
		neqExpr := expr.Neq(lowerName, expr.Lit("empty"))

		finalExpr := expr.And(expr.And(expr.And(comp1, logicOr), notExpr), neqExpr)
		validate(t, evaluate(t, finalExpr, frame), []any{true, false, true})
	})
}

func TestNullSemantics(t *testing.T) {
	a, err := types.NewSeries("a", types.ColumnTypeInt64, []any{4, nil, 9, 1})
	require.NoError(t, err)
	b, err := types.NewSeries("b", types.ColumnTypeInt64, []any{2, 3, 0, nil})
	require.NoError(t, err)
	flag, err := types.NewSeries("flag", types.ColumnTypeBoolean, []any{true, false, nil, nil})
	require.NoError(t, err)
	frame, err := types.NewFrame(a, b, flag)
	require.NoError(t, err)

	tests := []struct {
		name string
		e    expr.Expression
		want []any
	}{
		{"integer division by zero is null", expr.Div(expr.Col("a"), expr.Col("b")), []any{int64(2), nil, nil, nil}},
		{"float division follows IEEE", expr.Div(expr.Cast(expr.Col("a"), types.ColumnTypeFloat64), expr.Lit(2.0)), []any{2.0, nil, 4.5, 0.5}},
		{"comparison with null", expr.Lt(expr.Col("a"), expr.Col("b")), []any{false, nil, false, nil}},
		{"and", expr.And(expr.Col("flag"), expr.Lit(false)), []any{false, false, false, false}},
		{"or", expr.Or(expr.Col("flag"), expr.Lit(true)), []any{true, true, true, true}},
		{"and with null", expr.And(expr.Col("flag"), expr.Lit(true)), []any{true, false, nil, nil}},
		{"not", expr.Not(expr.Col("flag")), []any{false, true, nil, nil}},
		{"negate", expr.Neg(expr.Col("b")), []any{int64(-2), int64(-3), int64(0), nil}},
		{"is null", expr.IsNull(expr.Col("a")), []any{false, true, false, false}},
		{"fill null", expr.FillNull(expr.Col("a"), expr.Lit(-1)), []any{int64(4), int64(-1), int64(9), int64(1)}},
		{"clip min", expr.ClipMin(expr.Sub(expr.Col("b"), expr.Lit(2)), expr.Lit(0)), []any{int64(0), int64(1), int64(0), nil}},
		{
			"when then otherwise",
			expr.When(expr.Col("flag")).Then(expr.Col("a")).Otherwise(expr.Lit(nil)),
			[]any{int64(4), nil, nil, nil},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, evaluate(t, tt.e, frame))
		})
	}
}

func TestResultNames(t *testing.T) {
	frame := testFrame(t)

	col, err := expr.Add(expr.Col("id"), expr.Lit(1)).Evaluate(frame)
	require.NoError(t, err)
	require.Equal(t, "id", col.GetName())

	col, err = expr.Alias(expr.Col("id"), "renamed").Evaluate(frame)
	require.NoError(t, err)
	require.Equal(t, "renamed", col.GetName())
}

func TestStructExpressions(t *testing.T) {
	frame := testFrame(t)
	s := expr.AsStruct("s", expr.Col("id"), expr.Col("name"))

	col, err := expr.Field(s, "name").Evaluate(frame)
	require.NoError(t, err)
	require.Equal(t, []any{"alice", "bob", "charlie"}, types.ColumnValues(col))

	_, err = expr.Field(s, "missing").Evaluate(frame)
	require.ErrorIs(t, err, types.ErrTypeMismatch)

	_, err = expr.Field(expr.Col("id"), "x").Evaluate(frame)
	require.ErrorIs(t, err, types.ErrTypeMismatch)
}

func TestApply(t *testing.T) {
	frame := testFrame(t)
	toFloat := expr.Apply(expr.Col("id"), "identity", func(col types.Column) (types.Column, bool, error) {
		return col, true, nil
	}, expr.ToType(types.ColumnTypeFloat64))
	col, err := toFloat.Evaluate(frame)
	require.NoError(t, err)
	require.Equal(t, types.ColumnTypeFloat64, col.GetType())
	require.Equal(t, []any{1.0, 2.0, 3.0}, types.ColumnValues(col))

	skipped := expr.Apply(expr.AsStruct("s", expr.Col("id"), expr.Col("value")), "skip",
		func(col types.Column) (types.Column, bool, error) {
			return nil, false, nil
		}, expr.SameType())
	col, err = skipped.Evaluate(frame)
	require.NoError(t, err)
	require.Equal(t, types.ColumnTypeStruct, col.GetType())
}

func TestGetUsedColumnsFromExpressions(t *testing.T) {
	got := expr.GetUsedColumnsFromExpressions([]expr.Expression{
		expr.Add(expr.Col("value"), expr.Col("id")),
		expr.When(expr.Col("flag")).Then(expr.Col("id")).Otherwise(expr.Lit(nil)),
	})
	require.Equal(t, []string{"flag", "id", "value"}, got)
}
