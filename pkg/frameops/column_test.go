package frameops_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"tomyframe/pkg/engine/types"
	"tomyframe/pkg/frameops"
)

func TestLift(t *testing.T) {
	normalize := frameops.Lift(frameops.Normalize)

	t.Run("series", func(t *testing.T) {
		res, ok, err := normalize(types.NewFloat64Series("x", []float64{1, 3}))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []any{0.25, 0.75}, types.ColumnValues(res))
	})

	t.Run("single field struct", func(t *testing.T) {
		st, err := types.NewStructColumn("s", types.NewFloat64Series("x", []float64{1, 1}))
		require.NoError(t, err)

		res, ok, err := normalize(st)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []any{0.5, 0.5}, types.ColumnValues(res))
	})

	t.Run("not applicable", func(t *testing.T) {
		st, err := types.NewStructColumn("s",
			types.NewFloat64Series("x", []float64{1}),
			types.NewFloat64Series("y", []float64{2}),
		)
		require.NoError(t, err)

		res, ok, err := normalize(st)
		require.NoError(t, err)
		require.False(t, ok)
		require.Nil(t, res)
	})

	t.Run("failure", func(t *testing.T) {
		_, ok, err := normalize(types.NewVarcharSeries("x", []string{"a"}))
		require.False(t, ok)
		require.True(t, errors.Is(err, types.ErrTypeMismatch))
	})
}

func TestNullifyFields(t *testing.T) {
	mask := mustSeries(t, "m", types.ColumnTypeBoolean, true, false, nil)

	t.Run("series values", func(t *testing.T) {
		st, err := types.NewStructColumn("s", types.NewInt64Series("v", []int64{10, 20, 30}), mask)
		require.NoError(t, err)

		res, ok, err := frameops.NullifyFields(st)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "v", res.GetName())
		require.Equal(t, []any{int64(10), nil, nil}, types.ColumnValues(res))
	})

	t.Run("struct values", func(t *testing.T) {
		inner, err := types.NewStructColumn("v", types.NewVarcharSeries("name", []string{"a", "b", "c"}))
		require.NoError(t, err)
		st, err := types.NewStructColumn("s", inner, mask)
		require.NoError(t, err)

		res, ok, err := frameops.NullifyFields(st)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, types.ColumnTypeStruct, res.GetType())
		require.Equal(t, map[string]any{"name": "a"}, res.Get(0))
		require.Equal(t, map[string]any{"name": nil}, res.Get(1))
	})

	t.Run("not a struct", func(t *testing.T) {
		_, _, err := frameops.NullifyFields(mask)
		require.True(t, errors.Is(err, types.ErrTypeMismatch))
	})

	t.Run("mask not boolean", func(t *testing.T) {
		st, err := types.NewStructColumn("s",
			types.NewInt64Series("v", []int64{1}),
			types.NewInt64Series("m", []int64{1}),
		)
		require.NoError(t, err)
		_, _, err = frameops.NullifyFields(st)
		require.True(t, errors.Is(err, types.ErrTypeMismatch))
	})
}
