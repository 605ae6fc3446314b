package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameFromJSON(t *testing.T) {
	f, err := FrameFromJSON([]byte(`[
		{"id": 1, "score": 2, "name": "a", "meta": {"ok": true}},
		{"id": 2, "score": 2.5, "meta": null},
		{"id": 3, "score": null, "name": "c", "meta": {"ok": false}}
	]`))
	require.NoError(t, err)
	require.Equal(t, 3, f.Height())
	require.Equal(t, Schema{
		{"id", ColumnTypeInt64},
		{"score", ColumnTypeFloat64},
		{"name", ColumnTypeVarchar},
		{"meta", ColumnTypeStruct},
	}, f.Schema())

	row, err := f.Row(1)
	require.NoError(t, err)
	require.Equal(t, []any{int64(2), 2.5, nil, map[string]any{"ok": nil}}, row)
}

func TestFrameFromJSONErrors(t *testing.T) {
	_, err := FrameFromJSON([]byte(`{"id": 1}`))
	require.Error(t, err)

	_, err = FrameFromJSON([]byte(`[{"id": 1}, {"id": "x"}]`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.ErrorIs(t, err, ErrTypeMismatch)
}
