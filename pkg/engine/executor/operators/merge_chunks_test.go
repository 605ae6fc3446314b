package operators

import (
	"reflect"
	"testing"

	"tomyframe/pkg/engine/types"
)

func TestMergeChunkResultsWithinOneSchema(t *testing.T) {
	c1Row1Str := "Jacek"
	c1Row2Str := "Wrona"
	frame1, err := types.NewFrame(
		types.NewInt64Series("id", []int64{1, 2}),
		types.NewVarcharSeries("text", []string{c1Row1Str, c1Row2Str}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c2Row1Str := "foo"
	c2Row2Str := "bar_baz"
	frame2, err := types.NewFrame(
		types.NewInt64Series("id", []int64{3, 4}),
		types.NewVarcharSeries("text", []string{c2Row1Str, c2Row2Str}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks := []*types.ChunkResult{{Frame: frame1}, {Frame: frame2}}

	merged, err := MergeChunkResultsWithinOneSchema(chunks, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if merged.RowCount() != 4 {
		t.Errorf("invalid row count")
	}
	if merged.Frame.NChunks() != 1 {
		t.Errorf("expected a single chunk, got %d", merged.Frame.NChunks())
	}

	idCol := merged.Frame.ColumnAt(0).(*types.Series).Chunks()[0].(*types.Int64ChunkColumn)

	expectedIds := []int64{1, 2, 3, 4}
	if !reflect.DeepEqual(idCol.Values, expectedIds) {
		t.Errorf("not equal")
	}

	textCol := merged.Frame.ColumnAt(1).(*types.Series).Chunks()[0].(*types.VarcharChunkColumn)

	expectedStrings := []string{c1Row1Str, c1Row2Str, c2Row1Str, c2Row2Str}
	resultStrings := textCol.GetValuesAsString()

	if !reflect.DeepEqual(resultStrings, expectedStrings) {
		t.Errorf("not equal")
	}

	// 5+5+3+7
	if len(textCol.Data) != 20 {
		t.Errorf("expected data len 20, got %d", len(textCol.Data))
	}

	expectedOffsets := []uint64{0, 5, 10, 13}
	if !reflect.DeepEqual(textCol.Offsets, expectedOffsets) {
		t.Errorf("bad offsets")
	}
}

func TestFilterBatchColumnsKeepsNulls(t *testing.T) {
	vals, err := types.NewSeries("v", types.ColumnTypeVarchar, []any{"a", nil, "c", "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nums, err := types.NewSeries("n", types.ColumnTypeFloat64, []any{nil, 1.0, 2.0, nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame, err := types.NewFrame(vals, nums)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filtered, err := FilterBatchColumns(frame, []int{1, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := filtered.ToColumnarResult().Columns
	expected := []any{[]any{nil, "d"}, []any{1.0, nil}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}
