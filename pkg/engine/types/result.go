package types

// ColumnarResult is a column-major dump of a frame, one []any per column.
type ColumnarResult struct {
	RowCount    uint64   `json:"rowCount"`
	ColumnNames []string `json:"columnNames"`
	Columns     []any    `json:"columns"`
}

func (f *Frame) ToColumnarResult() *ColumnarResult {
	names := make([]string, len(f.columns))
	columns := make([]any, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.GetName()
		columns[i] = ColumnValues(c)
	}
	return &ColumnarResult{
		RowCount:    uint64(f.height),
		ColumnNames: names,
		Columns:     columns,
	}
}
