package types

// ChunkResult is one batch flowing through an operator pipeline.
type ChunkResult struct {
	Frame *Frame
	// Predicate is the hidden filter column computed for Frame; nil when the
	// batch is not being filtered.
	Predicate *Series
}

func (c *ChunkResult) RowCount() int {
	return c.Frame.Height()
}
