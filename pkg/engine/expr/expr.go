package expr

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"tomyframe/pkg/engine/types"
)

// Expression is a lazily evaluated node producing one column per frame.
type Expression interface {
	Evaluate(frame *types.Frame) (types.Column, error)
	GetUsedColumns() []string
	String() string
}

// GetUsedColumnsFromExpressions returns the sorted set of columns referenced
// by any of exprs.
func GetUsedColumnsFromExpressions(exprs []Expression) []string {
	uniqueCols := make(map[string]struct{})
	for _, e := range exprs {
		for _, col := range e.GetUsedColumns() {
			uniqueCols[col] = struct{}{}
		}
	}
	res := maps.Keys(uniqueCols)
	slices.Sort(res)
	return res
}

// evaluateSeries evaluates e and requires the result to be a plain series.
func evaluateSeries(e Expression, frame *types.Frame) (*types.Series, error) {
	col, err := e.Evaluate(frame)
	if err != nil {
		return nil, err
	}
	s, ok := col.(*types.Series)
	if !ok {
		return nil, errors.Wrapf(types.ErrTypeMismatch, "%s evaluates to %s, expected a plain column", e, col.GetType())
	}
	if s.Len() != frame.Height() {
		return nil, errors.Wrapf(types.ErrLengthMismatch, "%s has %d rows, frame has %d", e, s.Len(), frame.Height())
	}
	return s, nil
}
