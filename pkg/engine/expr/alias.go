package expr

import (
	"fmt"

	"tomyframe/pkg/engine/types"
)

type AliasExpr struct {
	Inner Expression
	Name  string
}

func Alias(e Expression, name string) *AliasExpr {
	return &AliasExpr{Inner: e, Name: name}
}

func (e *AliasExpr) String() string           { return fmt.Sprintf("%s.alias(%q)", e.Inner, e.Name) }
func (e *AliasExpr) GetUsedColumns() []string { return e.Inner.GetUsedColumns() }

func (e *AliasExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	col, err := e.Inner.Evaluate(frame)
	if err != nil {
		return nil, err
	}
	return col.Rename(e.Name), nil
}

// CastExpr converts the inner result to To. Values that do not fit become
// null.
type CastExpr struct {
	Inner Expression
	To    types.ColumnType
}

func Cast(e Expression, to types.ColumnType) *CastExpr {
	return &CastExpr{Inner: e, To: to}
}

func (e *CastExpr) String() string           { return fmt.Sprintf("%s.cast(%s)", e.Inner, e.To) }
func (e *CastExpr) GetUsedColumns() []string { return e.Inner.GetUsedColumns() }

func (e *CastExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	s, err := evaluateSeries(e.Inner, frame)
	if err != nil {
		return nil, err
	}
	return s.Cast(e.To)
}
