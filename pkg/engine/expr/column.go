package expr

import (
	"fmt"

	"tomyframe/pkg/engine/types"
)

type ColumnRefExpr struct {
	ColName string
}

func Col(name string) *ColumnRefExpr {
	return &ColumnRefExpr{ColName: name}
}

func (e *ColumnRefExpr) String() string { return fmt.Sprintf("col(%q)", e.ColName) }

func (e *ColumnRefExpr) GetUsedColumns() []string {
	return []string{e.ColName}
}

func (e *ColumnRefExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	return frame.Column(e.ColName)
}
