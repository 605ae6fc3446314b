package expr

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/types"
)

// TernaryExpr picks Then where Cond is true and Else where it is false or
// null. Branch types are unified; a null literal branch takes the type of
// the other branch.
type TernaryExpr struct {
	Cond Expression
	Then Expression
	Else Expression
}

func (e *TernaryExpr) String() string {
	return fmt.Sprintf("when(%s).then(%s).otherwise(%s)", e.Cond, e.Then, e.Else)
}

func (e *TernaryExpr) GetUsedColumns() []string {
	return GetUsedColumnsFromExpressions([]Expression{e.Cond, e.Then, e.Else})
}

func (e *TernaryExpr) Evaluate(frame *types.Frame) (types.Column, error) {
	cond, err := evaluateSeries(e.Cond, frame)
	if err != nil {
		return nil, err
	}
	thenCol, err := e.Then.Evaluate(frame)
	if err != nil {
		return nil, err
	}
	elseCol, err := e.Else.Evaluate(frame)
	if err != nil {
		return nil, err
	}
	res, err := types.ZipWith(cond, thenCol, elseCol)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating %s", e)
	}
	return res, nil
}

type WhenBuilder struct {
	cond Expression
}

type ThenBuilder struct {
	cond Expression
	then Expression
}

// When starts a conditional: When(cond).Then(a).Otherwise(b).
func When(cond Expression) *WhenBuilder {
	return &WhenBuilder{cond: cond}
}

func (b *WhenBuilder) Then(e Expression) *ThenBuilder {
	return &ThenBuilder{cond: b.cond, then: e}
}

func (b *ThenBuilder) Otherwise(e Expression) *TernaryExpr {
	return &TernaryExpr{Cond: b.cond, Then: b.then, Else: e}
}
