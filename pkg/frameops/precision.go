//go:build precision

package frameops

import (
	"math"

	"github.com/shopspring/decimal"

	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/types"
)

// PrecisionFunc casts to FLOAT64 and quantizes every value to precision
// fractional digits, ties away from zero. NaN and infinities become null.
func PrecisionFunc(precision uint32) SeriesFunc {
	places := decimalPlaces(precision)
	return func(s *types.Series) (*types.Series, error) {
		casted, err := s.Cast(types.ColumnTypeFloat64)
		if err != nil {
			return nil, columnError("precision", s.GetName(), err)
		}
		chunk, err := types.PrimitiveChunk[float64](casted)
		if err != nil {
			return nil, columnError("precision", s.GetName(), err)
		}
		out := types.MapPrimitive(chunk, func(v float64) (float64, bool) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, false
			}
			return decimal.NewFromFloat(v).Round(places).InexactFloat64(), true
		})
		return types.NewSeriesFromChunk(s.GetName(), out), nil
	}
}

func PrecisionExpr(e expr.Expression, precision uint32) expr.Expression {
	return expr.Apply(e, "precision", Lift(PrecisionFunc(precision)), expr.ToType(types.ColumnTypeFloat64))
}

func (e Expr) Precision(precision uint32) Expr { return On(PrecisionExpr(e.Expression, precision)) }
