package frameops

import (
	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/expr"
	"tomyframe/pkg/engine/types"
)

// Lift turns a series transform into a column transform. Columns that do
// not reduce to a single series report ok=false and are left untouched.
func Lift(f SeriesFunc) expr.ColumnFunc {
	return func(col types.Column) (types.Column, bool, error) {
		s, ok := types.AsSeries(col)
		if !ok {
			return nil, false, nil
		}
		res, err := f(s)
		if err != nil {
			return nil, false, err
		}
		return res, true, nil
	}
}

// NullifyFields nullifies the first field of a struct column with its second
// field as the mask. Further fields are ignored.
func NullifyFields(col types.Column) (types.Column, bool, error) {
	st, ok := col.(*types.StructColumn)
	if !ok || st.NumFields() < 2 {
		return nil, false, columnError("nullify", col.GetName(),
			errors.Wrap(types.ErrTypeMismatch, "expected a struct of values and mask"))
	}
	fields := st.Fields()
	values, mask := fields[0], fields[1]

	maskSeries, ok := types.AsSeries(mask)
	if !ok {
		return nil, false, columnError("nullify", col.GetName(),
			errors.Wrapf(types.ErrTypeMismatch, "mask %q is a struct", mask.GetName()))
	}
	if s, ok := values.(*types.Series); ok {
		res, err := Nullify(s, maskSeries)
		if err != nil {
			return nil, false, err
		}
		return res, true, nil
	}

	// struct values are zipped field by field
	if t := maskSeries.GetType(); t != types.ColumnTypeBoolean && t != types.ColumnTypeNull {
		return nil, false, columnError("nullify", col.GetName(),
			errors.Wrapf(types.ErrTypeMismatch, "mask %q is %s, expected BOOLEAN", mask.GetName(), t))
	}
	res, err := types.ZipWith(maskSeries, values, types.NullColumnLike(values, values.Len()))
	if err != nil {
		return nil, false, columnError("nullify", col.GetName(), err)
	}
	return res, true, nil
}
