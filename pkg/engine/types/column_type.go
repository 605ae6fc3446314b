package types

import "github.com/cockroachdb/errors"

type ColumnType int

const (
	ColumnTypeNull ColumnType = iota
	ColumnTypeBoolean
	ColumnTypeInt64
	ColumnTypeUInt64
	ColumnTypeFloat64
	ColumnTypeVarchar
	ColumnTypeStruct
)

func (t ColumnType) String() string {
	var toString = map[ColumnType]string{
		ColumnTypeNull:    "NULL",
		ColumnTypeBoolean: "BOOLEAN",
		ColumnTypeInt64:   "INT64",
		ColumnTypeUInt64:  "UINT64",
		ColumnTypeFloat64: "FLOAT64",
		ColumnTypeVarchar: "VARCHAR",
		ColumnTypeStruct:  "STRUCT",
	}
	stringVal, ok := toString[t]
	if !ok {
		return "UNKNOWN"
	}
	return stringVal
}

func ColumnTypeFromString(name string) (ColumnType, error) {
	var fromString = map[string]ColumnType{
		"NULL":    ColumnTypeNull,
		"BOOLEAN": ColumnTypeBoolean,
		"INT64":   ColumnTypeInt64,
		"UINT64":  ColumnTypeUInt64,
		"FLOAT64": ColumnTypeFloat64,
		"VARCHAR": ColumnTypeVarchar,
		"STRUCT":  ColumnTypeStruct,
	}
	t, ok := fromString[name]
	if !ok {
		return 0, errors.Errorf("unknown column type: %s", name)
	}
	return t, nil
}

// IsNumeric reports whether values of the type take part in arithmetic.
func (t ColumnType) IsNumeric() bool {
	return t == ColumnTypeInt64 || t == ColumnTypeUInt64 || t == ColumnTypeFloat64
}

func (t ColumnType) IsInteger() bool {
	return t == ColumnTypeInt64 || t == ColumnTypeUInt64
}

// NumericSupertype returns the type both operands are cast to before an
// arithmetic or comparison kernel runs. Null adopts the other side.
func NumericSupertype(a, b ColumnType) (ColumnType, error) {
	if a == ColumnTypeNull {
		a, b = b, a
	}
	if b == ColumnTypeNull {
		if a == ColumnTypeNull || a.IsNumeric() {
			return a, nil
		}
		return 0, errors.Wrapf(ErrTypeMismatch, "%s is not numeric", a)
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return 0, errors.Wrapf(ErrTypeMismatch, "expected numeric operands, got %s and %s", a, b)
	}
	switch {
	case a == ColumnTypeFloat64 || b == ColumnTypeFloat64:
		return ColumnTypeFloat64, nil
	case a == ColumnTypeUInt64 && b == ColumnTypeUInt64:
		return ColumnTypeUInt64, nil
	default:
		return ColumnTypeInt64, nil
	}
}
