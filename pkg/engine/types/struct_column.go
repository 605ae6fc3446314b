package types

import (
	"github.com/cockroachdb/errors"
)

// StructColumn groups named sub-columns of equal length under one name.
type StructColumn struct {
	name   string
	fields []Column
	length int
}

func NewStructColumn(name string, fields ...Column) (*StructColumn, error) {
	if len(fields) == 0 {
		return nil, errors.Newf("struct column %q needs at least one field", name)
	}
	seen := make(map[string]struct{}, len(fields))
	length := fields[0].Len()
	for _, f := range fields {
		if _, ok := seen[f.GetName()]; ok {
			return nil, errors.Newf("struct column %q has duplicate field %q", name, f.GetName())
		}
		seen[f.GetName()] = struct{}{}
		if f.Len() != length {
			return nil, errors.Wrapf(ErrLengthMismatch, "struct column %q: field %q has %d rows, expected %d",
				name, f.GetName(), f.Len(), length)
		}
	}
	return &StructColumn{name: name, fields: fields, length: length}, nil
}

func (c *StructColumn) GetName() string     { return c.name }
func (c *StructColumn) GetType() ColumnType { return ColumnTypeStruct }
func (c *StructColumn) Len() int            { return c.length }
func (c *StructColumn) NumFields() int      { return len(c.fields) }

func (c *StructColumn) NChunks() int {
	n := 0
	for _, f := range c.fields {
		n = max(n, f.NChunks())
	}
	return n
}

// Get returns the row as a map from field name to value.
func (c *StructColumn) Get(i int) any {
	row := make(map[string]any, len(c.fields))
	for _, f := range c.fields {
		row[f.GetName()] = f.Get(i)
	}
	return row
}

func (c *StructColumn) Rename(name string) Column {
	return &StructColumn{name: name, fields: c.fields, length: c.length}
}

// Field returns the sub-column with the given name.
func (c *StructColumn) Field(name string) (Column, error) {
	for _, f := range c.fields {
		if f.GetName() == name {
			return f, nil
		}
	}
	return nil, errors.Wrapf(ErrTypeMismatch, "struct column %q has no field %q (fields: %v)", c.name, name, c.FieldNames())
}

func (c *StructColumn) FieldNames() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.GetName()
	}
	return names
}

func (c *StructColumn) Fields() []Column {
	res := make([]Column, len(c.fields))
	copy(res, c.fields)
	return res
}

func (c *StructColumn) Slice(offset, length int) *StructColumn {
	offset, length = clampWindow(offset, length, c.length)
	fields := make([]Column, len(c.fields))
	for i, f := range c.fields {
		fields[i] = SliceColumn(f, offset, length)
	}
	return &StructColumn{name: c.name, fields: fields, length: length}
}

// Append stacks other below c. Both must have the same field names in the
// same order.
func (c *StructColumn) Append(other *StructColumn) (*StructColumn, error) {
	if len(c.fields) != len(other.fields) {
		return nil, errors.Wrapf(ErrTypeMismatch, "cannot append struct %q with fields %v to struct %q with fields %v",
			other.name, other.FieldNames(), c.name, c.FieldNames())
	}
	fields := make([]Column, len(c.fields))
	for i, f := range c.fields {
		if f.GetName() != other.fields[i].GetName() {
			return nil, errors.Wrapf(ErrTypeMismatch, "cannot append struct %q with fields %v to struct %q with fields %v",
				other.name, other.FieldNames(), c.name, c.FieldNames())
		}
		merged, err := AppendColumn(f, other.fields[i])
		if err != nil {
			return nil, err
		}
		fields[i] = merged
	}
	return &StructColumn{name: c.name, fields: fields, length: c.length + other.length}, nil
}

func (c *StructColumn) Rechunk() *StructColumn {
	fields := make([]Column, len(c.fields))
	for i, f := range c.fields {
		fields[i] = RechunkColumn(f)
	}
	return &StructColumn{name: c.name, fields: fields, length: c.length}
}

// NullLike returns n rows with the same field layout where every leaf is null.
func (c *StructColumn) NullLike(n int) *StructColumn {
	fields := make([]Column, len(c.fields))
	for i, f := range c.fields {
		fields[i] = NullColumnLike(f, n)
	}
	return &StructColumn{name: c.name, fields: fields, length: n}
}
