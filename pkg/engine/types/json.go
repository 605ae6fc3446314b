package types

import (
	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// jsonObject keeps the keys of a decoded object in document order.
type jsonObject struct {
	keys   []string
	values map[string]any
}

// FrameFromJSON builds a frame from a JSON array of objects. Columns appear
// in the order their keys are first seen. Integers become INT64 unless a
// float shows up in the same column, strings become VARCHAR, booleans
// BOOLEAN and nested objects STRUCT columns. Missing keys and JSON nulls are
// nulls.
func FrameFromJSON(data []byte) (*Frame, error) {
	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON frame")
	}
	if dataType != jsonparser.Array {
		return nil, errors.Newf("expected a JSON array of objects, got %s", dataType)
	}

	var rows []*jsonObject
	var parseErr error
	_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if parseErr != nil {
			return
		}
		if err != nil {
			parseErr = err
			return
		}
		if dataType != jsonparser.Object {
			parseErr = errors.Newf("row %d: expected an object, got %s", len(rows), dataType)
			return
		}
		obj, err := parseJSONObject(value)
		if err != nil {
			parseErr = errors.Wrapf(err, "row %d", len(rows))
			return
		}
		rows = append(rows, obj)
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON frame")
	}

	names, values := transpose(rows)
	verr := &ValidationError{}
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, err := columnFromJSONValues(name, values[name])
		if err != nil {
			verr.AddErr(err, name)
			continue
		}
		cols = append(cols, col)
	}
	if verr.HasProblems() {
		return nil, verr
	}
	return NewFrameWithHeight(len(rows), cols...)
}

func parseJSONObject(data []byte) (*jsonObject, error) {
	obj := &jsonObject{values: make(map[string]any)}
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		v, err := parseJSONValue(dataType, value)
		if err != nil {
			return errors.Wrapf(err, "key %q", key)
		}
		k := string(key)
		if _, ok := obj.values[k]; !ok {
			obj.keys = append(obj.keys, k)
		}
		obj.values[k] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (any, error) {
	switch dataType {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(data)
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err != nil {
			return jsonparser.ParseFloat(data)
		}
		return i, nil
	case jsonparser.String:
		return jsonparser.ParseString(data)
	case jsonparser.Object:
		return parseJSONObject(data)
	default:
		return nil, errors.Newf("unsupported JSON value of type %s", dataType)
	}
}

// transpose turns rows into per-key value lists, filling missing keys with nil.
func transpose(rows []*jsonObject) ([]string, map[string][]any) {
	var names []string
	values := make(map[string][]any)
	for i, row := range rows {
		for _, k := range row.keys {
			if _, ok := values[k]; !ok {
				names = append(names, k)
				values[k] = make([]any, len(rows))
			}
			values[k][i] = row.values[k]
		}
	}
	return names, values
}

func columnFromJSONValues(name string, values []any) (Column, error) {
	typ := ColumnTypeNull
	for i, v := range values {
		var vt ColumnType
		switch v.(type) {
		case nil:
			continue
		case bool:
			vt = ColumnTypeBoolean
		case int64:
			vt = ColumnTypeInt64
		case float64:
			vt = ColumnTypeFloat64
		case string:
			vt = ColumnTypeVarchar
		case *jsonObject:
			vt = ColumnTypeStruct
		}
		if vt == typ {
			continue
		}
		switch {
		case typ == ColumnTypeNull:
			typ = vt
		case typ.IsNumeric() && vt.IsNumeric():
			typ = ColumnTypeFloat64
		default:
			return nil, errors.Wrapf(ErrTypeMismatch, "row %d is %s, previous rows are %s", i, vt, typ)
		}
	}

	if typ != ColumnTypeStruct {
		return NewSeries(name, typ, values)
	}

	objects := make([]*jsonObject, len(values))
	for i, v := range values {
		if obj, ok := v.(*jsonObject); ok {
			objects[i] = obj
			continue
		}
		objects[i] = &jsonObject{}
	}
	fieldNames, fieldValues := transpose(objects)
	fields := make([]Column, len(fieldNames))
	for i, fieldName := range fieldNames {
		f, err := columnFromJSONValues(fieldName, fieldValues[fieldName])
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", fieldName)
		}
		fields[i] = f
	}
	return NewStructColumn(name, fields...)
}
