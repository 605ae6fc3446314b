package types

import "github.com/cockroachdb/errors"

var (
	// ErrTypeMismatch is returned when a column's runtime type is not the one
	// an operation requires, including unknown struct fields.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrIndexOutOfRange is returned when a row index falls outside a frame.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrLengthMismatch is returned when columns that must line up row by row
	// have different lengths.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrColumnNotFound is returned when a frame has no column with the requested name.
	ErrColumnNotFound = errors.New("column not found")
)
