package frameops

import (
	"fmt"
	"strings"
)

// OpError reports a failed operation together with the column and row it
// was working on. Row is -1 and Column is empty when they do not apply.
type OpError struct {
	Op     string
	Column string
	Row    int
	Err    error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Err }

func columnError(op, column string, err error) error {
	return &OpError{Op: op, Column: column, Row: -1, Err: err}
}

func rowError(op string, row int, err error) error {
	return &OpError{Op: op, Row: row, Err: err}
}
