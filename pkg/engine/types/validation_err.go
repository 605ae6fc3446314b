package types

import (
	"fmt"
	"strings"
)

// ValidationError collects every problem found while checking a frame, a
// plan or a configuration, so that they can be reported together.
type ValidationError struct {
	Problems []ErrWithCtx
}

type ErrWithCtx struct {
	Error   string
	Context string

	cause error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		if p.Context == "" {
			msgs[i] = p.Error
			continue
		}
		msgs[i] = fmt.Sprintf("%s: %s", p.Context, p.Error)
	}
	return fmt.Sprintf("validation failed with %d problems: %s", len(e.Problems), strings.Join(msgs, "; "))
}

// Unwrap exposes the underlying errors so errors.Is can match sentinels.
func (e *ValidationError) Unwrap() []error {
	var causes []error
	for _, p := range e.Problems {
		if p.cause != nil {
			causes = append(causes, p.cause)
		}
	}
	return causes
}

func (e *ValidationError) Add(err string, context string) {
	e.Problems = append(e.Problems, ErrWithCtx{
		Error:   err,
		Context: context,
	})
}

func (e *ValidationError) AddErr(err error, context string) {
	e.Problems = append(e.Problems, ErrWithCtx{
		Error:   err.Error(),
		Context: context,
		cause:   err,
	})
}

func (e *ValidationError) Extend(other error) {
	if other == nil {
		return
	}
	switch otherErr := other.(type) {
	case *ValidationError:
		e.Problems = append(e.Problems, otherErr.Problems...)
	default:
		e.AddErr(other, "")
	}
}

func (e *ValidationError) HasProblems() bool {
	return len(e.Problems) > 0
}

// ErrOrNil returns e when it holds problems and nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if !e.HasProblems() {
		return nil
	}
	return e
}

func NewVErr(err string, context string) error {
	return &ValidationError{
		Problems: []ErrWithCtx{
			{
				Error:   err,
				Context: context,
			},
		},
	}
}
