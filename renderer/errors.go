package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatting matches every *FormattingError.
	ErrFormatting = errors.New("formatting error")
	// ErrStructure matches every *StructureError.
	ErrStructure = errors.New("structure error")

	errMissing = errors.New("missing")
)

// FormattingError reports a required scalar field of a report that is missing or invalid.
type FormattingError struct {
	Field string // path of the field, like "symbols.AAA.total"
	Err   error
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("report field %q: %v", e.Field, e.Err)
}

func (e *FormattingError) Unwrap() []error { return []error{ErrFormatting, e.Err} }

// StructureError reports a mapping of a report that is missing or malformed.
type StructureError struct {
	Field string
	Err   error
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("report structure %q: %v", e.Field, e.Err)
}

func (e *StructureError) Unwrap() []error { return []error{ErrStructure, e.Err} }
