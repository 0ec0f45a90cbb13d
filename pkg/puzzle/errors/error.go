package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes a puzzle failure.
type Kind string

const (
	KindMalformedEntry    Kind = "malformed_entry"    // Missing ": " separator
	KindMalformedRule     Kind = "malformed_rule"     // Rule text does not match the pattern
	KindIndexOutOfRange   Kind = "index_out_of_range" // Position beyond subject length
	KindInconsistentWidth Kind = "inconsistent_width" // Grid row width mismatch
	KindEmptyInput        Kind = "empty_input"        // No usable lines
	KindInvalidStride     Kind = "invalid_stride"     // Non-positive traversal step
	KindMalformedNumber   Kind = "malformed_number"   // Line is not a non-negative integer
	KindNoSolution        Kind = "no_solution"        // Search exhausted without an answer
	KindIO                Kind = "io"                 // Input could not be read
)

// Sentinels for use with errors.Is.
var (
	ErrMalformedEntry    = &Error{Kind: KindMalformedEntry}
	ErrMalformedRule     = &Error{Kind: KindMalformedRule}
	ErrIndexOutOfRange   = &Error{Kind: KindIndexOutOfRange}
	ErrInconsistentWidth = &Error{Kind: KindInconsistentWidth}
	ErrEmptyInput        = &Error{Kind: KindEmptyInput}
	ErrInvalidStride     = &Error{Kind: KindInvalidStride}
	ErrMalformedNumber   = &Error{Kind: KindMalformedNumber}
	ErrNoSolution        = &Error{Kind: KindNoSolution}
	ErrIO                = &Error{Kind: KindIO}
)

// Location identifies where in an input file an error occurred.
type Location struct {
	File string // Path to the input file, empty when parsing a string
	Line int    // Line number (1-based), 0 when unknown
}

// String returns "file:line", "line N" or "<unknown>".
func (l Location) String() string {
	switch {
	case l.File != "" && l.Line > 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	case l.File != "":
		return l.File
	case l.Line > 0:
		return fmt.Sprintf("line %d", l.Line)
	default:
		return "<unknown>"
	}
}

// IsValid returns true if the location names a line or a file.
func (l Location) IsValid() bool {
	return l.File != "" || l.Line > 0
}

// Error is a puzzle failure with its kind, location and offending field.
type Error struct {
	Kind     Kind
	Message  string
	Location Location
	Field    string // e.g. "min", "char", "second"; empty when not field specific
	Cause    error
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s]", e.Kind))
	if e.Location.IsValid() {
		sb.WriteString(" ")
		sb.WriteString(e.Location.String())
	}
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf(" (field %s)", e.Field))
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a puzzle error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithField returns a copy of e naming the offending field.
func (e *Error) WithField(field string) *Error {
	c := *e
	c.Field = field
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// At returns a copy of e located at the given file and line.
// An existing file is kept when file is empty.
func (e *Error) At(file string, line int) *Error {
	c := *e
	if file != "" {
		c.Location.File = file
	}
	c.Location.Line = line
	return &c
}

// KindOf returns the kind of err if it is (or wraps) a puzzle error.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
}

// ErrorList collects errors instead of failing on the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	if el.Count() == 1 {
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n", el.Count()))
	for _, err := range el.Errors {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByKind returns all errors of the given kind.
func (el *ErrorList) ByKind(kind Kind) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// HasKind returns true if the list contains at least one error of the given kind.
func (el *ErrorList) HasKind(kind Kind) bool {
	for _, err := range el.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// Is reports whether any collected error matches target.
func (el *ErrorList) Is(target error) bool {
	for _, err := range el.Errors {
		if err.Is(target) {
			return true
		}
	}
	return false
}
