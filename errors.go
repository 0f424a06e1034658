package csvgears

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every error returned by this package matches exactly one of
// them with errors.Is, which is how the command line tools pick an exit status.
var (
	// ErrConfiguration indicates conflicting, missing or invalid options
	ErrConfiguration = errors.New("csvgears: invalid configuration")

	// ErrPatternCompile indicates a regular expression that does not compile
	ErrPatternCompile = errors.New("csvgears: cannot parse regular expression")

	// ErrUnknownColumn indicates a column name that is not present in the header
	ErrUnknownColumn = errors.New("csvgears: unknown column")

	// ErrResourceLoad indicates an external line list that could not be read
	ErrResourceLoad = errors.New("csvgears: cannot load resource")

	// ErrDuplicateColumn indicates a new column name that already exists in the header
	ErrDuplicateColumn = errors.New("csvgears: duplicate column")

	// ErrParse indicates malformed delimited input
	ErrParse = errors.New("csvgears: malformed input")

	// ErrIO indicates a failure of the underlying input or output stream
	ErrIO = errors.New("csvgears: i/o failure")
)

// UnknownColumnError lists every requested column name missing from the header.
type UnknownColumnError struct {
	Names []string
}

// Error implements error.
func (e *UnknownColumnError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = "'" + n + "'"
	}
	if len(quoted) == 1 {
		return fmt.Sprintf("Column %s is not present in the input.", quoted[0])
	}
	return fmt.Sprintf("Columns %s are not present in the input.", strings.Join(quoted, ", "))
}

// Unwrap returns ErrUnknownColumn.
func (e *UnknownColumnError) Unwrap() error { return ErrUnknownColumn }

// DuplicateColumnError reports a result column whose name is already taken.
type DuplicateColumnError struct {
	Name string
}

// Error implements error.
func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("Column '%s' is already present in the input.", e.Name)
}

// Unwrap returns ErrDuplicateColumn.
func (e *DuplicateColumnError) Unwrap() error { return ErrDuplicateColumn }

// ParseError reports where delimited input is malformed.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// classifyReadError maps an encoding/csv failure onto ErrParse or ErrIO.
func classifyReadError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Column: perr.Column, Err: perr.Err}
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// configError returns an ErrConfiguration wrapping a formatted message.
func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	Resource  string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, resource string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		Resource:  resource,
	}
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context. The result always matches
// ErrResourceLoad, and baseErr when it is non-nil.
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, ec.Operation+" failed")

	if ec.Resource != "" {
		parts = append(parts, "resource: "+ec.Resource)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrResourceLoad, context, baseErr)
	}
	return fmt.Errorf("%w: %s", ErrResourceLoad, context)
}
