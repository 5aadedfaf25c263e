package errors

import (
	"fmt"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryRegistry Category = "registry"
	CategorySchema   Category = "schema"
	CategoryConfig   Category = "config"
	CategorySnapshot Category = "snapshot"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// GlintError is a structured error with a code, a suggestion, and a
// documentation link.
type GlintError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (registry, schema, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation specific to this occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// New creates a GlintError from a registered code. Unknown codes
// produce a generic error rather than a panic so callers never have to
// defend against the table being out of date.
func New(code string) *GlintError {
	if def, ok := definitions[code]; ok {
		return &GlintError{
			Code:     code,
			Category: def.category,
			Message:  def.message,
			DocURL:   docBaseURL + strings.ToLower(code),
		}
	}
	return &GlintError{
		Code:    code,
		Message: "unknown error",
	}
}

// Newf creates an ad-hoc GlintError in a category, for conditions that
// have no registered code.
func Newf(category Category, format string, args ...any) *GlintError {
	return &GlintError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// WithDetail sets the occurrence-specific detail.
func (e *GlintError) WithDetail(detail string) *GlintError {
	e.Detail = detail
	return e
}

// WithDetailf sets a formatted detail.
func (e *GlintError) WithDetailf(format string, args ...any) *GlintError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion sets the fix hint.
func (e *GlintError) WithSuggestion(suggestion string) *GlintError {
	e.Suggestion = suggestion
	return e
}

// Wrap records the underlying cause.
func (e *GlintError) Wrap(err error) *GlintError {
	e.Wrapped = err
	return e
}

// Error implements the error interface.
func (e *GlintError) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *GlintError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a GlintError with the same code, so
// call sites can write errors.Is(err, errors.New("E003")).
func (e *GlintError) Is(target error) bool {
	t, ok := target.(*GlintError)
	return ok && t.Code == e.Code
}

// Format returns a multi-line human-readable rendering with the
// suggestion and documentation link. The CLI prints this form.
func (e *GlintError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ERROR %s: %s\n", e.Code, e.Message)
	if e.Detail != "" {
		fmt.Fprintf(&b, "\n  %s\n", e.Detail)
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "\n  Cause: %s\n", e.Wrapped.Error())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Hint: %s\n", e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "\n  Learn more: %s\n", e.DocURL)
	}
	return b.String()
}
