// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error values that carry context:
// what operation failed, which file or module was involved, and what
// the operator can do about it.
package issue

import (
	"errors"
	"strings"
)

// ActionableError is an error with context for user-facing error
// messages.
//
// Use the ErrorContext builder for convenient construction:
//
//	err := issue.NewErrorContext().
//		WithOperation("stage module").
//		WithResource(stagingDir).
//		WithSuggestion("Check directory permissions").
//		Wrap(originalErr).
//		Build()
type ActionableError struct {
	// Operation describes what was being attempted (e.g., "stage module").
	Operation string
	// Resource identifies the file, path, or module involved (optional).
	Resource string
	// Suggestions provides hints on how to fix the issue (optional).
	Suggestions []string
	// Cause is the underlying error that triggered this error (optional).
	Cause error
}

// ErrorContext is a builder for constructing ActionableError instances.
type ErrorContext struct {
	operation   string
	resource    string
	suggestions []string
	cause       error
}

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WithOperation sets the failed operation.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the involved resource.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends a fix suggestion.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.suggestions = append(c.suggestions, s)
	return c
}

// Wrap records the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build constructs the ActionableError.
func (c *ErrorContext) Build() *ActionableError {
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// Error implements the error interface. Returns a concise message
// suitable for default (non-verbose) output.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause error for use with errors.Is/As.
func (e *ActionableError) Unwrap() error { return e.Cause }

// Format renders the error for display. In verbose mode the full cause
// chain is shown; suggestions are listed either way.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if verbose && e.Cause != nil {
		for cause := errors.Unwrap(e.Cause); cause != nil; cause = errors.Unwrap(cause) {
			msg.WriteString("\n  caused by: ")
			msg.WriteString(cause.Error())
		}
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	return msg.String()
}
