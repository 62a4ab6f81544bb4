package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrValidation   = errors.New("validation failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ParseError means the document structure was not recognized at all.
// It is fatal for that single document; Fragment carries the offending
// excerpt for diagnostics.
type ParseError struct {
	Vendor   string
	Message  string
	Fragment string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("parse %s: %s: %q", e.Vendor, e.Message, Excerpt(e.Fragment, 120))
	}
	return fmt.Sprintf("parse %s: %s", e.Vendor, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func NewParseError(vendor, message, fragment string) *ParseError {
	return &ParseError{Vendor: vendor, Message: message, Fragment: fragment}
}

// Excerpt truncates s for inclusion in error messages and logs.
func Excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
