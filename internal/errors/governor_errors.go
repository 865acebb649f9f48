package errors

import (
	"fmt"
)

// ErrorCategory represents different types of errors that can occur
type ErrorCategory string

const (
	// Critical errors that should stop the session
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// Errors surfaced to the caller but recoverable
	ErrorCategoryStorage    ErrorCategory = "STORAGE"
	ErrorCategoryValidation ErrorCategory = "VALIDATION"
)

// GovernorError represents a categorized error with context
type GovernorError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Retryable  bool
}

// Error implements the error interface
func (e *GovernorError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s in %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s in %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *GovernorError) Unwrap() error {
	return e.Underlying
}

// IsRetryable returns whether this error can be retried
func (e *GovernorError) IsRetryable() bool {
	return e.Retryable
}

// IsFatal returns whether this error should stop the session
func (e *GovernorError) IsFatal() bool {
	return e.Category == ErrorCategoryConfiguration
}

// WrapError wraps an existing error with governor error context
func WrapError(err error, category ErrorCategory, component, operation string) *GovernorError {
	if err == nil {
		return nil
	}

	return &GovernorError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Retryable:  category == ErrorCategoryStorage,
	}
}

// NewConfigurationError reports invalid or missing configuration; never retryable
func NewConfigurationError(component, operation, message string) *GovernorError {
	return &GovernorError{
		Category:  ErrorCategoryConfiguration,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// NewValidationError reports invalid inputs that cannot be evaluated
func NewValidationError(component, operation, message string) *GovernorError {
	return &GovernorError{
		Category:  ErrorCategoryValidation,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// NewStorageError wraps a persistence read/write failure
func NewStorageError(component, operation string, err error) *GovernorError {
	return WrapError(err, ErrorCategoryStorage, component, operation)
}
