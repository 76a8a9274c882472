package apperrors

import "fmt"

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UpstreamError is a failed call to the remote catalog API. Message is what
// the operator sees: the server's own message when it sent one.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(operation string, statusCode int, message string) *UpstreamError {
	return &UpstreamError{Operation: operation, StatusCode: statusCode, Message: message}
}

func WrapUpstreamError(operation, message string, err error) *UpstreamError {
	return &UpstreamError{Operation: operation, Message: message, Err: err}
}

type TimeoutError struct {
	Operation string
	Err       error
}

func (e *TimeoutError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("operation timed out: %s", e.Operation)
	}
	return "operation timed out"
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func NewTimeoutError(operation string, err error) *TimeoutError {
	return &TimeoutError{Operation: operation, Err: err}
}
