package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a DomainError so transports can map it to a status.
type ErrorCode string

const (
	ErrCodeValidation           ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden            ErrorCode = "FORBIDDEN"
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeConflict             ErrorCode = "CONFLICT"
	ErrCodeInvalidState         ErrorCode = "INVALID_STATE"
	ErrCodeInsufficientCapacity ErrorCode = "INSUFFICIENT_CAPACITY"
	ErrCodeUpstream             ErrorCode = "UPSTREAM_ERROR"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// DomainError is an error carrying a code and a client-safe message.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *DomainError) Unwrap() error { return e.Err }

// NewValidationError reports malformed or missing input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message}
}

// NewUnauthorizedError reports a missing or invalid identity.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Code: ErrCodeUnauthorized, Message: message}
}

// NewForbiddenError reports an authenticated caller lacking permission.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Code: ErrCodeForbidden, Message: message}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Err:     fmt.Errorf("%s %s", entity, id),
	}
}

// NewConflictError reports a uniqueness or concurrency conflict.
func NewConflictError(message string) *DomainError {
	return &DomainError{Code: ErrCodeConflict, Message: message}
}

// NewInvalidStateError reports a disallowed state transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// NewInsufficientCapacityError reports that a store cannot hold the requested bags.
func NewInsufficientCapacityError(message string) *DomainError {
	return &DomainError{Code: ErrCodeInsufficientCapacity, Message: message}
}

// NewUpstreamError wraps a failure of an external dependency.
func NewUpstreamError(message string, err error) *DomainError {
	return &DomainError{Code: ErrCodeUpstream, Message: message, Err: err}
}

// NewInternalError wraps an unexpected failure. Transports log it and answer
// with a generic message.
func NewInternalError(message string, err error) *DomainError {
	return &DomainError{Code: ErrCodeInternal, Message: message, Err: err}
}

// CodeOf returns the code of the first DomainError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
