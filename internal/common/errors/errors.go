// Package errors provides the standardized error taxonomy for the readiness
// check service.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeInvalidInput marks an answer outside [0,100] or a malformed
	// answer set reaching the scoring engine. A contract violation by the
	// caller, not a user-facing failure.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodePreconditionFailed marks a submission attempted before all ten
	// answers exist.
	ErrCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"

	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"

	// ErrCodeSinkWriteFailed marks a sink that rejected or was unreachable
	// after the retry budget was exhausted.
	ErrCodeSinkWriteFailed ErrorCode = "SINK_WRITE_FAILED"

	// ErrCodeSinkMisconfigured marks an absent sink target or credentials.
	// Submission is disabled proactively rather than attempted and failed.
	ErrCodeSinkMisconfigured ErrorCode = "SINK_MISCONFIGURED"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// NewInvalidInputError creates a non-retryable scoring contract error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Answer set is malformed or out of range",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPreconditionFailedError creates a non-retryable completion error.
func NewPreconditionFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePreconditionFailed,
		Message:   "All ten questions must be answered before submission",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError creates a non-retryable session lookup error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSinkWriteFailedError wraps the last underlying cause after the retry
// budget is spent. The record may or may not have reached the store; the
// caller must not assume a partial write.
func NewSinkWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSinkWriteFailed,
		Message:   "Failed to append the response row to the external store",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSinkMisconfiguredError creates a non-retryable configuration error.
func NewSinkMisconfiguredError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSinkMisconfigured,
		Message:   "Submission sink is not configured",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreFailedError creates a retryable session persistence error.
func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// GetCode extracts the ErrorCode from any error, or empty string when the
// error is not a StandardError.
func GetCode(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsRetryable reports whether the operation that produced err may be retried.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// WithMetadata attaches structured context to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}
