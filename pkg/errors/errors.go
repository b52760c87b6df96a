package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeProvider indicates the text-generation provider failed
	ErrorTypeProvider ErrorType = "PROVIDER"

	// ErrorTypeSubmission indicates the video provider rejected a job submission
	ErrorTypeSubmission ErrorType = "SUBMISSION"

	// ErrorTypeUpstreamContract indicates the video provider returned a malformed completion
	ErrorTypeUpstreamContract ErrorType = "UPSTREAM_CONTRACT"

	// ErrorTypePollFailed indicates the video provider reported the job as failed
	ErrorTypePollFailed ErrorType = "POLL_FAILED"

	// ErrorTypePollTimeout indicates the polling ceiling was exceeded without a terminal state
	ErrorTypePollTimeout ErrorType = "POLL_TIMEOUT"

	// ErrorTypeStorage indicates an upload failure after exhausting fallback
	ErrorTypeStorage ErrorType = "STORAGE"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType of err if it is (or wraps) an AppError,
// and ErrorTypeInternal otherwise.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewProviderError creates a new text-generation provider error
func NewProviderError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeProvider,
		Message: message,
		Err:     err,
	}
}

// NewSubmissionError creates a new video job submission error
func NewSubmissionError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSubmission,
		Message: message,
		Err:     err,
	}
}

// NewUpstreamContractError creates a new upstream contract error
func NewUpstreamContractError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstreamContract,
		Message: message,
	}
}

// NewPollFailedError creates a new poll failure error carrying provider detail
func NewPollFailedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypePollFailed,
		Message: message,
		Err:     err,
	}
}

// NewPollTimeoutError creates a new poll timeout error
func NewPollTimeoutError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypePollTimeout,
		Message: message,
	}
}

// NewStorageError creates a new storage error
func NewStorageError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}
