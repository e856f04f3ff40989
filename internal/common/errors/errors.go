// Package errors provides standardized error handling for the carrier portal.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Local validation
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Session / auth
	ErrCodeAuthTokenMissing ErrorCode = "AUTH_TOKEN_MISSING"
	ErrCodeAuthTokenExpired ErrorCode = "AUTH_TOKEN_EXPIRED"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// Upstream step submission
	ErrCodeStepRejected     ErrorCode = "STEP_REJECTED"
	ErrCodeTransportFailure ErrorCode = "TRANSPORT_FAILURE"
	ErrCodeSubmitTimeout    ErrorCode = "SUBMIT_TIMEOUT"
	ErrCodeServerError      ErrorCode = "SERVER_ERROR"

	// Progress persistence
	ErrCodeProgressLoadFailed ErrorCode = "PROGRESS_LOAD_FAILED"
	ErrCodeProgressSaveFailed ErrorCode = "PROGRESS_SAVE_FAILED"

	// Finalization and follow-up
	ErrCodeFinalizeFailed         ErrorCode = "FINALIZE_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewAuthTokenMissingError creates a fatal session error for an absent token.
func NewAuthTokenMissingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthTokenMissing,
		Message:   "No authentication token present",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthTokenExpiredError creates a fatal session error for an expired token.
func NewAuthTokenExpiredError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthTokenExpired,
		Message:   "Session has expired, please sign in again",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPermissionDeniedError creates a non-retryable authorization error.
func NewPermissionDeniedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePermissionDenied,
		Message:   "You do not have permission to perform this action",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStepRejectedError creates a non-retryable upstream rejection error.
func NewStepRejectedError(step int, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepRejected,
		Message:   "The server rejected the submitted step data",
		Details:   fmt.Sprintf("step: %d, %s", step, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportFailureError creates a retryable network-level error.
func NewTransportFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportFailure,
		Message:   "Connection problem, please check your network and try again",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmitTimeoutError creates a retryable timeout error for a step call.
func NewSubmitTimeoutError(step int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmitTimeout,
		Message:   "The request timed out",
		Details:   fmt.Sprintf("step: %d", step),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewServerError creates a retryable upstream 5xx error.
func NewServerError(statusCode int) *StandardError {
	return &StandardError{
		Code:      ErrCodeServerError,
		Message:   "Server error, please try again later",
		Details:   fmt.Sprintf("status: %d", statusCode),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProgressLoadFailedError creates a retryable progress store read error.
func NewProgressLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProgressLoadFailed,
		Message:   "Could not restore saved application progress",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProgressSaveFailedError creates a retryable progress store write error.
func NewProgressSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProgressSaveFailed,
		Message:   "Could not save application progress",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFinalizeFailedError creates a soft finalization error. Callers degrade to
// the confirmation view regardless.
func NewFinalizeFailedError(applicationID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFinalizeFailed,
		Message:   "Application finalization could not be confirmed",
		Details:   fmt.Sprintf("applicationId: %s, error: %s", applicationID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsAuthError reports whether the code is fatal to the wizard session.
func IsAuthError(code ErrorCode) bool {
	return code == ErrCodeAuthTokenMissing || code == ErrCodeAuthTokenExpired
}
