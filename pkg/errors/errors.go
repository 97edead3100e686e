package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes. The upstream-facing codes cover the three failure
// classes a portal action can hit: the transport failing outright, the server
// answering with a non-2xx status, and the server answering 200 with
// success:false.
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrInternal
	ErrNetwork
	ErrHTTPStatus
	ErrUpstream
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Common errors
func NotFound(resource string, err error) *AppError {
	return NewNotFound(resource, err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

// Network wraps a failed round trip (DNS, refused connection, timeout).
func Network(err error) *AppError {
	return &AppError{
		Code:    ErrNetwork,
		Message: "network error",
		Err:     err,
	}
}

// HTTPStatus wraps a non-2xx response from the clinic server.
func HTTPStatus(status int) *AppError {
	return &AppError{
		Code:    ErrHTTPStatus,
		Message: fmt.Sprintf("unexpected status %d", status),
	}
}

// Upstream wraps an application-level refusal (success:false) and carries
// the server's message verbatim so the UI can surface it.
func Upstream(message string) *AppError {
	if message == "" {
		message = "unknown error"
	}
	return &AppError{
		Code:    ErrUpstream,
		Message: message,
	}
}

// IsUpstream reports whether err is a success:false refusal.
func IsUpstream(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrUpstream
}

// Message extracts the user-facing message from an error, preferring the
// server-supplied text carried by an AppError.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrNetwork
}
