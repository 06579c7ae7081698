package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
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

// Is matches any AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrInvalidArgument
	ErrSlotUnavailable
	ErrStorageFailure
	ErrUnauthorized
	ErrInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "not_found"
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrSlotUnavailable:
		return "slot_unavailable"
	case ErrStorageFailure:
		return "storage_failure"
	case ErrUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// HTTPStatus maps the code onto the transport status.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidArgument:
		return http.StatusBadRequest
	case ErrSlotUnavailable:
		return http.StatusConflict
	case ErrStorageFailure:
		return http.StatusServiceUnavailable
	case ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func InvalidArgument(message string, err error) *AppError {
	return &AppError{
		Code:    ErrInvalidArgument,
		Message: message,
		Err:     err,
	}
}

func SlotUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrSlotUnavailable,
		Message: "no professional available for the requested slot",
		Err:     err,
	}
}

func StorageFailure(err error) *AppError {
	return &AppError{
		Code:    ErrStorageFailure,
		Message: "storage unavailable",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf returns the code of the first AppError in the chain, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// As is errors.As, re-exported so callers need only this package.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
