package utils

import "net/http"

type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound     = "NOT_FOUND"
	ErrDuplicate    = "DUPLICATE"
	ErrInvalidInput = "INVALID_INPUT"

	// User-specific errors
	ErrUserNotFound = "USER_NOT_FOUND"

	// Actor communication errors
	ErrActorTimeout = "ACTOR_TIMEOUT"

	// Rate limiting
	ErrTooManyRequests = "TOO_MANY_REQUESTS"

	ErrDatabase = "DATABASE_ERROR"
)

// Error creation helper functions
func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

func NewNotFoundError(what string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: what + " not found",
	}
}

func NewInvalidInputError(reason string) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Message: reason,
	}
}

func NewActorTimeoutError(actorName string) *AppError {
	return &AppError{
		Code:    ErrActorTimeout,
		Message: "Actor communication timeout: " + actorName,
	}
}

// Helper method to check if an error is of a specific type
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound, ErrUserNotFound:
		return http.StatusNotFound
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrDuplicate:
		return http.StatusConflict
	case ErrTooManyRequests:
		return http.StatusTooManyRequests
	case ErrDatabase, ErrActorTimeout:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
