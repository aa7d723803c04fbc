package errors

import "fmt"

type ErrorCode string

const (
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrCapacityReached            ErrorCode = "CAPACITY_REACHED"
	ErrConflict                   ErrorCode = "CONFLICT"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
	ErrCreateFailed               ErrorCode = "CREATE_FAILED"
	ErrGetFailed                  ErrorCode = "GET_FAILED"
	ErrUpdateFailed               ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed               ErrorCode = "DELETE_FAILED"
)

// AppError carries an application error code alongside the underlying cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is reports whether err is an *AppError with the given code.
func Is(err error, code ErrorCode) bool {
	if ae, ok := err.(*AppError); ok {
		return ae.Code == code
	}
	return false
}
