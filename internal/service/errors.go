package service

import "errors"

type ErrorCode string

const (
	ErrorCodeValidation    ErrorCode = "validation"
	ErrorCodeUnauthorized  ErrorCode = "unauthorized"
	ErrorCodeForbidden     ErrorCode = "forbidden"
	ErrorCodeNotFound      ErrorCode = "not_found"
	ErrorCodeConflict      ErrorCode = "conflict"
	ErrorCodeUnprocessable ErrorCode = "unprocessable"
	ErrorCodeInternal      ErrorCode = "internal"
)

// Error carries the failure taxonomy from the service layer up to the HTTP
// boundary, where the code is mapped to a status and the message becomes the
// response detail string.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code ErrorCode, message string) error {
	return &Error{Code: code, Message: message}
}

func NewValidationError(message string) error {
	return NewError(ErrorCodeValidation, message)
}

func NewUnauthorizedError(message string) error {
	return NewError(ErrorCodeUnauthorized, message)
}

func NewForbiddenError(message string) error {
	return NewError(ErrorCodeForbidden, message)
}

func NewNotFoundError(message string) error {
	return NewError(ErrorCodeNotFound, message)
}

func NewConflictError(message string) error {
	return NewError(ErrorCodeConflict, message)
}

func NewUnprocessableError(message string) error {
	return NewError(ErrorCodeUnprocessable, message)
}

func AsServiceError(err error) (*Error, bool) {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}
