package utils

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories the portal surfaces.
// Handlers map kinds to HTTP codes; services never retry on their own.
type ErrorKind string

const (
	KindDuplicateEmail     ErrorKind = "duplicate_email"
	KindPasswordMismatch   ErrorKind = "password_mismatch"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindNoSession          ErrorKind = "no_session"
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindNoFile             ErrorKind = "no_file"
	KindFileTooLarge       ErrorKind = "file_too_large"
	KindUnsupportedType    ErrorKind = "unsupported_type"
	KindNotFound           ErrorKind = "not_found"
	KindStorage            ErrorKind = "storage_error"
	KindBadRequest         ErrorKind = "bad_request"
)

// AppError represents an application error with kind and context
type AppError struct {
	Kind    ErrorKind              // Category from the closed set above
	Code    int                    // HTTP status code
	Message string                 // User-friendly message
	Err     error                  // Underlying error
	Context map[string]interface{} // Additional context (field, limit, ...)
}

// NewAppError creates a new AppError
func NewAppError(kind ErrorKind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
		Context: make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	e.Context[key] = value
	return e
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Common error constructors

func DuplicateEmailError(email string) *AppError {
	return NewAppError(KindDuplicateEmail, 409, "An account with this email already exists", nil).
		WithContext("email", email)
}

func PasswordMismatchError() *AppError {
	return NewAppError(KindPasswordMismatch, 400, "Passwords do not match", nil)
}

func InvalidCredentialsError() *AppError {
	return NewAppError(KindInvalidCredentials, 401, "Invalid email or password", nil)
}

func NoSessionError() *AppError {
	return NewAppError(KindNoSession, 401, "No active session", nil)
}

func UnauthenticatedError() *AppError {
	return NewAppError(KindUnauthenticated, 401, "User not authenticated", nil)
}

func NoFileError() *AppError {
	return NewAppError(KindNoFile, 400, "No file selected", nil)
}

func FileTooLargeError(size, limit int64) *AppError {
	return NewAppError(KindFileTooLarge, 400, "File size exceeds 50MB limit", nil).
		WithContext("size", size).
		WithContext("limit", limit)
}

func UnsupportedTypeError(contentType string) *AppError {
	return NewAppError(KindUnsupportedType, 400, "Invalid file type. Please upload PDF or Word document", nil).
		WithContext("contentType", contentType)
}

func NotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, 404, message, nil)
}

func StorageError(message string, err error) *AppError {
	return NewAppError(KindStorage, 500, message, err)
}

func BadRequestError(message string, err error) *AppError {
	return NewAppError(KindBadRequest, 400, message, err)
}
