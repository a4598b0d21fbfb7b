package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryAuth         ErrorCategory = "AUTH"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

// DomainError is the tagged error representation every failure in the core
// collapses into before it crosses the boundary to the presentation shell.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

// Is makes errors.Is match any derived WithCause copy against its taxonomy
// value by code.
func (e *domainError) Is(target error) bool {
	other, ok := target.(*domainError)
	if !ok {
		return false
	}
	return e.code == other.code
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrNotFound = NewDomainError(
		"NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"record not found",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid username or password",
	)

	ErrDuplicateUsername = NewDomainError(
		"DUPLICATE_USERNAME",
		CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)

	ErrConstraintViolation = NewDomainError(
		"CONSTRAINT_VIOLATION",
		CategoryConflict,
		http.StatusConflict,
		"referenced record is missing or inconsistent",
	)

	ErrHashingFailure = NewDomainError(
		"HASHING_FAILURE",
		CategoryInternal,
		http.StatusInternalServerError,
		"credential hashing failed",
	)

	ErrSessionMintFailure = NewDomainError(
		"SESSION_MINT_FAILURE",
		CategoryInternal,
		http.StatusInternalServerError,
		"session token minting failed",
	)

	ErrPoolExhausted = NewDomainError(
		"POOL_EXHAUSTED",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"no database connection available",
	)

	ErrConfiguration = NewDomainError(
		"CONFIGURATION_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"invalid process configuration",
	)

	ErrStoreFailure = NewDomainError(
		"STORE_FAILURE",
		CategoryInternal,
		http.StatusInternalServerError,
		"database operation failed",
	)

	ErrUnauthenticated = NewDomainError(
		"UNAUTHENTICATED",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"authentication required",
	)

	ErrValidation = NewDomainError(
		"VALIDATION_FAILED",
		CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)
)
