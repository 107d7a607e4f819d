package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation      Code = "VALIDATION_ERROR"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeAccountDisabled Code = "ACCOUNT_DISABLED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotApproved     Code = "NOT_APPROVED"
	CodeNoAccess        Code = "NO_ACCESS"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeAlreadyApproved Code = "ALREADY_APPROVED"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeRateLimit       Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal        Code = "INTERNAL_ERROR"
	CodeDependency      Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code is surfaced to API clients.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
	// Domain codes carry a message written for the client and are passed through verbatim.
	Domain bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
		Domain:         true,
	},
	CodeUnauthenticated: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "authentication required",
	},
	CodeAccountDisabled: {
		HTTPStatus:    http.StatusForbidden,
		PublicMessage: "account is disabled",
		Domain:        true,
	},
	CodeForbidden: {
		HTTPStatus:    http.StatusForbidden,
		PublicMessage: "access denied",
		Domain:        true,
	},
	CodeNotApproved: {
		HTTPStatus:    http.StatusForbidden,
		PublicMessage: "not approved",
		Domain:        true,
	},
	CodeNoAccess: {
		HTTPStatus:    http.StatusForbidden,
		PublicMessage: "you do not have access to this society",
		Domain:        true,
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		PublicMessage: "resource not found",
		Domain:        true,
	},
	CodeConflict: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "conflict detected",
		Domain:        true,
	},
	CodeAlreadyApproved: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "already approved",
		Domain:        true,
	},
	CodeInvalidState: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "state transition disallowed",
		DetailsAllowed: true,
		Domain:         true,
	},
	CodeRateLimit: {
		HTTPStatus:    http.StatusTooManyRequests,
		PublicMessage: "rate limit exceeded",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		Retryable:     true,
		PublicMessage: "internal server error",
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "dependency unavailable",
		DetailsAllowed: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// Forbidden builds the error returned when a role gate rejects an action.
func Forbidden(action string) *Error {
	return New(CodeForbidden, fmt.Sprintf("you don't have permission to %s", action))
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the code carried by err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}
