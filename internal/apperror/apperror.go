// Package apperror defines the error taxonomy shared by all services and the
// mapping from each error class to an HTTP status. Service boundaries catch
// every store failure and translate it into one of these errors; nothing else
// is allowed to reach the router.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Machine-readable error codes. PartialFailure gets its own code so that
// operators can tell an orphaned-record situation apart from a clean failure.
const (
	CodeMissingFields  = "missing_fields"
	CodeInvalidShape   = "invalid_shape"
	CodeBadCredentials = "invalid_credentials"
	CodeForbidden      = "forbidden"
	CodeConflict       = "conflict"
	CodeNotFound       = "not_found"
	CodeExpired        = "expired"
	CodeMaxChecks      = "max_checks_reached"
	CodeHashing        = "hashing_error"
	CodeIO             = "io_error"
	CodePartialFailure = "partial_failure"
	CodeInternal       = "internal"
)

// Error is a client-visible application error.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"error"`
}

func (e *Error) Error() string { return e.Message }

// New builds an Error with an explicit status and code.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// MissingFields reports absent or malformed request fields.
func MissingFields(message string) *Error {
	return New(http.StatusBadRequest, CodeMissingFields, message)
}

// Forbidden reports a missing, invalid or expired token.
func Forbidden() *Error {
	return New(http.StatusForbidden, CodeForbidden, "missing required token in header, or token is invalid")
}

// Conflict reports a duplicate key.
func Conflict(message string) *Error {
	return New(http.StatusBadRequest, CodeConflict, message)
}

// NotFound reports an unknown key on a pure lookup (404).
func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

// UnknownRecord reports an unknown key where it counts as bad client input (400).
func UnknownRecord(message string) *Error {
	return New(http.StatusBadRequest, CodeNotFound, message)
}

// Expired reports an operation on a token past its TTL.
func Expired(message string) *Error {
	return New(http.StatusBadRequest, CodeExpired, message)
}

// MaxChecksReached reports a check-quota violation.
func MaxChecksReached(limit int) *Error {
	return New(http.StatusBadRequest, CodeMaxChecks,
		fmt.Sprintf("the user already has the maximum number of checks (%d)", limit))
}

// Hashing reports a password digest failure.
func Hashing() *Error {
	return New(http.StatusInternalServerError, CodeHashing, "could not hash the password")
}

// IO reports a storage failure without leaking paths or causes.
func IO(message string) *Error {
	return New(http.StatusInternalServerError, CodeIO, message)
}

// PartialFailure reports an operation that succeeded partway and left
// records needing reconciliation.
func PartialFailure(message string) *Error {
	return New(http.StatusInternalServerError, CodePartialFailure, message)
}

// FromValidation converts validator errors into a single client-facing
// missing-fields error listing the offending fields.
func FromValidation(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MissingFields("missing required fields")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return MissingFields("missing or invalid fields: " + strings.Join(fields, ", "))
}
