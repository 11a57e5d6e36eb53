package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed remote call into the categories
// the rest of the client reacts to.
type Kind int

const (
	// KindUnreachable covers network failures and any
	// response status with no dedicated category.
	KindUnreachable Kind = iota
	KindInvalidCredentials
	KindUnauthorized
	KindNotFound
	KindServer
	// KindMalformed marks a 2xx response missing required fields.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server_error"
	case KindMalformed:
		return "malformed_response"
	default:
		return "unreachable"
	}
}

type Error struct {
	Kind   Kind
	Status int
	cause  error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Kind, e.Status)
	}
	if e.cause != nil {
		return fmt.Sprintf("api: %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("api: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the error category, or KindUnreachable
// if err did not originate from this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnreachable
}

func statusError(status int) *Error {
	err := &Error{Status: status}
	switch {
	case status == http.StatusBadRequest:
		err.Kind = KindInvalidCredentials
	case status == http.StatusUnauthorized:
		err.Kind = KindUnauthorized
	case status == http.StatusNotFound:
		err.Kind = KindNotFound
	case status >= http.StatusInternalServerError:
		err.Kind = KindServer
	default:
		err.Kind = KindUnreachable
	}
	return err
}

func transportError(cause error) *Error {
	return &Error{Kind: KindUnreachable, cause: cause}
}

func malformedError() *Error {
	return &Error{Kind: KindMalformed}
}
