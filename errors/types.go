package errors

import (
	"context"
	"errors"
	"net"
)

// Constructors for the error classes the SDK deals in. The taxonomy the
// session controller cares about is:
//
//   - unauthorized: the refresh token is invalid, expired or revoked.
//     Authoritative, the session must be dropped.
//   - transient: the backend was unreachable or failed server-side.
//     The session stays, the next refresh tick retries.
//   - validation: malformed caller input, surfaced immediately.
//   - storage unavailable: the persistence backend is misconfigured or
//     failing; degrades to a non-persisted session.

// 4xx client errors
func BadRequest(format string, args ...any) *Error {
	return New(400, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(401, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(403, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(404, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(409, format, args...)
}

func TooManyRequests(format string, args ...any) *Error {
	return New(429, format, args...)
}

// 5xx server errors
func Internal(format string, args ...any) *Error {
	return New(500, format, args...)
}

func BadGateway(format string, args ...any) *Error {
	return New(502, format, args...)
}

func ServiceUnavailable(format string, args ...any) *Error {
	return New(503, format, args...)
}

func GatewayTimeout(format string, args ...any) *Error {
	return New(504, format, args...)
}

// StorageUnavailable marks a persistence backend failure. Code 507 keeps
// it distinct from backend HTTP statuses.
func StorageUnavailable(format string, args ...any) *Error {
	return New(507, format, args...)
}

// IsUnauthorized reports whether err means the credential is invalid,
// expired or revoked. This is the only error class that clears a session.
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}

	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code == 401 || ge.Code == 403
	}
	return false
}

// IsTransient reports whether err looks recoverable: server-side 5xx,
// timeouts, or transport failures. Transient errors never change session
// state.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ge *Error
	if errors.As(err, &ge) {
		return (ge.Code >= 500 && ge.Code < 600 && ge.Code != 507) || ge.Code == 408 || ge.Code == 429
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var ne net.Error
	return errors.As(err, &ne)
}

// IsValidation reports whether err is a malformed-input error.
func IsValidation(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code == 400 || ge.Code == 422
	}
	return false
}

// IsStorageUnavailable reports whether err is a persistence failure.
func IsStorageUnavailable(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code == 507
	}
	return false
}
