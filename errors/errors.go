package errors

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

const (
	UnknownCode = 500
)

// Status carries the structured part of an error: code, message and metadata.
type Status struct {
	Code     int               `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error is a coded error with optional metadata and a wrapped cause.
// Codes follow HTTP status semantics so that backend responses map onto
// them directly.
type Error struct {
	Status
	cause error
}

// Error renders the error as "code=..., message=..." with metadata and
// cause appended when present.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("code=")
	b.WriteString(strconv.Itoa(e.Code))
	b.WriteString(", message=")
	b.WriteString(e.Message)

	if len(e.Metadata) > 0 {
		b.WriteString(", metadata={")
		first := true
		for k, v := range e.Metadata {
			if !first {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
			first = false
		}
		b.WriteByte('}')
	}

	if e.cause != nil {
		b.WriteString(", cause=")
		b.WriteString(e.cause.Error())
	}

	return b.String()
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithMetadata returns a copy of the error with metadata merged in.
// The receiver is not modified.
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}

	err := e.clone()
	if err.Metadata == nil {
		err.Metadata = make(map[string]string, len(m))
	}

	maps.Copy(err.Metadata, m)
	return err
}

// WithCause returns a copy of the error with the given cause attached.
// The receiver is not modified.
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}

	err := e.clone()
	err.cause = cause
	return err
}

// clone makes a shallow copy with its own metadata map.
func (e *Error) clone() *Error {
	var metadata map[string]string
	if len(e.Metadata) > 0 {
		metadata = make(map[string]string, len(e.Metadata))
		maps.Copy(metadata, e.Metadata)
	}

	return &Error{
		Status: Status{
			Code:     e.Code,
			Message:  e.Message,
			Metadata: metadata,
		},
		cause: e.cause,
	}
}

// Is reports whether err is an *Error with the same code and message.
func (e *Error) Is(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return e.Code == ge.Code && e.Message == ge.Message
	}
	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() int {
	return e.Code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.Message
}

// GetMetadata returns a copy of the metadata map.
func (e *Error) GetMetadata() map[string]string {
	if len(e.Metadata) == 0 {
		return nil
	}

	result := make(map[string]string, len(e.Metadata))
	maps.Copy(result, e.Metadata)
	return result
}

// GetCause returns the wrapped cause, if any.
func (e *Error) GetCause() error {
	return e.cause
}

// New creates an error with the given code and formatted message.
func New(code int, format string, args ...any) *Error {
	var message string
	if len(args) == 0 {
		message = format
	} else {
		message = fmt.Sprintf(format, args...)
	}

	return &Error{
		Status: Status{
			Code:    code,
			Message: message,
		},
	}
}

// Code extracts the code from any error. Plain errors map to UnknownCode,
// nil maps to 0.
func Code(err error) int {
	if err == nil {
		return 0
	}

	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return UnknownCode
}

// FromError converts a generic error to *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	if ge, ok := err.(*Error); ok {
		return ge
	}

	return New(UnknownCode, "%v", err)
}

// Wrap wraps err with a coded error, preserving the chain.
// Returns nil if err is nil.
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}

	return New(code, format, args...).WithCause(err)
}
