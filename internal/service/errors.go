package service

import (
	"errors"
	"fmt"
)

// ErrTitleRequired is the message used when a task title is empty.
const ErrTitleRequired = "Task title cannot be empty"

// ValidationError reports input that failed a client-side precondition.
// It is always returned before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TransportError reports a request that did not produce a success status.
// StatusCode is 0 when no HTTP response was received at all.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed"
	}
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsAuth reports whether the server rejected the request's credentials.
func (e *TransportError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// ApplicationError is a logical error signaled by the server
// inside a success response.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string { return e.Message }

// ProtocolError reports a success response whose body did not have
// the expected shape.
type ProtocolError struct {
	Expected string
	Err      error
}

func (e *ProtocolError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("invalid response format: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid response format: expected %s: %v", e.Expected, e.Err)
	}
	return fmt.Sprintf("invalid response format: expected %s", e.Expected)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Message returns the user-visible text for err, or fallback when err
// carries no text.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is, or wraps, a TransportError for a
// rejected credential.
func IsAuth(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.IsAuth()
}
