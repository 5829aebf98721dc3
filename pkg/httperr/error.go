/*
Package httperr provides the structured error type that code emitted by
httperrgen converts into. An Error carries an HTTP status code, an optional
reason, an optional key/value payload and an optional wrapped cause.
*/
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

/* Error is the canonical HTTP-facing error representation. The zero status is
never exposed: construction always starts at 500. */
type Error struct {
	statusCode int
	reason     string
	hasReason  bool
	data       map[string]any
	cause      error
}

/* New returns an empty Error with status 500. */
func New() *Error {
	return &Error{statusCode: http.StatusInternalServerError}
}

/* FromStatusCode returns an Error with the given status code. */
func FromStatusCode(statusCode int) *Error {
	return New().WithStatusCode(statusCode)
}

/*
FromError converts a generic error to an *Error. It attempts to recover an
underlying *Error anywhere in the chain; otherwise the error is wrapped as the
cause of a fresh Error. A nil input yields nil.
*/
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return New().WithCause(err)
}

/* WithStatusCode sets the status code. */
func (e *Error) WithStatusCode(statusCode int) *Error {
	e.statusCode = statusCode
	return e
}

/* WithReason sets the reason text. */
func (e *Error) WithReason(reason string) *Error {
	e.reason = reason
	e.hasReason = true
	return e
}

/* WithKeyValue adds a key/value pair to the payload, overwriting any previous
value stored under the same key. */
func (e *Error) WithKeyValue(key string, value any) *Error {
	if e.data == nil {
		e.data = make(map[string]any)
	}
	e.data[key] = value
	return e
}

/* WithCause sets the wrapped cause. */
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

func (e *Error) StatusCode() int { return e.statusCode }

/* Reason returns the reason text and whether one was set. */
func (e *Error) Reason() (string, bool) { return e.reason, e.hasReason }

func (e *Error) Cause() error { return e.cause }

/* Get retrieves a value from the payload. */
func (e *Error) Get(key string) (any, bool) {
	v, ok := e.data[key]
	return v, ok
}

/* Data returns a copy of the payload. Mutating the result does not affect the
error. */
func (e *Error) Data() map[string]any {
	if len(e.data) == 0 {
		return nil
	}
	out := make(map[string]any, len(e.data))
	for k, v := range e.data {
		out[k] = v
	}
	return out
}

func (e *Error) Error() string {
	status := fmt.Sprintf("%d %s", e.statusCode, http.StatusText(e.statusCode))
	switch {
	case !e.hasReason && e.cause == nil:
		return fmt.Sprintf("HTTPError(%s)", status)
	case e.hasReason && e.cause == nil:
		return fmt.Sprintf("HTTPError(%s): %s", status, e.reason)
	case !e.hasReason:
		return fmt.Sprintf("HTTPError(%s): cause: %v", status, e.cause)
	default:
		return fmt.Sprintf("HTTPError(%s): %s, cause: %v", status, e.reason, e.cause)
	}
}

func (e *Error) Unwrap() error { return e.cause }

/* ValidStatus reports whether the given code is a valid numeric HTTP status.
Any three digit code is accepted, registered or not. */
func ValidStatus(statusCode int) bool {
	return statusCode >= 100 && statusCode <= 999
}
