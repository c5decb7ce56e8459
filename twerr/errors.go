package twerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// MissingOption indicates a required start option was not supplied.
type MissingOption struct {
	Name string
}

func (e MissingOption) Error() string {
	return fmt.Sprintf("itweet: missing required option %q", e.Name)
}

// BadReturn indicates a handler callback returned (or panicked with) a
// value that does not match any of the accepted result shapes.
type BadReturn struct {
	Callback string
	Value    interface{}
}

func (e BadReturn) Error() string {
	return fmt.Sprintf("itweet: handler.%s returned a bad value: %#v", e.Callback, e.Value)
}

// InvalidJSON indicates a record segment failed to decode as JSON.
type InvalidJSON struct {
	Segment []byte
	cause   error
}

func (e InvalidJSON) Error() string {
	return fmt.Sprintf("itweet: invalid JSON record %q: %s", e.Segment, e.cause)
}

func (e InvalidJSON) Unwrap() error { return e.cause }

// NewInvalidJSON wraps a JSON decode failure for segment.
func NewInvalidJSON(segment []byte, cause error) InvalidJSON {
	return InvalidJSON{Segment: segment, cause: errors.Wrap(cause, "decode record")}
}

// TransportOpenError indicates opening the streaming HTTP request failed.
type TransportOpenError struct {
	Method string
	cause  error
}

func (e TransportOpenError) Error() string {
	return fmt.Sprintf("itweet: opening %s stream failed: %s", e.Method, e.cause)
}

func (e TransportOpenError) Unwrap() error { return e.cause }

// NewTransportOpenError wraps a transport-open failure for method.
func NewTransportOpenError(method string, cause error) TransportOpenError {
	return TransportOpenError{Method: method, cause: errors.Wrap(cause, "open stream")}
}

// TransportError indicates a mid-stream transport failure other than a
// request timeout (which the session treats as a normal end).
type TransportError struct {
	cause error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("itweet: transport error: %s", e.cause)
}

func (e TransportError) Unwrap() error { return e.cause }

// NewTransportError wraps a mid-stream transport failure.
func NewTransportError(cause error) TransportError {
	return TransportError{cause: errors.Wrap(cause, "stream transport")}
}

// UserStop wraps a session termination reason that is not itself an
// error (such as a non-error reason passed to a handler's stop result
// or to Session.Stop) so that Session.Err can report it as one.
// Reasons that already implement error are reported unwrapped.
type UserStop struct {
	Reason interface{}
}

func (e UserStop) Error() string {
	return fmt.Sprintf("itweet: handler stopped the session: %v", e.Reason)
}
