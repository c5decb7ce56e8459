/*
Package twerr holds the typed error taxonomy used across itweet.

Each error type corresponds to one of the failure classes in the
streaming session's error handling design: a missing start option, a
callback that returned something other than one of the accepted result
shapes, a record that failed to decode as JSON, and the two transport
failure classes (open-time and mid-stream).

Errors are plain values with an Error() string and, where a cause is
available, an Unwrap() method so callers can use errors.As/errors.Is
against the underlying transport or decode error.
*/
package twerr
