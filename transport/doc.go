/*
Package transport adapts the streaming HTTP primitive (net/http, TLS,
and Basic auth, all assumed primitives per SPEC_FULL.md §1) to the
push-based event model the session actor expects: opening a streaming
request returns a Request carrying a RequestID and a channel of Events
(HTTPOpener returns once the response headers have arrived), and the
caller drives flow control by calling Next after each chunk it
consumes.

Every Event is tagged with the RequestID of the request that produced
it, so a session which has moved on to a newer request can filter
stale events by identity without consulting anything but the token.
*/
package transport
