/*
Package urlbuilder translates a streaming method's option list into a
query-string URL, rendering the recognized Twitter streaming parameters
as query parameters and returning every other option, untouched, as a
residual list. The session package discards that residual list; none
of it reaches the transport layer.

Build performs no percent-encoding: this is an inherited limitation
from the original implementation, preserved intentionally. Callers
passing non-ASCII track terms will produce a malformed URL.
*/
package urlbuilder
