package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID identifies one streaming HTTP request. Events are tagged
// with the RequestID of the request that produced them so a caller
// which has moved on to a newer request can recognize and drop events
// from a superseded one without any other bookkeeping.
type RequestID uuid.UUID

func newRequestID() RequestID { return RequestID(uuid.New()) }

// NewRequestID generates a fresh RequestID. Exposed for test doubles
// (see internal/teststub) that construct Requests outside HTTPOpener.
func NewRequestID() RequestID { return newRequestID() }

// String renders the RequestID in its canonical UUID form.
func (id RequestID) String() string { return uuid.UUID(id).String() }

// EventKind distinguishes the variants of Event.
type EventKind int

const (
	// EventHeaders carries the response status/header for a newly
	// opened request. Always the first event for a given RequestID.
	EventHeaders EventKind = iota
	// EventChunk carries one read of the response body.
	EventChunk
	// EventEnd signals the response body was fully read (EOF).
	EventEnd
	// EventError signals a mid-stream transport failure.
	EventError
)

// Event is one transport-layer occurrence for a streaming request,
// tagged with the RequestID it originated from.
type Event struct {
	Kind EventKind
	ID   RequestID

	StatusCode int
	Header     http.Header

	Data []byte

	Err      error
	TimedOut bool
}

// Credentials are the Basic auth credentials for a streaming request.
type Credentials struct {
	Username string
	Password string
}

// Opener opens a streaming HTTP GET request and returns a handle to
// its event stream; headers and body data are delivered on the
// returned Request's Events channel. HTTPOpener's Open does not return
// until the response headers have arrived, so a caller that opens a
// request waits for them.
type Opener interface {
	Open(url string, creds Credentials) (*Request, error)
}
