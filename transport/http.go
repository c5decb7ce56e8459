package transport

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Request is a handle to one streaming HTTP request's event channel.
// Events arrive in order: exactly one EventHeaders, followed by zero
// or more EventChunk, followed by exactly one of EventEnd or
// EventError, unless the request is closed first, in which case the
// channel is closed without either.
//
// Body data is only read after the caller calls Next: this is the
// explicit flow-control handshake SPEC_FULL.md §5 requires ("the
// actor must request each next chunk").
type Request struct {
	ID     RequestID
	Events <-chan Event

	advance chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	body    io.Closer
	closed  atomic.Bool
}

// Next requests delivery of the next Event. It is a no-op if a
// request is already pending (the session never needs to call it
// twice before consuming a reply).
func (r *Request) Next() {
	select {
	case r.advance <- struct{}{}:
	default:
	}
}

// Close ends the request. Any transport error this causes is
// suppressed rather than delivered as an EventError: the request was
// closed deliberately (superseded by a newer one, or the session is
// terminating), not failed.
func (r *Request) Close() error {
	r.closed.Store(true)
	r.cancel()
	if r.body != nil {
		return r.body.Close()
	}
	return nil
}

// HTTPOpener opens streaming requests using net/http. Client defaults
// to http.DefaultClient when nil; callers that need connection-level
// timeouts should supply a *http.Client with an appropriate Transport.
// Timeout, when non-zero, is a deadline on each request's context,
// counted from Open: once it passes, the request is cut off whether or
// not data is still arriving. It is not reset when data arrives.
type HTTPOpener struct {
	Client  *http.Client
	Timeout time.Duration

	readBufSize int
}

const defaultReadBufSize = 16 * 1024

// Open sends a streaming HTTP GET to url with Basic auth and waits for
// the response headers (or a failure) before returning. The returned
// Request's Events channel already holds the EventHeaders; body data
// is read asynchronously, one read per Next.
func (o *HTTPOpener) Open(url string, creds Credentials) (*Request, error) {
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	bufSize := o.readBufSize
	if bufSize == 0 {
		bufSize = defaultReadBufSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	if o.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "build request")
	}
	httpReq.SetBasicAuth(creds.Username, creds.Password)

	resp, err := client.Do(httpReq)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "do request")
	}

	id := newRequestID()
	events := make(chan Event, 1)
	req := &Request{
		ID:      id,
		Events:  events,
		advance: make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
		body:    resp.Body,
	}

	events <- Event{
		Kind:       EventHeaders,
		ID:         id,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}

	go req.pump(resp.Body, events, bufSize)

	return req, nil
}

func (r *Request) pump(body io.ReadCloser, events chan<- Event, bufSize int) {
	defer close(events)
	buf := make([]byte, bufSize)
	for {
		select {
		case <-r.advance:
		case <-r.ctx.Done():
			// Closed (superseded or session shutting down) while
			// waiting for the next Next() call; nothing more to read.
			return
		}

		n, err := body.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			events <- Event{Kind: EventChunk, ID: r.ID, Data: data}
		}
		if err == nil {
			continue
		}
		if r.closed.Load() {
			return
		}
		if err == io.EOF {
			events <- Event{Kind: EventEnd, ID: r.ID}
			return
		}
		timedOut := errors.Is(err, context.DeadlineExceeded)
		events <- Event{Kind: EventError, ID: r.ID, Err: err, TimedOut: timedOut}
		return
	}
}
