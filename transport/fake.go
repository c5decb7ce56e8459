package transport

import "sync"

// NewFakeRequest builds a Request backed by a caller-supplied Events
// channel instead of a real net/http response body. It exists for
// test doubles (see internal/teststub) that need to hand a Session a
// Request without opening a real connection.
//
// The first returned channel receives a value each time Next is
// called. The second is closed exactly once, when Close is called, so
// a fake's producer goroutine blocked waiting for Next can unblock and
// exit instead of leaking, mirroring pump's ctx.Done() case.
func NewFakeRequest(id RequestID, events <-chan Event) (*Request, <-chan struct{}, <-chan struct{}) {
	advance := make(chan struct{}, 1)
	closed := make(chan struct{})
	var once sync.Once
	return &Request{
		ID:      id,
		Events:  events,
		advance: advance,
		cancel:  func() { once.Do(func() { close(closed) }) },
	}, advance, closed
}

// Closed reports whether Close has been called on the Request.
func (r *Request) Closed() bool { return r.closed.Load() }
