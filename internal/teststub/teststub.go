// Package teststub provides a fake transport.Opener and a recording
// session.Handler, shared by the session package's test suite and the
// cmd/itweet-stream demo CLI's -fake flag. It is not part of itweet's
// public API.
package teststub

import (
	"sync"
	"time"

	"github.com/alepharchives/itweet/dispatch"
	"github.com/alepharchives/itweet/transport"
)

// Chunk is one scripted body write for a FakeRequest.
type Chunk struct {
	Data []byte
}

// Script describes how one opened request should behave: the headers
// it reports, the chunks it delivers (one per Next), and how it ends.
type Script struct {
	StatusCode int
	Header     map[string][]string
	Chunks     []Chunk
	// Err, if set, ends the request with an EventError instead of
	// EventEnd after Chunks is exhausted.
	Err error
	// Delay, if set, is slept before each Chunk/End/Error send (but
	// not before the initial headers), giving a test a window to act
	// on the request before it produces more data.
	Delay time.Duration
}

// Opener is a fake transport.Opener that serves a fixed sequence of
// Scripts, one per call to Open, in order. The last Script repeats for
// any call beyond the number scripted.
type Opener struct {
	mu      sync.Mutex
	scripts []Script
	next    int
	opened  []string // urls passed to Open, in order
}

// NewOpener builds an Opener that serves scripts in order.
func NewOpener(scripts ...Script) *Opener {
	return &Opener{scripts: scripts}
}

// Opened returns every URL passed to Open so far, in call order.
func (o *Opener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.opened))
	copy(out, o.opened)
	return out
}

// Open implements transport.Opener.
func (o *Opener) Open(url string, _ transport.Credentials) (*transport.Request, error) {
	o.mu.Lock()
	o.opened = append(o.opened, url)
	var script Script
	if len(o.scripts) > 0 {
		idx := o.next
		if idx >= len(o.scripts) {
			idx = len(o.scripts) - 1
		} else {
			o.next++
		}
		script = o.scripts[idx]
	}
	o.mu.Unlock()

	id := transport.NewRequestID()
	events := make(chan transport.Event, 1)
	req, advance, closed := transport.NewFakeRequest(id, events)

	events <- transport.Event{
		Kind:       transport.EventHeaders,
		ID:         id,
		StatusCode: script.StatusCode,
		Header:     toHeader(script.Header),
	}

	go func() {
		defer close(events)
		for _, c := range script.Chunks {
			select {
			case <-advance:
			case <-closed:
				return
			}
			if script.Delay > 0 {
				select {
				case <-time.After(script.Delay):
				case <-closed:
					return
				}
			}
			events <- transport.Event{Kind: transport.EventChunk, ID: id, Data: c.Data}
		}
		select {
		case <-advance:
		case <-closed:
			return
		}
		if script.Delay > 0 {
			select {
			case <-time.After(script.Delay):
			case <-closed:
				return
			}
		}
		if script.Err != nil {
			events <- transport.Event{Kind: transport.EventError, ID: id, Err: script.Err}
			return
		}
		events <- transport.Event{Kind: transport.EventEnd, ID: id}
	}()

	return req, nil
}

func toHeader(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}

// Call is one recorded invocation of a Handler method.
type Call struct {
	Method string
	Args   []interface{}
}

// Handler is a session.Handler that records every callback it
// receives and answers from scripted results, in the order given to
// each result slice. If a result slice is exhausted, the handler
// replies with the last entry given (or, if none was given, a
// continue/OK result carrying the state it was passed; Init starts
// from a nil state).
type Handler struct {
	mu sync.Mutex

	InitResults       []dispatch.InitResult
	StatusResults     []dispatch.Result
	EventResults      []dispatch.Result
	CallResults       []dispatch.CallResult
	InfoResults       []dispatch.Result
	TerminateReceived []interface{}

	Calls []Call
}

func (h *Handler) record(method string, args ...interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls = append(h.Calls, Call{Method: method, Args: args})
}

// Init implements session.Handler.
func (h *Handler) Init(args interface{}) dispatch.InitResult {
	h.record("Init", args)
	return pop(&h.InitResults, dispatch.InitOK(nil))
}

// HandleStatus implements session.Handler.
func (h *Handler) HandleStatus(record interface{}, state interface{}) dispatch.Result {
	h.record("HandleStatus", record, state)
	return pop(&h.StatusResults, dispatch.Continue(state))
}

// HandleEvent implements session.Handler.
func (h *Handler) HandleEvent(name string, data interface{}, state interface{}) dispatch.Result {
	h.record("HandleEvent", name, data, state)
	return pop(&h.EventResults, dispatch.Continue(state))
}

// HandleCall implements session.Handler.
func (h *Handler) HandleCall(request interface{}, state interface{}) dispatch.CallResult {
	h.record("HandleCall", request, state)
	return pop(&h.CallResults, dispatch.CallOK(nil, state))
}

// HandleInfo implements session.Handler.
func (h *Handler) HandleInfo(message interface{}, state interface{}) dispatch.Result {
	h.record("HandleInfo", message, state)
	return pop(&h.InfoResults, dispatch.Continue(state))
}

// Terminate implements session.Handler.
func (h *Handler) Terminate(reason interface{}, state interface{}) {
	h.mu.Lock()
	h.TerminateReceived = append(h.TerminateReceived, reason)
	h.mu.Unlock()
	h.record("Terminate", reason, state)
}

func pop[T any](results *[]T, zero T) T {
	if len(*results) == 0 {
		return zero
	}
	v := (*results)[0]
	if len(*results) > 1 {
		*results = (*results)[1:]
	}
	return v
}
