package session

import "github.com/alepharchives/itweet/dispatch"

// Handler is implemented by callers of Session. Every method is
// invoked from the session's single mailbox-processing goroutine, so
// no two Handler methods ever run concurrently and no method call ever
// overlaps another (SPEC_FULL.md §4.3).
//
// A Handler method may panic with the exact dispatch.Result,
// dispatch.InitResult, or dispatch.CallResult value it would
// otherwise have returned; Invoke treats the two as equivalent. Any
// other panic is reported to the caller as a twerr.BadReturn and
// terminates the session.
type Handler interface {
	// Init is called once, synchronously, before the session opens
	// its first request. args is whatever was passed to Start.
	Init(args interface{}) dispatch.InitResult

	// HandleStatus is called for each decoded tweet/status record
	// seen on the active request's 200 response body.
	HandleStatus(record interface{}, state interface{}) dispatch.Result

	// HandleEvent is called for every other named occurrence: the
	// control events embedded in the stream (delete, limit, warning,
	// and so on) as well as the session's own lifecycle events
	// (stream_start, stream_end, stream_error).
	HandleEvent(name string, data interface{}, state interface{}) dispatch.Result

	// HandleCall answers a synchronous Call from outside the
	// session, replying before any requested termination takes
	// effect.
	HandleCall(request interface{}, state interface{}) dispatch.CallResult

	// HandleInfo is called for any mailbox entry the session does
	// not otherwise recognize. Reachable via Session.SendInfo.
	HandleInfo(message interface{}, state interface{}) dispatch.Result

	// Terminate is invoked exactly once as the session shuts down,
	// unless the session was never initialized (Init itself returned
	// Ignore, Stop, or panicked with something other than an
	// InitResult). reason is nil for a normal (handler-requested via
	// Stop with a nil reason, or externally closed) termination.
	Terminate(reason interface{}, state interface{})
}
