package dispatch

import (
	"github.com/alepharchives/itweet/twerr"
)

// Result is the normalized outcome of a HandleStatus, HandleEvent, or
// HandleInfo callback: either Continue, carrying the next user state,
// or Stop, additionally carrying the termination reason.
type Result struct {
	stop   bool
	reason interface{}
	state  interface{}
}

// Continue builds a Result that keeps the session running with state
// as the next user_state.
func Continue(state interface{}) Result { return Result{state: state} }

// Stop builds a Result that terminates the session with reason after
// committing state as the final user_state.
func Stop(reason, state interface{}) Result { return Result{stop: true, reason: reason, state: state} }

// IsStop reports whether the result requests termination.
func (r Result) IsStop() bool { return r.stop }

// Reason returns the termination reason. Only meaningful if IsStop.
func (r Result) Reason() interface{} { return r.reason }

// State returns the next user_state carried by the result.
func (r Result) State() interface{} { return r.state }

// InitResult is the outcome of Handler.Init: either OK (the session
// proceeds to open its first request), Ignore, or Stop — the latter
// two both terminate the session before any request is ever opened.
type InitResult struct {
	stop   bool
	ignore bool
	reason interface{}
	state  interface{}
}

// InitOK builds an InitResult that lets the session proceed with state
// as the initial user_state.
func InitOK(state interface{}) InitResult { return InitResult{state: state} }

// InitIgnore builds an InitResult that terminates the session
// immediately without ever opening a request, and without a specific
// reason value.
func InitIgnore() InitResult { return InitResult{ignore: true} }

// InitStop builds an InitResult that terminates the session
// immediately with reason, without ever opening a request.
func InitStop(reason interface{}) InitResult { return InitResult{stop: true, reason: reason} }

// IsIgnore reports whether Init declined to start the session.
func (r InitResult) IsIgnore() bool { return r.ignore }

// IsStop reports whether Init requested termination with a reason.
func (r InitResult) IsStop() bool { return r.stop }

// Reason returns the termination reason. Only meaningful if IsStop.
func (r InitResult) Reason() interface{} { return r.reason }

// State returns the initial user_state. Only meaningful if neither
// IsIgnore nor IsStop.
func (r InitResult) State() interface{} { return r.state }

// CallResult is the outcome of Handler.HandleCall: either OK, carrying
// a reply and the next user state, or Stop, additionally carrying a
// termination reason (the reply is still returned to the caller before
// the session terminates, per SPEC_FULL.md §4.4.B).
type CallResult struct {
	stop   bool
	reason interface{}
	reply  interface{}
	state  interface{}
}

// CallOK builds a CallResult that returns reply to the caller and
// keeps the session running with state as the next user_state.
func CallOK(reply, state interface{}) CallResult { return CallResult{reply: reply, state: state} }

// CallStop builds a CallResult that returns reply to the caller, then
// terminates the session with reason after committing state.
func CallStop(reason, reply, state interface{}) CallResult {
	return CallResult{stop: true, reason: reason, reply: reply, state: state}
}

// IsStop reports whether the result requests termination after reply
// is delivered to the caller.
func (r CallResult) IsStop() bool { return r.stop }

// Reason returns the termination reason. Only meaningful if IsStop.
func (r CallResult) Reason() interface{} { return r.reason }

// Reply returns the value to hand back to the synchronous caller.
func (r CallResult) Reply() interface{} { return r.reply }

// State returns the next user_state carried by the result.
func (r CallResult) State() interface{} { return r.state }

// Invoke calls fn, the body of a single handler callback, inside a
// fault-isolating boundary. fn is expected to return a T (one of
// Result, InitResult, or CallResult); since these are static Go types,
// the only way a callback can violate the handler contract is by
// panicking with something other than a T (or not recovering its own
// panic at all). Invoke normalizes both cases: a panic carrying a T is
// treated exactly as if that value had been returned (the
// "sentinel-value equivalence" described in SPEC_FULL.md §4.3); any
// other panic becomes a twerr.BadReturn error.
//
// callback names the handler method being invoked, used only to
// annotate a BadReturn error.
func Invoke[T any](callback string, fn func() T) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			if r, ok := p.(T); ok {
				result = r
				return
			}
			err = twerr.BadReturn{Callback: callback, Value: p}
		}
	}()
	result = fn()
	return result, nil
}
