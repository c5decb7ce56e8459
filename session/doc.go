/*
Package session implements the streaming session actor: the
single-consumer component that owns one streaming HTTP request at a
time, reassembles wire records across chunk boundaries, and dispatches
typed callbacks to a user-supplied Handler.

Session implementation and execution overview

A Session is created with New, given a Config naming the Handler,
credentials, and (optionally) the transport.Opener, logger, and base
URL to use. Start performs the handler's Init callback synchronously
on the calling goroutine; if Init returns anything other than a normal
continue, the session never opens a request and never calls Terminate:
Terminate is only invoked for a session that was initialized.
Otherwise Start spawns the session's single mailbox-processing
goroutine and returns immediately.

Callers drive the session with Switch (open a new streaming request,
superseding any current one), Call and SendInfo (synchronous/
fire-and-forget queries answered by the Handler), CurrentMethod, and
Stop. All of these, along with asynchronous transport events, are
serialized through one mailbox channel so that ordering between
control messages, queries, and network input is preserved exactly as
SPEC_FULL.md §5 requires.

Session execution

Done returns a channel closed when the session has fully terminated:
its active request (if any) closed and Handler.Terminate invoked
exactly once. Reason and Err report the termination reason once Done
is closed.
*/
package session
