/*
Package itweet is a client for Twitter's public streaming HTTP API: an
unbounded sequence of newline-delimited JSON records (tweets and
control events) delivered to a user-supplied Handler.

Start opens a session and returns a Client once the handler's Init
callback has accepted it. The Client's per-method helpers (Filter,
Firehose, Links, Retweet, Sample) each open a new streaming request,
superseding whatever request is currently active; Call performs a
synchronous round trip through the handler; CurrentMethod and Stop
round out the lifecycle surface.

The hard part lives one level down, in the session package: the
single-consumer actor that owns one streaming HTTP request at a time,
reassembles records across chunk boundaries (frame), and dispatches
callbacks through a fault-isolating boundary (dispatch). See the
session package doc for the full design.
*/
package itweet
