package itweet

import (
	"time"

	"github.com/alepharchives/itweet/session"
	"github.com/alepharchives/itweet/transport"
	"github.com/alepharchives/itweet/twerr"
	"github.com/alepharchives/itweet/urlbuilder"
	"go.uber.org/zap"
)

// Option and Options are the ordered tagged-pair option lists used
// both for Start (recognizing "user", "password", "timeout", "debug")
// and for the per-method helpers (recognizing urlbuilder's "count",
// "delimited", "follow", "track", "locations").
type Option = urlbuilder.Option
type Options = urlbuilder.Options

// Handler is the callback interface a caller implements; see the
// session package for the full contract.
type Handler = session.Handler

// Client is a handle to a running session, returned by Start.
type Client struct {
	s *session.Session
}

// Start builds a session, invokes handler.Init with initArgs, and
// returns a Client once Init has accepted the session. opts must
// include "user" and "password"; otherwise Start fails with a
// twerr.MissingOption before a session is ever created. "timeout"
// (time.Duration) and "debug" (bool) are optional. An "opener"
// (transport.Opener) option swaps in a fake transport for tests and
// the demo CLI's -fake flag; real callers never need it.
func Start(handler Handler, initArgs interface{}, opts Options) (*Client, error) {
	user, hasUser := stringOption(opts, "user")
	if !hasUser {
		return nil, twerr.MissingOption{Name: "user"}
	}
	password, hasPassword := stringOption(opts, "password")
	if !hasPassword {
		return nil, twerr.MissingOption{Name: "password"}
	}

	var timeout time.Duration
	if v, ok := findOption(opts, "timeout"); ok {
		if d, ok := v.(time.Duration); ok {
			timeout = d
		}
	}

	debug := false
	if v, ok := findOption(opts, "debug"); ok {
		if b, ok := v.(bool); ok {
			debug = b
		}
	}

	logger := zap.NewNop()
	if debug {
		if devLogger, err := zap.NewDevelopment(); err == nil {
			logger = devLogger
		}
	}

	var opener transport.Opener
	if v, ok := findOption(opts, "opener"); ok {
		if o, ok := v.(transport.Opener); ok {
			opener = o
		}
	}

	s := session.New(session.Config{
		Handler:     handler,
		Credentials: transport.Credentials{Username: user, Password: password},
		Logger:      logger,
		Timeout:     timeout,
		Opener:      opener,
	})
	if err := s.Start(initArgs); err != nil {
		return nil, err
	}
	return &Client{s: s}, nil
}

func findOption(opts Options, name string) (interface{}, bool) {
	for _, o := range opts {
		if o.Name == name {
			return o.Value, true
		}
	}
	return nil, false
}

func stringOption(opts Options, name string) (string, bool) {
	v, ok := findOption(opts, name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Filter opens a filtered streaming request.
func (c *Client) Filter(opts Options) error { return c.s.Switch("filter", opts) }

// Firehose opens the unfiltered firehose streaming request.
func (c *Client) Firehose(opts Options) error { return c.s.Switch("firehose", opts) }

// Links opens the links streaming request.
func (c *Client) Links(opts Options) error { return c.s.Switch("links", opts) }

// Retweet opens the retweet streaming request.
func (c *Client) Retweet(opts Options) error { return c.s.Switch("retweet", opts) }

// Sample opens the sample streaming request.
func (c *Client) Sample(opts Options) error { return c.s.Switch("sample", opts) }

// Call performs a synchronous request/reply through the handler's
// HandleCall callback. A zero timeout waits indefinitely.
func (c *Client) Call(req interface{}, timeout time.Duration) (interface{}, error) {
	return c.s.Call(req, timeout)
}

// CurrentMethod reports the most recently opened method and its
// options. ok is false if no request has been opened yet.
func (c *Client) CurrentMethod() (string, Options, bool) { return c.s.CurrentMethod() }

// Stop terminates the session with reason.
func (c *Client) Stop(reason error) error { return c.s.Stop(reason) }

// Done returns a channel closed once the session has fully
// terminated.
func (c *Client) Done() <-chan struct{} { return c.s.Done() }

// Err reports the session's termination reason as an error, once Done
// is closed.
func (c *Client) Err() error { return c.s.Err() }
