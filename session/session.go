package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alepharchives/itweet/dispatch"
	"github.com/alepharchives/itweet/frame"
	"github.com/alepharchives/itweet/transport"
	"github.com/alepharchives/itweet/twerr"
	"github.com/alepharchives/itweet/urlbuilder"
	"go.uber.org/zap"
)

// ErrTerminated is returned by a Session operation issued after the
// session has already terminated.
var ErrTerminated = errors.New("itweet: session already terminated")

// ErrCallTimeout is returned by Call when the handler does not answer
// within the requested timeout.
var ErrCallTimeout = errors.New("itweet: call timed out waiting for a reply")

const defaultBaseURL = "https://stream.twitter.com/1/statuses/"

const mailboxCapacity = 16

// Config configures a new Session.
type Config struct {
	// Handler receives the session's callbacks. Required.
	Handler Handler
	// Credentials are the Basic auth credentials for every request
	// the session opens.
	Credentials transport.Credentials
	// Opener opens streaming HTTP requests. Defaults to a
	// *transport.HTTPOpener built from Timeout.
	Opener transport.Opener
	// Logger receives session diagnostics. Defaults to a no-op
	// logger (SPEC_FULL.md §9: injected rather than global, unlike
	// the teacher's package-level logger).
	Logger *zap.Logger
	// Timeout is the deadline the default HTTPOpener puts on each
	// request, counted from when the request is opened; when it
	// passes, the request is cut off even if data is still arriving.
	// It is not reset by incoming data and is not used when Opener is
	// set. Zero means no timeout.
	Timeout time.Duration
	// BaseURL overrides the streaming endpoint's base; defaults to
	// the public Twitter streaming API's statuses base.
	BaseURL string
}

// methodInfo records the currently active streaming method and the
// options it was opened with, for CurrentMethod.
type methodInfo struct {
	name string
	opts urlbuilder.Options
}

// Session is the single-consumer streaming session actor. It owns at
// most one active transport.Request at a time and serializes every
// operation against it (Switch, Call, SendInfo, CurrentMethod, Stop,
// and incoming transport.Events) through a single mailbox channel.
//
// A Session is created with New and started with Start; it must not
// be used from more than one goroutine except through its exported
// methods, which are safe for concurrent use.
type Session struct {
	handler Handler
	creds   transport.Credentials
	opener  transport.Opener
	logger  *zap.Logger
	baseURL string

	mailbox chan message
	done    chan struct{}

	// fields below are only ever touched by the mailbox loop goroutine.
	userState     interface{}
	activeReq     *transport.Request
	activeID      transport.RequestID
	currentMethod *methodInfo
	extractor     frame.Extractor
	httpStatus    int
	httpHeader    http.Header
	errBody       []byte
	reason        interface{}
}

// New builds a Session from cfg. The session does not begin running
// until Start is called.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opener := cfg.Opener
	if opener == nil {
		opener = &transport.HTTPOpener{Timeout: cfg.Timeout}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Session{
		handler: cfg.Handler,
		creds:   cfg.Credentials,
		opener:  opener,
		logger:  logger,
		baseURL: baseURL,
		mailbox: make(chan message, mailboxCapacity),
		done:    make(chan struct{}),
	}
}

// Start invokes Handler.Init with args. If Init returns a normal
// continue result, Start spawns the session's mailbox loop and
// returns nil; the session is then live and Done will not be closed
// until it terminates. If Init returns Ignore or Stop, or its
// callback is invalid, the session never opens a request, Terminate
// is never called, and Done is already closed when Start returns.
func (s *Session) Start(args interface{}) error {
	result, err := dispatch.Invoke("Init", func() dispatch.InitResult {
		return s.handler.Init(args)
	})
	if err != nil {
		s.reason = err
		close(s.done)
		return err
	}
	if result.IsIgnore() {
		close(s.done)
		return nil
	}
	if result.IsStop() {
		s.reason = result.Reason()
		close(s.done)
		return nil
	}
	s.userState = result.State()
	go s.loop()
	return nil
}

// Done returns a channel closed once the session has fully
// terminated: its active request (if any) closed and Terminate
// invoked (unless the session was never initialized).
func (s *Session) Done() <-chan struct{} { return s.done }

// Reason returns the session's termination reason. Only meaningful
// after Done is closed.
func (s *Session) Reason() interface{} { return s.reason }

// Err adapts Reason to an error: nil if the session terminated
// normally with a nil reason, the reason itself if it already
// implements error, or a generic wrapping error otherwise.
func (s *Session) Err() error {
	switch r := s.reason.(type) {
	case nil:
		return nil
	case error:
		return r
	default:
		return twerr.UserStop{Reason: r}
	}
}

// Switch opens a new streaming request for method name with opts,
// superseding whatever request is currently active. It does not wait
// for the new request to open; failures surface as a session
// termination delivered to Handler.Terminate.
func (s *Session) Switch(name string, opts urlbuilder.Options) error {
	select {
	case <-s.done:
		return ErrTerminated
	default:
	}
	select {
	case s.mailbox <- switchMethodMsg{name: name, opts: opts}:
		return nil
	case <-s.done:
		return ErrTerminated
	}
}

// CurrentMethod reports the method name and options the session most
// recently opened a request for, also after the session has
// terminated. ok is false if no request has been opened yet.
func (s *Session) CurrentMethod() (name string, opts urlbuilder.Options, ok bool) {
	reply := make(chan currentMethodReply, 1)
	select {
	case s.mailbox <- currentMethodQueryMsg{reply: reply}:
		select {
		case r := <-reply:
			return r.name, r.opts, r.ok
		case <-s.done:
		}
	case <-s.done:
	}
	// The session has terminated: the loop goroutine no longer writes
	// currentMethod, and its last write happened before done was closed.
	if m := s.currentMethod; m != nil {
		return m.name, m.opts, true
	}
	return "", nil, false
}

// Call sends payload to Handler.HandleCall and waits for its reply.
// A zero timeout waits indefinitely.
func (s *Session) Call(payload interface{}, timeout time.Duration) (interface{}, error) {
	reply := make(chan callReply, 1)
	select {
	case s.mailbox <- userCallMsg{payload: payload, reply: reply}:
	case <-s.done:
		return nil, ErrTerminated
	}

	var timeoutC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}
	select {
	case r := <-reply:
		return r.value, r.err
	case <-s.done:
		return nil, ErrTerminated
	case <-timeoutC:
		return nil, ErrCallTimeout
	}
}

// SendInfo delivers payload to Handler.HandleInfo without waiting for
// a reply.
func (s *Session) SendInfo(payload interface{}) error {
	select {
	case <-s.done:
		return ErrTerminated
	default:
	}
	select {
	case s.mailbox <- infoMsg{payload: payload}:
		return nil
	case <-s.done:
		return ErrTerminated
	}
}

// Stop terminates the session with reason. It is idempotent: calling
// it after the session has already terminated is a no-op.
func (s *Session) Stop(reason interface{}) error {
	select {
	case s.mailbox <- stopMsg{reason: reason}:
		return nil
	case <-s.done:
		return nil
	}
}

// loop is the session's single consumer goroutine: every control
// message, query, and transport event is read from s.mailbox here, in
// arrival order, and nothing else ever touches the fields below
// mailbox/done in Session.
func (s *Session) loop() {
	defer s.shutdown()
	for m := range s.mailbox {
		if s.handle(m) {
			return
		}
	}
}

func (s *Session) shutdown() {
	if s.activeReq != nil {
		s.activeReq.Close()
		s.activeReq = nil
	}
	dispatch.Invoke("Terminate", func() struct{} {
		s.handler.Terminate(s.reason, s.userState)
		return struct{}{}
	})
	close(s.done)
}

// handle processes one mailbox message, returning true if the session
// should terminate.
func (s *Session) handle(m message) bool {
	switch msg := m.(type) {
	case switchMethodMsg:
		return s.handleSwitch(msg)
	case currentMethodQueryMsg:
		return s.handleCurrentMethodQuery(msg)
	case userCallMsg:
		return s.handleUserCall(msg)
	case infoMsg:
		return s.handleInfo(msg)
	case transportEventMsg:
		return s.handleTransportEvent(msg.event)
	case stopMsg:
		s.reason = msg.reason
		return true
	default:
		return false
	}
}

func (s *Session) handleSwitch(msg switchMethodMsg) bool {
	url, _ := urlbuilder.Build(s.baseURL+msg.name+".json", msg.opts)
	req, err := s.opener.Open(url, s.creds)
	if err != nil {
		s.reason = twerr.NewTransportOpenError(msg.name, err)
		return true
	}

	prev := s.activeReq
	s.activeReq = req
	s.activeID = req.ID
	s.currentMethod = &methodInfo{name: msg.name, opts: msg.opts}
	s.extractor.Reset()
	s.httpStatus = 0
	s.httpHeader = nil
	s.errBody = nil

	go s.forward(req)

	// The new request is already active before the old one closes:
	// overlap is intentional so no gap exists where neither request
	// owns the active slot.
	if prev != nil {
		prev.Close()
	}
	return false
}

func (s *Session) forward(req *transport.Request) {
	for ev := range req.Events {
		select {
		case s.mailbox <- transportEventMsg{event: ev}:
		case <-s.done:
			return
		}
	}
}

func (s *Session) handleCurrentMethodQuery(msg currentMethodQueryMsg) bool {
	var reply currentMethodReply
	if s.currentMethod != nil {
		reply = currentMethodReply{name: s.currentMethod.name, opts: s.currentMethod.opts, ok: true}
	}
	msg.reply <- reply
	return false
}

func (s *Session) handleUserCall(msg userCallMsg) bool {
	result, err := dispatch.Invoke("HandleCall", func() dispatch.CallResult {
		return s.handler.HandleCall(msg.payload, s.userState)
	})
	if err != nil {
		msg.reply <- callReply{err: err}
		s.reason = err
		return true
	}
	s.userState = result.State()
	msg.reply <- callReply{value: result.Reply()}
	if result.IsStop() {
		s.reason = result.Reason()
		return true
	}
	return false
}

func (s *Session) handleInfo(msg infoMsg) bool {
	result, err := dispatch.Invoke("HandleInfo", func() dispatch.Result {
		return s.handler.HandleInfo(msg.payload, s.userState)
	})
	if err != nil {
		s.reason = err
		return true
	}
	s.userState = result.State()
	if result.IsStop() {
		s.reason = result.Reason()
		return true
	}
	return false
}

func (s *Session) handleTransportEvent(ev transport.Event) bool {
	if ev.ID != s.activeID {
		s.logger.Debug("dropping event from a superseded request", zap.Stringer("request", ev.ID))
		return false
	}
	switch ev.Kind {
	case transport.EventHeaders:
		return s.onHeaders(ev)
	case transport.EventChunk:
		return s.onChunk(ev)
	case transport.EventEnd:
		return s.onEnd()
	case transport.EventError:
		return s.onTransportError(ev)
	default:
		return false
	}
}

func (s *Session) onHeaders(ev transport.Event) bool {
	s.httpStatus = ev.StatusCode
	s.httpHeader = ev.Header
	s.extractor.Reset()
	s.errBody = nil
	if s.dispatchEvent("stream_start", nil) {
		return true
	}
	s.activeReq.Next()
	return false
}

func (s *Session) onChunk(ev transport.Event) bool {
	if len(ev.Data) == 0 || bytes.Equal(ev.Data, loneNewlineChunk) {
		s.activeReq.Next()
		return false
	}
	if s.httpStatus != http.StatusOK {
		s.errBody = append(s.errBody, ev.Data...)
		s.activeReq.Next()
		return false
	}

	records, err := s.extractor.Consume(ev.Data)
	if err != nil {
		s.logger.Warn("dropping chunk after invalid JSON record", zap.Error(err))
		s.activeReq.Next()
		return false
	}
	for _, rec := range records {
		if s.dispatchRecord(rec) {
			return true
		}
	}
	s.activeReq.Next()
	return false
}

func (s *Session) onEnd() bool {
	defer func() { s.activeReq = nil }()
	if s.httpStatus == http.StatusOK {
		if s.dispatchEvent("stream_end", nil) {
			return true
		}
		s.reason = nil
		return true
	}

	data := map[string]interface{}{
		"code":    strconv.Itoa(s.httpStatus),
		"headers": s.httpHeader,
		"body":    string(s.errBody),
	}
	if s.dispatchEvent("stream_error", data) {
		return true
	}
	// The request already reached end-of-stream; this Next() call is
	// a harmless no-op kept for parity with the control message's
	// literal continue-path behavior.
	if s.activeReq != nil {
		s.activeReq.Next()
	}
	return false
}

func (s *Session) onTransportError(ev transport.Event) bool {
	s.activeReq = nil
	if ev.TimedOut {
		s.reason = nil
		return true
	}
	s.reason = twerr.NewTransportError(ev.Err)
	return true
}

// dispatchEvent invokes HandleEvent, commits the resulting user
// state, and returns true if the session should terminate.
func (s *Session) dispatchEvent(name string, data interface{}) bool {
	result, err := dispatch.Invoke("HandleEvent", func() dispatch.Result {
		return s.handler.HandleEvent(name, data, s.userState)
	})
	if err != nil {
		s.reason = err
		return true
	}
	s.userState = result.State()
	if result.IsStop() {
		s.reason = result.Reason()
		return true
	}
	return false
}

// dispatchRecord classifies rec as either a named control event or a
// plain status record and dispatches it accordingly, returning true
// if the session should terminate.
func (s *Session) dispatchRecord(rec []byte) bool {
	if name, data, ok := classifyRecord(rec); ok {
		return s.dispatchEvent(name, data)
	}

	var parsed interface{}
	_ = json.Unmarshal(rec, &parsed) // already validated by the extractor

	result, err := dispatch.Invoke("HandleStatus", func() dispatch.Result {
		return s.handler.HandleStatus(parsed, s.userState)
	})
	if err != nil {
		s.reason = err
		return true
	}
	s.userState = result.State()
	if result.IsStop() {
		s.reason = result.Reason()
		return true
	}
	return false
}

var loneNewlineChunk = []byte("\n")

// knownEvents are the single-key record shapes the streaming API uses
// for control events, distinguishing them from ordinary status
// records (which are always multi-key objects).
var knownEvents = map[string]bool{
	"delete":          true,
	"scrub_geo":       true,
	"limit":           true,
	"status_withheld": true,
	"user_withheld":   true,
	"disconnect":      true,
	"warning":         true,
	"friends":         true,
	"friends_str":     true,
	"direct_message":  true,
	"event":           true,
}

func classifyRecord(rec []byte) (name string, data interface{}, ok bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(rec, &obj); err != nil || len(obj) != 1 {
		return "", nil, false
	}
	for k, raw := range obj {
		if !knownEvents[k] {
			return "", nil, false
		}
		var v interface{}
		_ = json.Unmarshal(raw, &v)
		return k, v, true
	}
	return "", nil, false
}
