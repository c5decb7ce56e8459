package session

import (
	"github.com/alepharchives/itweet/transport"
	"github.com/alepharchives/itweet/urlbuilder"
)

// message is the sum type carried on a Session's single mailbox
// channel. Every external operation on a Session (Switch, Call,
// SendInfo, CurrentMethod, Stop) and every transport.Event is wrapped
// as a message before it reaches the mailbox, so the session's one
// consumer goroutine sees all of them in a single, strictly ordered
// queue (SPEC_FULL.md §5).
type message interface{ isMessage() }

type switchMethodMsg struct {
	name string
	opts urlbuilder.Options
}

func (switchMethodMsg) isMessage() {}

type currentMethodQueryMsg struct {
	reply chan currentMethodReply
}

func (currentMethodQueryMsg) isMessage() {}

type currentMethodReply struct {
	name string
	opts urlbuilder.Options
	ok   bool
}

type userCallMsg struct {
	payload interface{}
	reply   chan callReply
}

func (userCallMsg) isMessage() {}

type callReply struct {
	value interface{}
	err   error
}

type infoMsg struct {
	payload interface{}
}

func (infoMsg) isMessage() {}

type transportEventMsg struct {
	event transport.Event
}

func (transportEventMsg) isMessage() {}

type stopMsg struct {
	reason interface{}
}

func (stopMsg) isMessage() {}
