package transport

import "errors"

var ErrIncompleteBundle = errors.New("transport: incomplete bundle")

// DefaultSessionIDHeader is the outbound header carrying the session identifier.
const DefaultSessionIDHeader = "X-Session-Id"

// Settings is what the tracker propagates to the session on init.
type Settings struct {
	SiteID          int
	SessionIDHeader string
}

// Session owns recording state on the transport side.
// SessionID returns ok=false when no session exists and an empty id while
// the session is pending.
type Session interface {
	Configure(Settings)
	Init()
	SetRecord(bool)
	Record() bool
	SessionID() (id string, ok bool)
}

type Socket interface {
	Connect() error
}

type Messages interface {
	SetUserVar(key, value string)
	UserEvent(name, payload string)
}

// Bundle groups the three collaborators.
type Bundle struct {
	Session  Session
	Socket   Socket
	Messages Messages
}

func (b Bundle) Validate() error {
	if b.Session == nil || b.Socket == nil || b.Messages == nil {
		return ErrIncompleteBundle
	}
	return nil
}
