package tracker

// State is the readiness of a Client.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateUnsupported
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// IDKind distinguishes the three shapes a session identifier can take.
type IDKind int

const (
	// IDNone means no session exists.
	IDNone IDKind = iota
	// IDPending means a session exists but has no identifier yet.
	IDPending
	// IDActive carries a usable identifier.
	IDActive
)

// IDResult is what Client.ID returns.
type IDResult struct {
	Kind  IDKind
	Value string
}

// Active returns the identifier when the session has one.
func (r IDResult) Active() (string, bool) {
	if r.Kind != IDActive {
		return "", false
	}
	return r.Value, true
}

func (r IDResult) String() string {
	switch r.Kind {
	case IDNone:
		return "undefined"
	case IDPending:
		return "null"
	default:
		return r.Value
	}
}
