package wireproto

// Operation identifies the session-plane exchange carried by a request frame.
type Operation uint8

const (
	// OpHandshake negotiates version and establishes a new session.
	OpHandshake Operation = 1

	// OpTouch refreshes session activity and extends the idle-suspend window.
	OpTouch Operation = 2

	// OpBindPolicy attaches or updates the policy bound to a session/stream.
	OpBindPolicy Operation = 3

	// OpRekey rotates the session's derived key material.
	OpRekey Operation = 4

	// OpClose terminates a session.
	OpClose Operation = 5
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpHandshake:
		return "Handshake"
	case OpTouch:
		return "Touch"
	case OpBindPolicy:
		return "BindPolicy"
	case OpRekey:
		return "Rekey"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// IsValid reports whether o is a known operation.
func (o Operation) IsValid() bool {
	return o >= OpHandshake && o <= OpClose
}
