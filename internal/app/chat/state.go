package chat

// State is the lifecycle state of one connection attempt.
type State int

const (
	// StateIdle means no connection attempt has been made.
	StateIdle State = iota

	// StateConnecting means the transport is being established.
	StateConnecting

	// StateJoining means the transport is open and the join frame was sent.
	StateJoining

	// StateLive means the service confirmed the join.
	StateLive

	// StateClosing means a disconnect was requested and the close handshake is in progress.
	StateClosing

	// StateClosed means the connection has ended and its final event was emitted.
	StateClosed
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateJoining:
		return "joining"
	case StateLive:
		return "live"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Active reports whether a connection in this state still owns its transport,
// in which case a new Connect is rejected.
func (s State) Active() bool {
	return s != StateIdle && s != StateClosed
}
