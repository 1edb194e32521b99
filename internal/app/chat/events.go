/*
Package chat contains the client-side connection manager and the session that owns it.

This file defines the events delivered to the user interface. Events decoded from the wire
are the protocol package's inbound types, except chat messages, which are delivered as
ChatMessage with display data attached. Connection lifecycle signals are defined here.
*/
package chat

import (
	"termchat/internal/app/colors"
	"termchat/internal/app/user"
)

const (
	// ReasonUserRequested is the Disconnected reason after a Disconnect command.
	ReasonUserRequested = "user requested"

	// ReasonKicked is the Disconnected reason after the service kicks this session.
	ReasonKicked = "kicked"

	// ReasonJoinTimeout is the ConnectFailed reason when the service never confirms the join.
	ReasonJoinTimeout = "no join confirmation received"
)

// Event is delivered to the UI consumer, in order, through the session's event queue.
type Event interface {
	EventType() string
}

// Connected is emitted once the service confirms the join.
type Connected struct {
	ConnID   string
	Identity user.Identity
}

// Disconnected is the final event of a connection that got past transport establishment.
type Disconnected struct {
	Reason string
	Err    error
}

// ConnectFailed is the final event of a connection whose transport could not be established,
// or whose join was never confirmed.
type ConnectFailed struct {
	Reason string
	Err    error
}

// Diagnostic carries a frame that could not be decoded. The connection stays open.
type Diagnostic struct {
	Raw string
	Err error
}

// ChatMessage is a display-ready chat message.
type ChatMessage struct {
	Username string
	Content  string

	// FromServer is set for messages sent under the reserved service name.
	FromServer bool

	// Color is the sender's assigned display color.
	Color colors.Color
}

func (Connected) EventType() string     { return "connected" }
func (Disconnected) EventType() string  { return "disconnected" }
func (ConnectFailed) EventType() string { return "connect_failed" }
func (Diagnostic) EventType() string    { return "diagnostic" }
func (ChatMessage) EventType() string   { return "chat_message" }
