/*
Package protocol is the wire codec for the chat service.

Every frame is one JSON object whose "type" field is the discriminant. Outbound commands
are encoded with Encode and inbound frames are decoded into typed events with Decode.
The package performs no I/O.
*/
package protocol

// MessageType is the value of a frame's "type" discriminant.
type MessageType string

// Outbound discriminants.
const (
	TypeJoin    MessageType = "join"
	TypeMessage MessageType = "message"
)

// Inbound-only discriminants. "join" and "message" are shared with outbound frames.
const (
	TypeLeave       MessageType = "leave"
	TypeError       MessageType = "error"
	TypeAuthFailed  MessageType = "auth_failed"
	TypeColourShift MessageType = "colourshift"
	TypeBgShift     MessageType = "bgshift"
	TypeChatClear   MessageType = "chatclear"
	TypeKicked      MessageType = "kicked"
)

// Command is a typed outbound command.
type Command interface {
	Type() MessageType
}

// Join authenticates and enters a chat room. It is the first frame of every connection.
type Join struct {
	Username string `json:"username"`
	ChatName string `json:"chatname"`
	Password string `json:"password"`
}

// SendText posts a chat message to the joined room.
type SendText struct {
	Content string `json:"content"`
}

func (Join) Type() MessageType     { return TypeJoin }
func (SendText) Type() MessageType { return TypeMessage }

// Inbound is a typed event decoded from a service frame.
type Inbound interface {
	EventType() string
}

// UserJoined reports that a user entered the room. The service also echoes the
// client's own join back as confirmation.
type UserJoined struct {
	Username string
}

// UserLeft reports that a user left the room.
type UserLeft struct {
	Username string
}

// ChatMessage is a message posted to the room, including system messages whose
// username is the reserved service name.
type ChatMessage struct {
	Username string
	Content  string
}

// ServerError is an error reported by the service for this session.
type ServerError struct {
	Message string
}

// AuthFailed reports that the join credentials were refused.
type AuthFailed struct {
	Message string
}

// ThemeColorChanged asks the client to switch its accent color.
type ThemeColorChanged struct {
	Color string
}

// BackgroundColorChanged asks the client to switch its background color.
type BackgroundColorChanged struct {
	Color string
}

// ChatCleared asks the client to clear its message view.
type ChatCleared struct{}

// Kicked reports that this session was removed from the room.
type Kicked struct {
	Message string
}

func (UserJoined) EventType() string             { return "user_joined" }
func (UserLeft) EventType() string               { return "user_left" }
func (ChatMessage) EventType() string            { return "chat_message" }
func (ServerError) EventType() string            { return "server_error" }
func (AuthFailed) EventType() string             { return "auth_failed" }
func (ThemeColorChanged) EventType() string      { return "theme_color_changed" }
func (BackgroundColorChanged) EventType() string { return "background_color_changed" }
func (ChatCleared) EventType() string            { return "chat_cleared" }
func (Kicked) EventType() string                 { return "kicked" }
