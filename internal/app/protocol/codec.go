package protocol

import (
	"encoding/json"
	"fmt"
)

// UnrecognizedError is returned by Decode for frames with an unknown discriminant or a
// malformed structure. It carries the raw frame so the caller can still show it.
type UnrecognizedError struct {
	Raw    string
	Reason string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("unrecognized frame (%s): %s", e.Reason, e.Raw)
}

// Encode converts an outbound command into a wire frame.
func Encode(cmd Command) ([]byte, error) {
	switch c := cmd.(type) {
	case Join:
		return json.Marshal(struct {
			Type MessageType `json:"type"`
			Join
		}{TypeJoin, c})

	case SendText:
		return json.Marshal(struct {
			Type MessageType `json:"type"`
			SendText
		}{TypeMessage, c})

	default:
		return nil, fmt.Errorf("cannot encode command of type %T", cmd)
	}
}

// envelope is the union of every inbound field. Pointers distinguish a missing field
// from an empty string.
type envelope struct {
	Type     *string `json:"type"`
	Username *string `json:"username"`
	Content  *string `json:"content"`
	Message  *string `json:"message"`
	Color    *string `json:"color"`
}

// Decode converts a wire frame into a typed inbound event.
// Any failure is an *UnrecognizedError; Decode never fails hard.
func Decode(data []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, unrecognized(data, "malformed frame")
	}

	if env.Type == nil {
		return nil, unrecognized(data, "missing type")
	}

	switch MessageType(*env.Type) {
	case TypeJoin:
		if env.Username == nil {
			return nil, missingField(data, "username")
		}
		return UserJoined{Username: *env.Username}, nil

	case TypeLeave:
		if env.Username == nil {
			return nil, missingField(data, "username")
		}
		return UserLeft{Username: *env.Username}, nil

	case TypeMessage:
		if env.Username == nil {
			return nil, missingField(data, "username")
		}
		if env.Content == nil {
			return nil, missingField(data, "content")
		}
		return ChatMessage{Username: *env.Username, Content: *env.Content}, nil

	case TypeError:
		if env.Message == nil {
			return nil, missingField(data, "message")
		}
		return ServerError{Message: *env.Message}, nil

	case TypeAuthFailed:
		if env.Message == nil {
			return nil, missingField(data, "message")
		}
		return AuthFailed{Message: *env.Message}, nil

	case TypeColourShift:
		if env.Color == nil {
			return nil, missingField(data, "color")
		}
		return ThemeColorChanged{Color: *env.Color}, nil

	case TypeBgShift:
		if env.Color == nil {
			return nil, missingField(data, "color")
		}
		return BackgroundColorChanged{Color: *env.Color}, nil

	case TypeChatClear:
		return ChatCleared{}, nil

	case TypeKicked:
		if env.Message == nil {
			return nil, missingField(data, "message")
		}
		return Kicked{Message: *env.Message}, nil

	default:
		return nil, unrecognized(data, fmt.Sprintf("unknown type %q", *env.Type))
	}
}

func unrecognized(data []byte, reason string) *UnrecognizedError {
	return &UnrecognizedError{Raw: string(data), Reason: reason}
}

func missingField(data []byte, field string) *UnrecognizedError {
	return unrecognized(data, "missing "+field)
}
