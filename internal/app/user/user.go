/*
Package user contains the session identity used to join a chat room.

It defines who is connecting and to which room (the Identity struct), the defaults
applied to blank fields, and the check against the name reserved for the service itself.
*/
package user

import (
	"strings"

	"termchat/internal/pkg/errs"
)

const (
	// ReservedName is the username used by the service for system messages.
	// It is compared case-insensitively after trimming.
	ReservedName = "server"

	// DefaultUsername is used when the username is blank.
	DefaultUsername = "guest"

	// DefaultChatName is used when the chat room name is blank.
	DefaultChatName = "general"

	// DefaultPassword is used when the password is blank.
	DefaultPassword = "default"
)

// Identity identifies who is connecting and to which room.
// It is immutable once a connection attempt begins.
type Identity struct {
	Username string `json:"username"`
	ChatName string `json:"chatname"`
	Password string `json:"password"`
}

// Normalize returns a copy with every field trimmed and blank fields defaulted.
func (id Identity) Normalize() Identity {
	return Identity{
		Username: orDefault(id.Username, DefaultUsername),
		ChatName: orDefault(id.ChatName, DefaultChatName),
		Password: orDefault(id.Password, DefaultPassword),
	}
}

// Validate reports an ErrReservedUsername error if the identity uses the reserved name.
func (id Identity) Validate() *errs.CustomError {
	if IsReserved(id.Username) {
		return errs.NewError(errs.ErrReservedUsername, strings.TrimSpace(id.Username))
	}
	return nil
}

// NormalizeName returns the key used to compare usernames: trimmed and lower-cased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsReserved reports whether name is the reserved service name.
func IsReserved(name string) bool {
	return NormalizeName(name) == ReservedName
}

// SameName reports whether a and b name the same user.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

func orDefault(value, def string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return def
}
