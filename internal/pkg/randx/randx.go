/*
Package randx provides identifier generation for the client.

Every connection attempt gets its own identifier so that events from a connection
that has already been replaced can be recognized and discarded.
*/
package randx

import (
	"github.com/google/uuid"
)

// ConnectionID generates a UUID v4 string identifying one connection attempt.
func ConnectionID() string {
	return uuid.NewString()
}

// IsValidConnectionID reports whether id parses as a UUID.
func IsValidConnectionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
