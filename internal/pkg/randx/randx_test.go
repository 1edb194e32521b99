package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := ConnectionID()
		assert.True(t, IsValidConnectionID(id))
		_, dup := seen[id]
		assert.False(t, dup, "duplicate connection id %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsValidConnectionID(t *testing.T) {
	assert.False(t, IsValidConnectionID(""))
	assert.False(t, IsValidConnectionID("not-a-uuid"))
}
