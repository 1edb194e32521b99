package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termchat/internal/pkg/errs"
)

func TestIdentity_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Identity
		want Identity
	}{
		{
			name: "all blank",
			in:   Identity{Username: "  ", ChatName: "", Password: "\t"},
			want: Identity{Username: "guest", ChatName: "general", Password: "default"},
		},
		{
			name: "trimmed",
			in:   Identity{Username: " alice ", ChatName: " lobby", Password: "pw "},
			want: Identity{Username: "alice", ChatName: "lobby", Password: "pw"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestIdentity_Validate(t *testing.T) {
	for _, name := range []string{"server", "Server", "SERVER", " Server "} {
		err := Identity{Username: name}.Validate()
		require.NotNil(t, err, name)
		assert.Equal(t, errs.ErrReservedUsername, err.Code)
		assert.Equal(t, errs.KindRejectedCommand, err.Kind)
	}

	assert.Nil(t, Identity{Username: "servers"}.Validate())
	assert.Nil(t, Identity{Username: "alice"}.Validate())
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Alice", " alice"))
	assert.False(t, SameName("alice", "bob"))
}
