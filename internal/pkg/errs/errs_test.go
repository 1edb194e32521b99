package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError_FormatsDetails(t *testing.T) {
	err := NewError(ErrReservedUsername, "Server")

	assert.Equal(t, ErrReservedUsername, err.Code)
	assert.Equal(t, KindRejectedCommand, err.Kind)
	assert.Equal(t, "The username 'Server' is reserved.", err.Message)
	assert.Equal(t, "error 1001 (rejected_command): The username 'Server' is reserved.", err.Error())
}

func TestNewError_IgnoresDetailsWithoutPlaceholder(t *testing.T) {
	err := NewError(ErrNotConnected, "extra")
	assert.Equal(t, "Not connected to server.", err.Message)
}

func TestNewError_UnknownCode(t *testing.T) {
	err := NewError(9999)
	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, KindInternal, err.Kind)
}

func TestNewError_DoesNotMutateTemplate(t *testing.T) {
	_ = NewError(ErrKicked, "spamming")
	assert.Equal(t, "Kicked: %s", errorMap[ErrKicked].Message)
}

func TestIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("connect: %w", NewError(ErrConnectFailed, "server is not responding"))

	assert.True(t, errors.Is(err, NewError(ErrConnectFailed)))
	assert.False(t, errors.Is(err, NewError(ErrConnectionLost)))
	assert.False(t, errors.Is(err, errors.New("other")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrAuthFailed, CodeOf(NewError(ErrAuthFailed, "bad password")))
	assert.Equal(t, ErrUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, ErrUnknown, CodeOf(nil))
}

func TestIsRejected(t *testing.T) {
	for _, code := range []int{ErrReservedUsername, ErrAlreadyConnected, ErrNotConnected, ErrEmptyMessage, ErrSessionClosed} {
		assert.True(t, IsRejected(NewError(code)), "code %d", code)
	}

	assert.False(t, IsRejected(NewError(ErrKicked, "x")))
	assert.False(t, IsRejected(errors.New("plain")))
}

func TestErrorMap_KindsMatchCodeRanges(t *testing.T) {
	kinds := map[int]Kind{
		1: KindRejectedCommand,
		2: KindTransport,
		3: KindProtocol,
		4: KindServerRejection,
		5: KindInternal,
	}

	for code, tmpl := range errorMap {
		require.Equal(t, code, tmpl.Code)
		assert.Equal(t, kinds[code/1000], tmpl.Kind, "code %d", code)
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Message is empty.", MessageOf(fmt.Errorf("send: %w", NewError(ErrEmptyMessage))))
	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
}
