package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// Transport is a duplex frame stream owned by exactly one Connection.
// ReadFrame is only called from the read duty. WriteFrame, WritePing and WriteClose are
// only called from one goroutine at a time. Close may be called from any goroutine and
// must unblock a pending ReadFrame or WriteFrame.
type Transport interface {
	ReadFrame() ([]byte, error)
	WriteFrame(data []byte) error
	WritePing() error
	WriteClose() error
	Close() error
}

// Dialer establishes a Transport to the chat service.
type Dialer interface {
	Dial(ctx context.Context, url string) (Transport, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context, url string) (Transport, error)

// Dial implements Dialer.
func (f DialerFunc) Dial(ctx context.Context, url string) (Transport, error) {
	return f(ctx, url)
}

// HandshakeError is returned by a Dialer when the service answered the opening handshake
// with an HTTP status instead of upgrading.
type HandshakeError struct {
	StatusCode int
	Err        error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("server rejected connection: HTTP %d: %v", e.StatusCode, e.Err)
}

func (e *HandshakeError) Unwrap() error {
	return e.Err
}

// describeDialError turns a dial failure into a short reason for the user.
func describeDialError(err error) string {
	var (
		dnsErr       *net.DNSError
		handshakeErr *HandshakeError
	)

	switch {
	case errors.As(err, &handshakeErr):
		if handshakeErr.StatusCode == http.StatusForbidden {
			return "server is currently disabled or unavailable"
		}
		return fmt.Sprintf("server rejected connection: HTTP %d", handshakeErr.StatusCode)
	case errors.As(err, &dnsErr):
		return "cannot resolve server address"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "server is not responding"
	case errors.Is(err, context.DeadlineExceeded):
		return "connection attempt timed out"
	default:
		return err.Error()
	}
}
