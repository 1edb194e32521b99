/*
Package wsconn implements the chat transport over gorilla/websocket.

Each chat frame is one WebSocket text message. The Conn type adds the heartbeat and
frame-size rules on top of the raw socket: inbound messages are limited to maxFrameSize,
and when a pong wait is configured, the read side fails if neither data nor a pong
arrives within it.
*/
package wsconn

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"termchat/internal/app/chat"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum allowed size (in bytes) of an inbound frame.
	maxFrameSize = 1 << 20
)

// Dialer opens WebSocket transports. It implements chat.Dialer.
type Dialer struct {
	// Dialer is the underlying gorilla dialer. Its HandshakeTimeout is left to the dial context.
	Dialer *websocket.Dialer

	// Header is sent with the opening handshake.
	Header http.Header

	// PongWait bounds the silence tolerated on the read side. Zero disables it.
	PongWait time.Duration
}

// NewDialer returns a Dialer that honors proxy settings from the environment.
func NewDialer(pongWait time.Duration) *Dialer {
	return &Dialer{
		Dialer: &websocket.Dialer{
			Proxy: http.ProxyFromEnvironment,
		},
		PongWait: pongWait,
	}
}

// PongWaitFor derives the read-side silence limit from the heartbeat interval.
func PongWaitFor(pingInterval time.Duration) time.Duration {
	if pingInterval <= 0 {
		return 0
	}
	return pingInterval * 2
}

// Dial implements chat.Dialer.
func (d *Dialer) Dial(ctx context.Context, url string) (chat.Transport, error) {
	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	ws, resp, err := dialer.DialContext(ctx, url, d.Header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
			return nil, &chat.HandshakeError{StatusCode: resp.StatusCode, Err: err}
		}
		return nil, err
	}

	conn, err := newConn(ws, d.PongWait)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Conn is a chat.Transport over a single WebSocket.
type Conn struct {
	ws       *websocket.Conn
	pongWait time.Duration
}

func newConn(ws *websocket.Conn, pongWait time.Duration) (*Conn, error) {
	c := &Conn{ws: ws, pongWait: pongWait}

	ws.SetReadLimit(maxFrameSize)

	if pongWait > 0 {
		if err := c.extendReadDeadline(); err != nil {
			ws.Close()
			return nil, err
		}
		ws.SetPongHandler(func(string) error {
			return c.extendReadDeadline()
		})
	}

	return c, nil
}

func (c *Conn) extendReadDeadline() error {
	return c.ws.SetReadDeadline(time.Now().Add(c.pongWait))
}

// ReadFrame returns the next text or binary message.
func (c *Conn) ReadFrame() ([]byte, error) {
	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			return nil, readError(err)
		}

		if c.pongWait > 0 {
			if err := c.extendReadDeadline(); err != nil {
				return nil, err
			}
		}

		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			return data, nil
		}
	}
}

// readError turns close frames into a short description.
func readError(err error) error {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		if closeErr.Text != "" {
			return fmt.Errorf("connection closed by server (%d): %s", closeErr.Code, closeErr.Text)
		}
		return fmt.Errorf("connection closed by server (%d)", closeErr.Code)
	}

	if errors.Is(err, websocket.ErrReadLimit) {
		return fmt.Errorf("frame exceeds %d bytes: %w", maxFrameSize, err)
	}

	return err
}

// WriteFrame sends data as one text message.
func (c *Conn) WriteFrame(data []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// WritePing sends a heartbeat ping.
func (c *Conn) WritePing() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// WriteClose starts the close handshake with a normal-closure frame.
func (c *Conn) WriteClose() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	return c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// Close drops the underlying network connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}
