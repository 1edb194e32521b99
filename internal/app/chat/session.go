/*
Package chat contains the client-side connection manager and the session that owns it.

This file defines the Session struct, which the UI layer holds for the lifetime of the
program. It accepts commands, owns at most one active Connection, and delivers events
from that connection, in order, into a single event queue.
*/
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"termchat/internal/app/bridge"
	"termchat/internal/app/colors"
	"termchat/internal/app/protocol"
	"termchat/internal/app/user"
	"termchat/internal/configs"
	"termchat/internal/pkg/errs"
	"termchat/internal/pkg/logx"
	"termchat/internal/pkg/randx"
)

// Options tunes the connection lifecycle.
type Options struct {
	// ServerURL is the chat service endpoint.
	ServerURL string

	// ConnectTimeout bounds transport establishment.
	ConnectTimeout time.Duration

	// JoinTimeout bounds the wait for the service to confirm the join.
	// Zero falls back to ConnectTimeout.
	JoinTimeout time.Duration

	// CloseTimeout bounds the close handshake after Disconnect.
	CloseTimeout time.Duration

	// PingInterval is the heartbeat period. Zero disables heartbeats.
	PingInterval time.Duration

	// SendRate and SendBurst limit outbound messages. A rate of zero disables limiting.
	SendRate  float64
	SendBurst int

	// EventQueueCap is the event queue high-watermark. Zero means unbounded.
	EventQueueCap int
}

// OptionsFromConfig maps the application configuration onto Options.
func OptionsFromConfig(cfg *configs.AppConfig) Options {
	return Options{
		ServerURL:      cfg.ServerURL,
		ConnectTimeout: cfg.ConnectTimeout,
		JoinTimeout:    cfg.JoinTimeout,
		CloseTimeout:   cfg.CloseTimeout,
		PingInterval:   cfg.PingInterval,
		SendRate:       cfg.SendRate,
		SendBurst:      cfg.SendBurst,
		EventQueueCap:  cfg.EventQueueCap,
	}
}

// Session is the context object owned by the UI layer.
type Session struct {
	opts   Options
	dialer Dialer
	colors *colors.Table

	// events is drained by the UI consumer.
	events *bridge.Queue[Event]

	// mu protects active and closed, and serializes event delivery.
	mu     sync.Mutex
	active *Connection
	closed bool

	// structured logger with Session context.
	logger zerolog.Logger
}

// NewSession constructs a Session. A nil table gets the default palette.
func NewSession(opts Options, dialer Dialer, table *colors.Table) *Session {
	if table == nil {
		table = colors.NewTable()
	}

	return &Session{
		opts:   opts,
		dialer: dialer,
		colors: table,
		events: bridge.NewQueue[Event](opts.EventQueueCap),
		logger: logx.Component("session"),
	}
}

// Events returns the queue the UI consumer drains.
func (s *Session) Events() *bridge.Queue[Event] {
	return s.events
}

// State returns the state of the current connection, or StateIdle if none was made.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return StateIdle
	}
	return s.active.State()
}

// Identity returns the identity of the current connection.
func (s *Session) Identity() (user.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return user.Identity{}, false
	}
	return s.active.Identity(), true
}

// Connect starts a new connection with the given identity. Blank fields get defaults.
// It returns a rejected-command error, with no event emitted, if the identity uses the
// reserved name or a connection is already active.
func (s *Session) Connect(identity user.Identity) error {
	identity = identity.Normalize()
	if err := identity.Validate(); err != nil {
		s.logger.Warn().Str("username", identity.Username).Msg("Connect rejected: reserved username.")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errs.NewError(errs.ErrSessionClosed)
	}

	if s.active != nil && s.active.State().Active() {
		s.logger.Warn().Str("conn_id", s.active.ID()).Msg("Connect rejected: connection already active.")
		return errs.NewError(errs.ErrAlreadyConnected)
	}

	conn := newConnection(randx.ConnectionID(), identity, s.opts, s.dialer, s.deliver)
	s.active = conn

	go conn.run()

	s.logger.Info().Str("conn_id", conn.ID()).Str("username", identity.Username).Str("chatname", identity.ChatName).Msg("Connection started.")
	return nil
}

// Send enqueues a chat message on the live connection. Surrounding whitespace is trimmed.
func (s *Session) Send(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errs.NewError(errs.ErrEmptyMessage)
	}

	s.mu.Lock()
	conn := s.active
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return errs.NewError(errs.ErrSessionClosed)
	}
	if conn == nil {
		return errs.NewError(errs.ErrNotConnected)
	}

	return conn.Send(content)
}

// Disconnect starts closing the active connection. It is a no-op without one.
func (s *Session) Disconnect() {
	s.mu.Lock()
	conn := s.active
	s.mu.Unlock()

	if conn == nil {
		return
	}

	conn.Disconnect()
}

// Close disconnects, waits for the final event, then closes the event queue.
// Events already queued can still be drained after Close.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	conn := s.active
	s.mu.Unlock()

	s.logger.Info().Msg("Closing session.")

	if conn != nil {
		conn.Disconnect()

		select {
		case <-conn.Done():
		case <-time.After(2 * s.opts.CloseTimeout):
			s.logger.Warn().Str("conn_id", conn.ID()).Msg("Connection did not finish before session close.")
		}
	}

	s.events.Close()
}

// deliver is the single path from a connection to the event queue. Events from a
// connection that is no longer active are discarded. A final event and the move to
// StateClosed happen together, so a Connect that observes StateClosed always comes
// after that connection's last event.
func (s *Session) deliver(c *Connection, ev Event, final bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if final {
		c.setState(StateClosed)
	}

	if s.active != c {
		s.logger.Debug().
			Str("conn_id", c.ID()).
			Str("event", ev.EventType()).
			Msg("Discarding event from stale connection.")
		return
	}

	if msg, ok := ev.(protocol.ChatMessage); ok {
		ev = ChatMessage{
			Username:   msg.Username,
			Content:    msg.Content,
			FromServer: user.IsReserved(msg.Username),
			Color:      s.colors.ColorFor(msg.Username),
		}
	}

	if !s.events.Push(ev) {
		s.logger.Debug().Str("event", ev.EventType()).Msg("Event queue closed, event dropped.")
	}
}
