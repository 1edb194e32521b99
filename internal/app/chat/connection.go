/*
Package chat contains the client-side connection manager and the session that owns it.

This file defines the Connection struct, which drives one connection attempt through
connect, join, stream and teardown. It owns the transport and runs two duties for the
lifetime of the connection: readPump decodes inbound frames in order, and writePump drains
the outbound queue in order.
*/
package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"termchat/internal/app/bridge"
	"termchat/internal/app/protocol"
	"termchat/internal/app/user"
	"termchat/internal/pkg/errs"
	"termchat/internal/pkg/limiter"
	"termchat/internal/pkg/logx"
)

// deliverFunc hands an event to the session. final marks the connection's last event;
// the session moves the connection to StateClosed atomically with delivering it.
type deliverFunc func(c *Connection, ev Event, final bool)

// outboundItem is one entry of the outbound queue: a command, or the close marker.
type outboundItem struct {
	cmd   protocol.Command
	close bool
}

// Connection drives a single connection attempt. It is created by Session.Connect
// and never reused.
type Connection struct {
	// identifies this attempt; events from replaced connections are discarded by ID.
	id string

	// the normalized identity the join frame is built from.
	identity user.Identity

	opts    Options
	dialer  Dialer
	limiter *limiter.Outbound
	deliver deliverFunc

	// commands waiting for the write duty, in enqueue order.
	outbound *bridge.Queue[outboundItem]

	// mu protects state, transport, writeErr, the timers and joinExpired.
	mu         sync.Mutex
	state      State
	transport  Transport
	writeErr   error
	closeTimer *time.Timer

	// joinTimer fails the connection if the join is not confirmed in time.
	joinTimer   *time.Timer
	joinExpired bool

	// ctx is cancelled when the connection is torn down or a dial is aborted.
	ctx    context.Context
	cancel context.CancelFunc

	// closed when writePump returns.
	writeDone chan struct{}

	// closed when the final event has been delivered.
	done chan struct{}

	// structured logger with connection context.
	logger zerolog.Logger
}

// newConnection constructs a Connection in StateConnecting. Call run to start it.
func newConnection(id string, identity user.Identity, opts Options, dialer Dialer, deliver deliverFunc) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	connLogger := logx.Component("connection").With().
		Str("conn_id", id).
		Str("username", identity.Username).
		Str("chatname", identity.ChatName).
		Logger()

	return &Connection{
		id:        id,
		identity:  identity,
		opts:      opts,
		dialer:    dialer,
		limiter:   limiter.NewOutbound(opts.SendRate, opts.SendBurst),
		deliver:   deliver,
		outbound:  bridge.NewQueue[outboundItem](0),
		state:     StateConnecting,
		ctx:       ctx,
		cancel:    cancel,
		writeDone: make(chan struct{}),
		done:      make(chan struct{}),
		logger:    connLogger,
	}
}

// ID returns the connection identifier.
func (c *Connection) ID() string {
	return c.id
}

// Identity returns the identity used to join.
func (c *Connection) Identity() user.Identity {
	return c.identity
}

// State returns the current lifecycle state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Done is closed once the connection has delivered its final event.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

func (c *Connection) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = s
}

// run drives the whole lifecycle. The read duty runs on this goroutine.
func (c *Connection) run() {
	defer close(c.done)
	defer c.cancel()

	c.logger.Info().Str("url", c.opts.ServerURL).Msg("Connecting to server.")

	transport, err := c.dial()
	if err != nil {
		if c.State() == StateClosing {
			c.logger.Info().Msg("Connection attempt aborted by user.")
			c.finish(Disconnected{Reason: ReasonUserRequested})
			return
		}

		reason := describeDialError(err)
		c.logger.Warn().Err(err).Str("reason", reason).Msg("Failed to connect to server.")
		c.finish(ConnectFailed{Reason: reason, Err: errs.NewError(errs.ErrConnectFailed, reason)})
		return
	}

	c.mu.Lock()
	c.transport = transport
	aborted := c.state == StateClosing
	c.mu.Unlock()

	if aborted {
		c.logger.Info().Msg("Connection attempt aborted by user after transport opened.")
		c.closeTransport(transport)
		c.finish(Disconnected{Reason: ReasonUserRequested})
		return
	}

	if err := c.writeJoin(transport); err != nil {
		reason := "failed to send join: " + err.Error()
		c.logger.Warn().Err(err).Msg("Failed to send join frame.")
		c.closeTransport(transport)
		c.finish(ConnectFailed{Reason: reason, Err: errs.NewError(errs.ErrConnectFailed, reason)})
		return
	}

	c.mu.Lock()
	if c.state == StateConnecting {
		c.state = StateJoining
		c.joinTimer = time.AfterFunc(c.joinTimeout(), c.expireJoin)
	}
	c.mu.Unlock()

	c.logger.Debug().Msg("Join sent, awaiting confirmation.")

	go c.writePump(transport)

	final := c.readPump(transport)
	c.teardown(transport, final)
}

// dial establishes the transport, bounded by ConnectTimeout.
func (c *Connection) dial() (Transport, error) {
	dialCtx, cancel := context.WithTimeout(c.ctx, c.opts.ConnectTimeout)
	defer cancel()

	transport, err := c.dialer.Dial(dialCtx, c.opts.ServerURL)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, errors.New("dialer returned no transport")
	}
	return transport, nil
}

// writeJoin sends the join frame. It runs before the write duty starts, so it is
// always the first frame on the connection.
func (c *Connection) writeJoin(t Transport) error {
	frame, err := protocol.Encode(protocol.Join{
		Username: c.identity.Username,
		ChatName: c.identity.ChatName,
		Password: c.identity.Password,
	})
	if err != nil {
		return err
	}

	return t.WriteFrame(frame)
}

// readPump decodes and forwards inbound frames until the connection ends.
// It returns the connection's final event.
func (c *Connection) readPump(t Transport) Event {
	for {
		frame, err := t.ReadFrame()
		if err != nil {
			return c.readFailure(err)
		}

		inbound, err := protocol.Decode(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Server sent unrecognized frame")
			c.deliver(c, Diagnostic{
				Raw: string(frame),
				Err: fmt.Errorf("%w: %w", errs.NewError(errs.ErrUnrecognizedFrame), err),
			}, false)
			continue
		}

		switch ev := inbound.(type) {
		case protocol.AuthFailed:
			c.logger.Warn().Str("message", ev.Message).Msg("Server rejected credentials.")
			c.deliver(c, ev, false)
			return Disconnected{Reason: "auth failed: " + ev.Message, Err: errs.NewError(errs.ErrAuthFailed, ev.Message)}

		case protocol.ServerError:
			c.logger.Warn().Str("message", ev.Message).Msg("Server reported an error.")
			c.deliver(c, ev, false)
			return Disconnected{Reason: "server error: " + ev.Message, Err: errs.NewError(errs.ErrServerError, ev.Message)}

		case protocol.Kicked:
			c.logger.Warn().Str("message", ev.Message).Msg("Kicked by server.")
			c.deliver(c, ev, false)
			return Disconnected{Reason: ReasonKicked, Err: errs.NewError(errs.ErrKicked, ev.Message)}
		}

		if c.confirmJoin(inbound) {
			continue
		}

		c.deliver(c, inbound, false)
	}
}

// confirmJoin moves Joining to Live on the first confirming event and emits Connected.
// It returns true if the event must not be forwarded: the echo of this client's own join, or
// anything arriving after the join timed out.
func (c *Connection) confirmJoin(inbound protocol.Inbound) bool {
	c.mu.Lock()
	if c.joinExpired {
		c.mu.Unlock()
		return true
	}

	joining := c.state == StateJoining
	if joining {
		c.state = StateLive
		c.joinTimer.Stop()
	}
	c.mu.Unlock()

	if !joining {
		return false
	}

	c.logger.Info().Msg("Join confirmed, connection live.")
	c.deliver(c, Connected{ConnID: c.id, Identity: c.identity}, false)

	joined, ok := inbound.(protocol.UserJoined)
	return ok && user.SameName(joined.Username, c.identity.Username)
}

// joinTimeout returns the confirmation bound, falling back to ConnectTimeout.
func (c *Connection) joinTimeout() time.Duration {
	if c.opts.JoinTimeout > 0 {
		return c.opts.JoinTimeout
	}
	return c.opts.ConnectTimeout
}

// expireJoin drops the transport if the connection is still waiting for confirmation.
func (c *Connection) expireJoin() {
	c.mu.Lock()
	expired := c.state == StateJoining
	if expired {
		c.joinExpired = true
	}
	t := c.transport
	c.mu.Unlock()

	if !expired {
		return
	}

	c.logger.Warn().Dur("join_timeout", c.joinTimeout()).Msg("No join confirmation received, dropping transport.")
	c.closeTransport(t)
}

// readFailure builds the final event for a read error.
func (c *Connection) readFailure(err error) Event {
	c.mu.Lock()
	state := c.state
	writeErr := c.writeErr
	joinExpired := c.joinExpired
	c.mu.Unlock()

	if joinExpired {
		return ConnectFailed{Reason: ReasonJoinTimeout, Err: errs.NewError(errs.ErrConnectFailed, ReasonJoinTimeout)}
	}

	if state == StateClosing {
		c.logger.Info().Msg("Connection closed after user request.")
		return Disconnected{Reason: ReasonUserRequested}
	}

	if writeErr != nil {
		err = writeErr
	}

	reason := err.Error()
	c.logger.Warn().Err(err).Str("state", state.String()).Msg("Connection lost.")
	return Disconnected{Reason: reason, Err: errs.NewError(errs.ErrConnectionLost, reason)}
}

// writePump writes queued commands and heartbeats until the close marker is written,
// a write fails, or the connection is torn down.
func (c *Connection) writePump(t Transport) {
	defer close(c.writeDone)

	var pings <-chan time.Time
	if c.opts.PingInterval > 0 {
		ticker := time.NewTicker(c.opts.PingInterval)
		defer ticker.Stop()
		pings = ticker.C
	}

	for {
		select {
		case <-c.outbound.Ready():
			if !c.writeQueued(t) {
				return
			}

		case <-pings:
			if err := t.WritePing(); err != nil {
				c.failWrite(t, err)
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// writeQueued drains the outbound queue in order.
// Returns true if the writePump loop should continue, false if it should terminate.
func (c *Connection) writeQueued(t Transport) bool {
	for {
		item, ok := c.outbound.TryPop()
		if !ok {
			return true
		}

		if item.close {
			if err := t.WriteClose(); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing close frame")
			}
			return false
		}

		if err := c.limiter.Wait(c.ctx); err != nil {
			return false
		}

		frame, err := protocol.Encode(item.cmd)
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to encode outbound command")
			continue
		}

		if err := t.WriteFrame(frame); err != nil {
			c.failWrite(t, err)
			return false
		}
	}
}

// failWrite records a write failure and closes the transport so the read duty ends.
func (c *Connection) failWrite(t Transport, err error) {
	c.mu.Lock()
	if c.writeErr == nil && c.state != StateClosing {
		c.writeErr = err
	}
	c.mu.Unlock()

	c.logger.Error().Err(err).Msg("Error writing to server")
	c.closeTransport(t)
}

// Send enqueues a chat message for the write duty. Only a live connection accepts messages.
func (c *Connection) Send(content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLive {
		return errs.NewError(errs.ErrNotConnected)
	}

	c.outbound.Push(outboundItem{cmd: protocol.SendText{Content: content}})
	return nil
}

// Disconnect starts the close handshake. Messages queued before it are still written.
// If the service does not close within CloseTimeout the transport is dropped.
// It returns false if the connection was not active.
func (c *Connection) Disconnect() bool {
	c.mu.Lock()
	prev := c.state
	if prev != StateConnecting && prev != StateJoining && prev != StateLive {
		c.mu.Unlock()
		return false
	}

	c.state = StateClosing
	c.outbound.Push(outboundItem{close: true})
	c.closeTimer = time.AfterFunc(c.opts.CloseTimeout, c.forceClose)
	c.mu.Unlock()

	c.logger.Info().Str("from_state", prev.String()).Msg("Disconnect requested.")

	if prev == StateConnecting {
		c.cancel()
	}
	return true
}

// forceClose drops the transport when the close handshake took too long.
func (c *Connection) forceClose() {
	c.mu.Lock()
	t := c.transport
	c.mu.Unlock()

	c.logger.Warn().Dur("close_timeout", c.opts.CloseTimeout).Msg("Close handshake timed out, dropping transport.")

	c.cancel()
	if t != nil {
		c.closeTransport(t)
	}
}

// teardown stops the write duty, closes the transport and delivers the final event.
func (c *Connection) teardown(t Transport, final Event) {
	c.outbound.Push(outboundItem{close: true})
	c.outbound.Close()

	select {
	case <-c.writeDone:
	case <-time.After(c.opts.CloseTimeout):
		c.logger.Warn().Msg("Write duty did not finish in time, abandoning pending write.")
	}

	c.cancel()
	c.closeTransport(t)
	<-c.writeDone

	c.finish(final)
}

// finish stops the close timer and delivers the final event.
func (c *Connection) finish(final Event) {
	c.mu.Lock()
	if c.closeTimer != nil {
		c.closeTimer.Stop()
	}
	if c.joinTimer != nil {
		c.joinTimer.Stop()
	}
	c.mu.Unlock()

	c.outbound.Close()
	c.deliver(c, final, true)
}

func (c *Connection) closeTransport(t Transport) {
	if err := t.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Transport close error")
	}
}
