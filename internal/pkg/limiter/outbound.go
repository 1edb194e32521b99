/*
Package limiter provides outbound send-rate limiting for a chat connection.

It wraps a token bucket (rate.Limiter) that the write duty waits on before each chat
message frame. Waiting only delays a frame, so the order of queued frames is kept.
*/
package limiter

import (
	"context"

	"golang.org/x/time/rate"
)

// Outbound limits how fast chat messages are written to the transport.
// A nil *Outbound, or one built with a non-positive rate, never delays.
type Outbound struct {
	limiter *rate.Limiter
}

// NewOutbound creates an Outbound limiter allowing perSecond frames per second with the given burst.
// A non-positive perSecond disables limiting.
func NewOutbound(perSecond float64, burst int) *Outbound {
	if perSecond <= 0 {
		return &Outbound{}
	}
	if burst < 1 {
		burst = 1
	}
	return &Outbound{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Enabled reports whether the limiter ever delays.
func (o *Outbound) Enabled() bool {
	return o != nil && o.limiter != nil
}

// Wait blocks until the next frame may be written or ctx is done.
func (o *Outbound) Wait(ctx context.Context) error {
	if !o.Enabled() {
		return ctx.Err()
	}
	return o.limiter.Wait(ctx)
}
