package chat

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"termchat/internal/app/colors"
)

var errFakeClosed = errors.New("use of closed network connection")

// fakeTransport is an in-memory Transport. Frames pushed with serve are read in order;
// a nil frame stands for the service closing the connection.
type fakeTransport struct {
	inbound chan []byte
	closed  chan struct{}
	once    sync.Once

	// ackClose makes WriteClose answer with a service-side close.
	ackClose bool

	// failWrites makes every WriteFrame after the join fail.
	failWrites bool

	// failPings makes every WritePing fail.
	failPings bool

	mu          sync.Mutex
	written     [][]byte
	pings       int
	closeFrames int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		inbound:  make(chan []byte, 64),
		closed:   make(chan struct{}),
		ackClose: true,
	}
}

func (f *fakeTransport) ReadFrame() ([]byte, error) {
	select {
	case frame := <-f.inbound:
		if frame == nil {
			return nil, io.EOF
		}
		return frame, nil
	case <-f.closed:
		return nil, errFakeClosed
	}
}

func (f *fakeTransport) WriteFrame(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isClosed() {
		return errFakeClosed
	}
	if f.failWrites && len(f.written) > 0 {
		return errors.New("broken pipe")
	}

	f.written = append(f.written, append([]byte(nil), data...))
	return nil
}

func (f *fakeTransport) WritePing() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPings {
		return errors.New("ping failed")
	}
	f.pings++
	return nil
}

func (f *fakeTransport) WriteClose() error {
	f.mu.Lock()
	f.closeFrames++
	f.mu.Unlock()

	if f.ackClose {
		f.inbound <- nil
	}
	return nil
}

func (f *fakeTransport) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeTransport) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

// serve queues frames for the read duty.
func (f *fakeTransport) serve(frames ...string) {
	for _, frame := range frames {
		f.inbound <- []byte(frame)
	}
}

// hangup simulates the service dropping the connection.
func (f *fakeTransport) hangup() {
	f.inbound <- nil
}

func (f *fakeTransport) frames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.written))
	for _, w := range f.written {
		out = append(out, string(w))
	}
	return out
}

func (f *fakeTransport) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.pings
}

func (f *fakeTransport) closeFrameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closeFrames
}

// fakeDialer hands out transports in order and counts dials.
type fakeDialer struct {
	mu         sync.Mutex
	transports []*fakeTransport
	err        error
	dials      atomic.Int32

	// block makes Dial wait for ctx to finish.
	block bool
}

func (d *fakeDialer) Dial(ctx context.Context, _ string) (Transport, error) {
	d.dials.Add(1)

	if d.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return nil, d.err
	}
	if len(d.transports) == 0 {
		return nil, errors.New("no transport available")
	}

	t := d.transports[0]
	d.transports = d.transports[1:]
	return t, nil
}

func (d *fakeDialer) add(t *fakeTransport) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.transports = append(d.transports, t)
}

func testOptions() Options {
	return Options{
		ServerURL:      "ws://chat.test:8765",
		ConnectTimeout: time.Second,
		CloseTimeout:   200 * time.Millisecond,
	}
}

func newTestSession(t *testing.T, dialer Dialer) *Session {
	t.Helper()

	s := NewSession(testOptions(), dialer, colors.NewTable())
	t.Cleanup(s.Close)
	return s
}

// nextEvent pops one event or fails the test.
func nextEvent(t *testing.T, s *Session) Event {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ev, ok := s.Events().Pop(ctx)
	require.True(t, ok, "timed out waiting for event")
	return ev
}

// requireNoEvent asserts that no event is queued after a short settle period.
func requireNoEvent(t *testing.T, s *Session) {
	t.Helper()

	time.Sleep(50 * time.Millisecond)
	ev, ok := s.Events().TryPop()
	require.False(t, ok, "unexpected event %#v", ev)
}

// waitFrames waits until at least n frames were written.
func waitFrames(t *testing.T, f *fakeTransport, n int) []string {
	t.Helper()

	require.Eventually(t, func() bool { return len(f.frames()) >= n }, 2*time.Second, 5*time.Millisecond)
	return f.frames()
}

func waitState(t *testing.T, s *Session, want State) {
	t.Helper()

	require.Eventually(t, func() bool { return s.State() == want }, 2*time.Second, 5*time.Millisecond,
		"state never became %s", want)
}
