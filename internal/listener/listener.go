package listener

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fhs/gompd/v2/mpd"
	"go.uber.org/zap"

	"github.com/aldenhart/quadrant/internal/logging"
	"github.com/aldenhart/quadrant/internal/state"
)

// Listener owns the long-lived connection to the playback backend's idle
// mechanism, normalizes pushes into PlaybackState snapshots and fans them
// out to subscribers in registration order.
//
// The listener retries forever: every protocol error during idle or status
// fetch tears the connection down and schedules a reconnect; nothing
// propagates to callers.
type Listener struct {
	addr      string
	baseDelay time.Duration
	maxDelay  time.Duration

	feed      *state.Feed
	trackFeed *TrackFeed

	// suppress is armed before every mutating command so the echo of our
	// own action does not bounce the screen around.
	suppress func()

	mu      sync.Mutex
	client  *mpd.Client // command/status client, nil while disconnected
	watcher *mpd.Watcher

	seq       atomic.Uint64
	prevTitle string
	haveTitle bool

	lastMu    sync.Mutex
	lastState state.PlaybackState
	haveState bool

	stop chan struct{}
	done chan struct{}
}

// Option configures a Listener.
type Option func(*Listener)

// WithBackoff overrides the reconnect backoff parameters.
func WithBackoff(base, max time.Duration) Option {
	return func(l *Listener) {
		l.baseDelay = base
		l.maxDelay = max
	}
}

// WithSuppress registers fn to run before every mutating command,
// typically arming a window during which backend echoes are ignored.
func WithSuppress(fn func()) Option {
	return func(l *Listener) {
		l.suppress = fn
	}
}

// New creates a listener for the backend at addr (host:port). Call Run to
// start it.
func New(addr string, opts ...Option) *Listener {
	l := &Listener{
		addr:      addr,
		baseDelay: 5 * time.Second,
		maxDelay:  60 * time.Second,
		feed:      state.NewFeed(),
		trackFeed: NewTrackFeed(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ReconnectDelay computes the backoff before reconnect attempt n (1-based):
// min(base*n, max). The sequence is non-decreasing and capped.
func ReconnectDelay(base, max time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base * time.Duration(attempt)
	if d > max {
		return max
	}
	return d
}

// Subscribe registers fn for every normalized snapshot. Dispatch is
// synchronous, in registration order, from the listener's goroutine.
func (l *Listener) Subscribe(fn func(state.PlaybackState)) state.Subscription {
	return l.feed.Subscribe(fn)
}

// OnTrackChange registers fn for track-identity changes (title differs
// from the previously seen one).
func (l *Listener) OnTrackChange(fn func(TrackInfo)) {
	l.trackFeed.Subscribe(fn)
}

// Last returns the most recently published snapshot, if any.
func (l *Listener) Last() (state.PlaybackState, bool) {
	l.lastMu.Lock()
	defer l.lastMu.Unlock()
	return l.lastState, l.haveState
}

// Run connects and services the idle loop until Stop is called. It blocks;
// callers run it in its own goroutine.
func (l *Listener) Run() {
	defer close(l.done)

	attempt := 1
	for {
		select {
		case <-l.stop:
			return
		default:
		}

		if err := l.connect(); err != nil {
			delay := ReconnectDelay(l.baseDelay, l.maxDelay, attempt)
			logging.Warn("Backend connection failed",
				zap.String("addr", l.addr),
				zap.Int("attempt", attempt),
				zap.Duration("retry_in", delay),
				zap.Error(err),
			)
			attempt++
			select {
			case <-time.After(delay):
				continue
			case <-l.stop:
				return
			}
		}

		// Connected: reset the backoff immediately.
		attempt = 1
		logging.LogConnection(l.addr, "connected")

		// Publish the initial state before waiting for pushes. A failed
		// fetch means the command client is already unusable, so skip
		// straight to the teardown.
		if err := l.refresh(); err != nil {
			logging.Warn("Initial state fetch failed", zap.Error(err))
		} else {
			l.watch()
		}

		l.disconnect()
		logging.LogConnection(l.addr, "disconnected")

		// An unexpected drop backs off like a failed dial so a flapping
		// backend is not hammered.
		select {
		case <-time.After(ReconnectDelay(l.baseDelay, l.maxDelay, attempt)):
		case <-l.stop:
			return
		}
		attempt++
	}
}

// Stop shuts the listener down and waits for the idle loop to exit.
func (l *Listener) Stop() {
	close(l.stop)
	l.disconnect()
	<-l.done
}

// connect dials the command client and the idle watcher. Called once per
// reconnect cycle; any error leaves the listener disconnected.
func (l *Listener) connect() error {
	client, err := mpd.Dial("tcp", l.addr)
	if err != nil {
		return err
	}

	watcher, err := mpd.NewWatcher("tcp", l.addr, "", "player", "mixer")
	if err != nil {
		client.Close()
		return err
	}

	l.mu.Lock()
	l.client = client
	l.watcher = watcher
	l.mu.Unlock()
	return nil
}

// disconnect tears down both connections. Closing the watcher is what
// unblocks the idle wait. Idempotent.
func (l *Listener) disconnect() {
	l.mu.Lock()
	client, watcher := l.client, l.watcher
	l.client, l.watcher = nil, nil
	l.mu.Unlock()

	if watcher != nil {
		_ = watcher.Close()
	}
	if client != nil {
		_ = client.Close()
	}
}

// watch blocks on the backend's idle events until an error or Stop. The
// command client and the watcher are separate connections, so a fetch
// error must also end the idle loop: a dead command client with a live
// watcher would otherwise wedge the listener forever.
func (l *Listener) watch() {
	l.mu.Lock()
	watcher := l.watcher
	l.mu.Unlock()
	if watcher == nil {
		return
	}

	for {
		select {
		case <-l.stop:
			return
		case subsystem, ok := <-watcher.Event:
			if !ok {
				return
			}
			logging.Debug("Idle event", zap.String("subsystem", subsystem))
			if err := l.refresh(); err != nil {
				logging.Warn("State fetch failed, reconnecting", zap.Error(err))
				return
			}
		case err, ok := <-watcher.Error:
			if !ok {
				return
			}
			logging.Warn("Idle error, reconnecting", zap.Error(err))
			return
		}
	}
}

// refresh fetches full status plus the current item, merges them into a
// new snapshot and publishes it. The returned error tells the caller the
// command client is broken and the connection cycle must end.
func (l *Listener) refresh() error {
	l.mu.Lock()
	client := l.client
	l.mu.Unlock()
	if client == nil {
		return nil
	}

	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status fetch: %w", err)
	}
	song, err := client.CurrentSong()
	if err != nil {
		return fmt.Errorf("current song fetch: %w", err)
	}

	snapshot := Normalize(status, song, l.seq.Add(1))

	l.lastMu.Lock()
	l.lastState = snapshot
	l.haveState = true
	l.lastMu.Unlock()

	// Track-identity change is a distinct notification from the state push.
	if l.haveTitle && snapshot.Title != l.prevTitle {
		l.trackFeed.Publish(TrackInfo{
			Title:   snapshot.Title,
			Artist:  snapshot.Artist,
			Service: snapshot.Service,
		})
	}
	l.prevTitle = snapshot.Title
	l.haveTitle = true

	l.feed.Publish(snapshot)
	return nil
}
