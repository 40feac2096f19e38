package screens

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aldenhart/quadrant/internal/coordinator"
	"github.com/aldenhart/quadrant/internal/display"
	"github.com/aldenhart/quadrant/internal/logging"
	"github.com/aldenhart/quadrant/internal/state"
)

// stopTimeout bounds the join in Stop. A worker stuck in a slow bus write
// is logged and abandoned rather than blocking a mode transition.
const stopTimeout = 500 * time.Millisecond

// Screen renders one frame for its mode. Render receives the newest
// playback snapshot (the zero value before the first backend push) and
// draws into the canvas; the loop owns clearing and pushing the frame.
type Screen interface {
	Mode() coordinator.Mode
	Render(c *display.Canvas, s state.PlaybackState, now time.Time)
}

// starter is implemented by screens that need a hook when their mode is
// entered (menus reload their entries there).
type starter interface {
	OnStart()
}

// Loop is the update worker for one screen: mailbox in, frames out.
type Loop struct {
	screen     Screen
	device     display.Device
	active     func() bool
	suppressed func() bool
	interval   time.Duration

	mailbox *state.Mailbox
	canvas  *display.Canvas

	mu         sync.Mutex
	running    bool
	stop       chan struct{}
	done       chan struct{}
	current    state.PlaybackState
	haveState  bool
	lastUpdate time.Time
}

// NewLoop wires a screen to a device. The activity predicate is consulted
// before every frame push and the suppression predicate before accepting
// a push; a nil predicate disables the respective check. interval is the
// idle redraw period (progress synthesis, clock ticks).
func NewLoop(screen Screen, device display.Device, active, suppressed func() bool, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	b := device.Bounds()
	return &Loop{
		screen:     screen,
		device:     device,
		active:     active,
		suppressed: suppressed,
		interval:   interval,
		mailbox:    state.NewMailbox(),
		canvas:     display.NewCanvas(b.Dx(), b.Dy()),
	}
}

// Mode returns the screen's mode.
func (l *Loop) Mode() coordinator.Mode { return l.screen.Mode() }

// Publish hands a snapshot to the loop. Publishing while the worker is
// busy overwrites the pending value; the worker renders the newest only.
// Pushes arriving inside the suppression window (echoes of local
// commands) are dropped wholesale.
func (l *Loop) Publish(s state.PlaybackState) {
	if l.suppressed != nil && l.suppressed() {
		return
	}
	l.mailbox.Publish(s)
}

// Start launches the worker. Idempotent.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	stop := make(chan struct{})
	done := make(chan struct{})
	l.stop = stop
	l.done = done
	l.mu.Unlock()

	if s, ok := l.screen.(starter); ok {
		s.OnStart()
	}
	go l.run(stop, done)
}

// Stop signals the worker and joins it with a bounded wait. Idempotent.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	stop := l.stop
	done := l.done
	l.mu.Unlock()

	close(stop)
	select {
	case <-done:
	case <-time.After(stopTimeout):
		logging.Warn("Screen worker did not stop in time",
			zap.String("mode", string(l.screen.Mode())))
	}
}

func (l *Loop) run(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.renderFrame(time.Now())
	for {
		select {
		case <-stop:
			return
		case <-l.mailbox.Wake():
			if s, ok := l.mailbox.Take(); ok {
				l.accept(s)
			}
		case <-ticker.C:
		}

		select {
		case <-stop:
			return
		default:
		}
		l.renderFrame(time.Now())
	}
}

// accept installs a snapshot unless an even newer one was already
// rendered. Receipt order is the authority.
func (l *Loop) accept(s state.PlaybackState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.haveState && l.current.Newer(s) {
		return
	}
	l.current = s
	l.haveState = true
	l.lastUpdate = time.Now()
}

// renderFrame draws and pushes one frame, unless the screen is no longer
// the active one. Between backend pushes the elapsed counter advances by
// wall-clock time while a track with a known length is playing.
func (l *Loop) renderFrame(now time.Time) {
	if l.active != nil && !l.active() {
		return
	}

	l.mu.Lock()
	s := l.current
	if l.haveState && s.Status == state.StatusPlay && s.HasProgress() {
		s.Elapsed += now.Sub(l.lastUpdate)
		if s.Elapsed > s.Duration {
			s.Elapsed = s.Duration
		}
	}
	l.mu.Unlock()

	l.canvas.Reset()
	l.screen.Render(l.canvas, s, now)
	if err := l.device.Draw(l.canvas.Image()); err != nil {
		logging.Warn("Frame push failed",
			zap.String("mode", string(l.screen.Mode())), zap.Error(err))
	}
}
