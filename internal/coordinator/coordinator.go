package coordinator

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aldenhart/quadrant/internal/logging"
	"github.com/aldenhart/quadrant/internal/state"
)

// Component is a screen (or other mode-scoped worker) managed by the
// coordinator. Start and Stop must be idempotent: entering a mode calls
// Stop on every other registered component defensively, whether or not it
// was running.
type Component interface {
	Mode() Mode
	Start()
	Stop()
}

// Coordinator is the finite-state machine that arbitrates which screen is
// active. It composes the suppression flag, the grace timer and the static
// mode table, and auto-transitions on playback-status changes.
type Coordinator struct {
	suppressor *state.Suppressor
	graceDelay time.Duration

	// displayPref returns the user's stored playback screen preference
	// ("original" or "modern"); consulted on every play transition.
	displayPref func() string

	mu         sync.Mutex
	current    Mode
	components map[Mode]Component
	callbacks  []func(from, to Mode)

	prevStatus state.Status
	currStatus state.Status
	haveStatus bool
	graceTimer *time.Timer
}

// New creates a coordinator starting in boot mode.
func New(suppressor *state.Suppressor, graceDelay time.Duration, displayPref func() string) *Coordinator {
	if displayPref == nil {
		displayPref = func() string { return "modern" }
	}
	return &Coordinator{
		suppressor:  suppressor,
		graceDelay:  graceDelay,
		displayPref: displayPref,
		current:     ModeBoot,
		components:  make(map[Mode]Component),
	}
}

// Register adds a component to the static mode table. Later registrations
// for the same mode replace earlier ones.
func (c *Coordinator) Register(comp Component) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.components[comp.Mode()] = comp
}

// OnModeChange registers a callback invoked synchronously, in registration
// order, on every transition.
func (c *Coordinator) OnModeChange(fn func(from, to Mode)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, fn)
}

// Current returns the active mode.
func (c *Coordinator) Current() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Active reports whether m is the active mode. Screen update loops use
// this as their activity predicate so a just-stopped worker never draws.
func (c *Coordinator) Active(m Mode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current == m
}

// Trigger transitions from any current mode to the mode named by trigger.
// Unknown names return ErrInvalidTransition and leave the mode unchanged.
func (c *Coordinator) Trigger(trigger string) error {
	c.mu.Lock()
	next, err := Next(c.current, trigger, c.displayPref())
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.transitionTo(next)
	return nil
}

// transitionTo switches the active mode: flips the mode first (so every
// activity predicate answers for the new mode before any worker can race a
// final draw), then synchronously stops every other component, then starts
// the target, then runs the mode-change callbacks in registration order.
func (c *Coordinator) transitionTo(next Mode) {
	c.mu.Lock()
	from := c.current
	if from == next {
		c.mu.Unlock()
		return
	}
	c.current = next
	target := c.components[next]
	others := make([]Component, 0, len(c.components))
	for mode, comp := range c.components {
		if mode != next {
			others = append(others, comp)
		}
	}
	callbacks := make([]func(from, to Mode), len(c.callbacks))
	copy(callbacks, c.callbacks)
	c.mu.Unlock()

	logging.LogModeChange(string(from), string(next))

	// Deactivate everything else before the target's enter-hook runs.
	// Stop is idempotent, so components that were never active are fine.
	for _, comp := range others {
		comp.Stop()
	}

	if target != nil {
		target.Start()
	} else {
		logging.Warn("No component registered for mode", zap.String("mode", string(next)))
	}

	for _, fn := range callbacks {
		fn(from, next)
	}
}

// HandleState drives the auto-transition policy from backend snapshots.
// Suppressed snapshots (echoes of locally issued commands) are dropped
// wholesale.
func (c *Coordinator) HandleState(s state.PlaybackState) {
	if c.suppressor != nil && c.suppressor.Suppressed() {
		logging.Debug("State change suppressed", zap.Uint64("seq", s.Seq))
		return
	}

	c.mu.Lock()
	c.prevStatus = c.currStatus
	c.currStatus = s.Status
	prev, havePrev := c.prevStatus, c.haveStatus
	c.haveStatus = true
	c.mu.Unlock()

	switch s.Status {
	case state.StatusPlay:
		// Any pending grace timer was a false alarm (track-change gap).
		c.cancelGraceTimer()
		if s.Service == state.ServiceWebRadio {
			c.transitionTo(ModeWebRadio)
		} else {
			c.transitionTo(c.playbackMode())
		}

	case state.StatusPause:
		c.startGraceTimer()

	case state.StatusStop:
		if havePrev && prev == state.StatusPlay {
			// Possible gap between tracks: give the backend a moment
			// before abandoning the playback screen.
			c.startGraceTimer()
		} else {
			c.cancelGraceTimer()
			c.transitionTo(ModeClock)
		}
	}
}

// playbackMode resolves the user's preferred playback screen.
func (c *Coordinator) playbackMode() Mode {
	next, _ := Next(c.Current(), "playback", c.displayPref())
	return next
}

// startGraceTimer arms the pause/stop verification timer if it is not
// already running.
func (c *Coordinator) startGraceTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.graceTimer != nil {
		return
	}
	c.graceTimer = time.AfterFunc(c.graceDelay, c.graceExpired)
}

// cancelGraceTimer stops any pending grace timer.
func (c *Coordinator) cancelGraceTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.graceTimer != nil {
		c.graceTimer.Stop()
		c.graceTimer = nil
	}
}

// graceExpired runs when the grace window elapses: if playback is still
// paused or stopped the panel falls back to the clock; if it resumed in
// the meantime nothing happens.
func (c *Coordinator) graceExpired() {
	c.mu.Lock()
	c.graceTimer = nil
	status := c.currStatus
	c.mu.Unlock()

	if status == state.StatusPause || status == state.StatusStop {
		c.transitionTo(ModeClock)
	} else {
		logging.Debug("Playback resumed within grace window; staying put")
	}
}
