package coordinator

import (
	"sync"
	"time"
)

// IdleWatch engages the screensaver after the clock has been idle for the
// configured delay. The countdown runs only while the clock is the active
// mode; any other mode disarms it. Touch restarts the countdown on user
// activity.
type IdleWatch struct {
	coord *Coordinator
	delay func() time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewIdleWatch attaches an idle watchdog to the coordinator. delay is
// consulted each time the countdown is armed so preference changes take
// effect without a restart.
func NewIdleWatch(coord *Coordinator, delay func() time.Duration) *IdleWatch {
	w := &IdleWatch{coord: coord, delay: delay}
	coord.OnModeChange(func(_, to Mode) {
		if to == ModeClock {
			w.arm()
		} else {
			w.disarm()
		}
	})
	return w
}

// Touch restarts the countdown. Called on every input gesture.
func (w *IdleWatch) Touch() {
	if w.coord.Active(ModeClock) {
		w.arm()
	}
}

func (w *IdleWatch) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay(), w.expired)
}

func (w *IdleWatch) disarm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *IdleWatch) expired() {
	// The mode may have changed between the timer firing and this
	// running; only an idle clock goes dark.
	if w.coord.Active(ModeClock) {
		w.coord.transitionTo(ModeScreensaver)
	}
}
