package panel

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aldenhart/quadrant/internal/logging"
)

// Status LED bits on port A.
const (
	LEDPlay  byte = 1 << 0
	LEDPause byte = 1 << 1
)

// LEDs maintains the panel's lit word: a persistent status part OR'd with
// a transient feedback part that clears itself after the pulse interval.
type LEDs struct {
	exp   Expander
	pulse time.Duration

	mu        sync.Mutex
	status    byte
	feedback  byte
	lastWrite byte
	haveWrite bool
	timer     *time.Timer
}

// NewLEDs returns the LED word for the given expander.
func NewLEDs(exp Expander, pulse time.Duration) *LEDs {
	if pulse <= 0 {
		pulse = 150 * time.Millisecond
	}
	return &LEDs{exp: exp, pulse: pulse}
}

// SetStatus replaces the persistent part of the word.
func (l *LEDs) SetStatus(word byte) {
	l.mu.Lock()
	l.status = word
	l.writeLocked()
	l.mu.Unlock()
}

// Pulse lights the feedback part of the word and arms (or re-arms) its
// one-shot clear timer.
func (l *LEDs) Pulse(word byte) {
	l.mu.Lock()
	l.feedback = word
	l.writeLocked()
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.pulse, l.clearFeedback)
	l.mu.Unlock()
}

func (l *LEDs) clearFeedback() {
	l.mu.Lock()
	l.feedback = 0
	l.timer = nil
	l.writeLocked()
	l.mu.Unlock()
}

// writeLocked pushes the combined word, skipping writes that would not
// change the pins.
func (l *LEDs) writeLocked() {
	combined := l.status | l.feedback
	if l.haveWrite && combined == l.lastWrite {
		return
	}
	if err := l.exp.WriteReg(regOLATA, combined); err != nil {
		logging.Warn("LED write failed", zap.Error(err))
		return
	}
	l.lastWrite = combined
	l.haveWrite = true
}
