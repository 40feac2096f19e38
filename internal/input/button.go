package input

import "time"

// Press is the classification of a completed (or threshold-crossing)
// button gesture.
type Press int

const (
	PressNone Press = iota
	PressShort
	PressLong
)

// Button classifies presses of an active-low push button by hold time.
// A hold reaching the threshold is long and fires immediately, without
// waiting for the release; releasing earlier is short. A hold of exactly
// the threshold is long.
type Button struct {
	threshold time.Duration

	down      bool
	downAt    time.Time
	longFired bool
}

// NewButton returns a classifier with the given long-press threshold.
func NewButton(threshold time.Duration) *Button {
	return &Button{threshold: threshold}
}

// Sample feeds one reading of the button pin (true = released, the
// pulled-up idle level) and reports the gesture it completed.
func (b *Button) Sample(level bool, now time.Time) Press {
	pressed := !level

	switch {
	case pressed && !b.down:
		b.down = true
		b.downAt = now
		b.longFired = false

	case pressed && b.down:
		if !b.longFired && now.Sub(b.downAt) >= b.threshold {
			b.longFired = true
			return PressLong
		}

	case !pressed && b.down:
		b.down = false
		if b.longFired {
			return PressNone
		}
		if now.Sub(b.downAt) >= b.threshold {
			return PressLong
		}
		return PressShort
	}
	return PressNone
}
