package state

import (
	"sync"
	"time"
)

// Suppressor is a shared ignore-window for backend echoes of locally issued
// commands. While suppressed, the coordinator and screens drop incoming
// snapshots. The flag always auto-clears within the window passed to
// SuppressFor, even if the expected echo never arrives.
type Suppressor struct {
	mu         sync.Mutex
	suppressed bool
	timer      *time.Timer
}

// NewSuppressor returns a cleared suppressor.
func NewSuppressor() *Suppressor {
	return &Suppressor{}
}

// SuppressFor raises the flag and arms (or re-arms) the auto-clear timer.
func (s *Suppressor) SuppressFor(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, s.Clear)
}

// Clear lowers the flag and cancels any pending auto-clear.
func (s *Suppressor) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressed = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Suppressed reports whether incoming snapshots should be ignored.
func (s *Suppressor) Suppressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppressed
}
