package state

import "sync"

// Mailbox is a single-slot, overwrite-on-publish holder of the latest
// unconsumed PlaybackState. Publishing while a snapshot is pending replaces
// it (coalescing, not queuing); the consumer always observes the most
// recent value. Depth is never more than one.
type Mailbox struct {
	mu      sync.Mutex
	pending *PlaybackState
	wake    chan struct{}
}

// NewMailbox returns an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		wake: make(chan struct{}, 1),
	}
}

// Publish stores s as the pending snapshot, overwriting any unconsumed one,
// and wakes the consumer. Safe for concurrent use.
func (m *Mailbox) Publish(s PlaybackState) {
	m.mu.Lock()
	m.pending = &s
	m.mu.Unlock()

	// Non-blocking: a pending wake already guarantees the consumer will
	// run and observe the latest snapshot.
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Take atomically swaps the mailbox contents for empty. The second return
// value is false when nothing was pending (the wake was spurious or a
// timeout fired).
func (m *Mailbox) Take() (PlaybackState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return PlaybackState{}, false
	}
	s := *m.pending
	m.pending = nil
	return s, true
}

// Wake returns the channel signalled on publish. The consumer waits on it
// with a short timeout to bound worst-case staleness.
func (m *Mailbox) Wake() <-chan struct{} {
	return m.wake
}
