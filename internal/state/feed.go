package state

import "sync"

// Subscription identifies a subscriber so it can be removed later.
type Subscription int

// Feed is an ordered observer list for PlaybackState snapshots. Dispatch is
// synchronous and in registration order, from the publisher's goroutine;
// subscribers must not block.
type Feed struct {
	mu   sync.Mutex
	next Subscription
	subs []feedEntry
}

type feedEntry struct {
	id Subscription
	fn func(PlaybackState)
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe appends fn to the dispatch list and returns its subscription id.
func (f *Feed) Subscribe(fn func(PlaybackState)) Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.subs = append(f.subs, feedEntry{id: f.next, fn: fn})
	return f.next
}

// Unsubscribe removes the subscriber with the given id. Unknown ids are a
// no-op.
func (f *Feed) Unsubscribe(id Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.subs {
		if e.id == id {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers s to every subscriber, synchronously, in registration
// order.
func (f *Feed) Publish(s PlaybackState) {
	f.mu.Lock()
	subs := make([]feedEntry, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, e := range subs {
		e.fn(s)
	}
}
