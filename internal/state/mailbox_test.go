package state

import (
	"testing"
	"time"
)

func TestMailboxPublishTake(t *testing.T) {
	mb := NewMailbox()

	mb.Publish(PlaybackState{Seq: 1, Title: "First"})

	s, ok := mb.Take()
	if !ok {
		t.Fatal("Take() after Publish() should return a snapshot")
	}
	if s.Seq != 1 || s.Title != "First" {
		t.Errorf("Take() = %+v, want Seq=1 Title=First", s)
	}

	// Mailbox is now empty
	if _, ok := mb.Take(); ok {
		t.Error("Take() on empty mailbox should return false")
	}
}

func TestMailboxCoalesces(t *testing.T) {
	mb := NewMailbox()

	// Publish S1 then S2 before the consumer wakes: only S2 is visible.
	mb.Publish(PlaybackState{Seq: 1, Title: "S1"})
	mb.Publish(PlaybackState{Seq: 2, Title: "S2"})

	s, ok := mb.Take()
	if !ok {
		t.Fatal("Take() should return the coalesced snapshot")
	}
	if s.Seq != 2 {
		t.Errorf("Take() returned Seq=%d, want 2 (latest wins)", s.Seq)
	}

	if _, ok := mb.Take(); ok {
		t.Error("mailbox depth must never exceed 1")
	}
}

func TestMailboxWakeSignalled(t *testing.T) {
	mb := NewMailbox()

	mb.Publish(PlaybackState{Seq: 1})

	select {
	case <-mb.Wake():
	case <-time.After(time.Second):
		t.Fatal("wake channel not signalled after publish")
	}

	// Wake is edge-triggered with capacity 1: repeated publishes while a
	// wake is pending must not block.
	for i := 0; i < 10; i++ {
		mb.Publish(PlaybackState{Seq: uint64(i)})
	}
}

func TestMailboxWakeThenTakeNeverEmpty(t *testing.T) {
	mb := NewMailbox()

	done := make(chan PlaybackState, 1)
	go func() {
		<-mb.Wake()
		s, ok := mb.Take()
		if !ok {
			t.Error("Take() after wake should never be empty")
		}
		done <- s
	}()

	mb.Publish(PlaybackState{Seq: 7, Title: "Complete"})

	select {
	case s := <-done:
		if s.Seq != 7 || s.Title != "Complete" {
			t.Errorf("consumer observed partial value: %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("consumer never woke")
	}
}
