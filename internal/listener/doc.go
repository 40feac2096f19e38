// Package listener maintains the resilient bridge to the playback
// backend's push protocol (MPD's idle mechanism).
//
// # Connection Lifecycle
//
// One connect attempt is made at a time. On failure or an unexpected drop
// the listener schedules a reconnect after min(base*attempt, max),
// incrementing attempt on each failure and resetting it to 1 on success.
// The idle wait blocks inside the watcher; closing the watcher is what
// unblocks it, which is how Stop and error-triggered reconnects work.
//
// # Normalization
//
// On every relevant idle event the listener fetches the full status plus
// the current item and merges them wholesale into a PlaybackState with a
// fresh receipt-order sequence number. A separate track-changed
// notification fires when the title differs from the previously seen one.
//
// # Failure Semantics
//
// Every protocol error triggers disconnect + reconnect and is retried for
// the lifetime of the process; nothing propagates to subscribers. Outbound
// commands return ErrNotConnected while the link is down.
package listener
