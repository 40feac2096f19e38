// Package state holds the shared data model of the front panel: normalized
// playback snapshots, the coalescing mailbox used by every screen update
// loop, the command-echo suppressor, and the ordered observer feed that
// fans snapshots out from the backend listener.
//
// # Snapshots
//
// A PlaybackState is produced wholesale on every backend push. Parsing is
// defensive throughout: absent or malformed fields default (volume clamps
// to 0-100, unknown status degrades to stop) and never produce an error.
// Each snapshot carries a receipt-order sequence number; consumers compare
// sequence numbers rather than timestamps to reject stale data.
//
// # Mailbox
//
// The mailbox coalesces rapid pushes into the single most recent snapshot.
// Publishing S1 then S2 before the consumer wakes guarantees the consumer
// observes only S2; a publish followed immediately by Take never yields a
// partial value.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use.
package state
