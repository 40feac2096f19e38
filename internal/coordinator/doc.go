// Package coordinator implements the central state machine that decides
// which screen owns the display.
//
// # Transition Model
//
// Transitions are wildcard: any trigger succeeds from any current mode.
// This is expressed as a pure function (current, trigger) -> next over a
// static mode table, paired with a mode -> component dispatch table. There
// is no dynamic state-machine machinery and no name-based method
// resolution: unknown trigger names fail with ErrInvalidTransition.
//
// # Enter Semantics
//
// Entering a mode first flips the active-mode answer, then synchronously
// stops every other registered component (Stop is idempotent), then starts
// the target, then invokes the registered mode-change callbacks in
// registration order. A screen worker that was mid-frame when its mode was
// left consults the activity predicate before pushing pixels, so a stopped
// screen never draws over its successor.
//
// # Auto-Transitions
//
// Playback snapshots drive automatic transitions: play activates the
// user's preferred playback screen (or the webradio screen for streams);
// pause arms a grace timer that falls back to the clock if playback does
// not resume; a stop that follows play is treated as a possible
// track-change gap and gets the same grace window, while any other stop
// switches to the clock immediately. While the suppression flag is raised
// (a local command was just issued), incoming snapshots are ignored.
package coordinator
