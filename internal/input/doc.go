// Package input reads the rotary encoder and its push button.
//
// The encoder is decoded in software: a polling goroutine samples the two
// quadrature pins at a fixed interval and feeds them to a pure Decoder,
// which validates each two-bit state transition against a fixed table.
// Invalid transitions (contact bounce) contribute nothing; valid ones
// accumulate in a signed counter, and a full detent's worth of movement in
// one direction emits exactly one rotate event. There are no timers and no
// settle windows; the transition table is the debouncer.
//
// The push button distinguishes short and long presses by hold time. A
// press held to the long-press threshold classifies as long the moment the
// threshold passes, and the subsequent release emits nothing.
package input
