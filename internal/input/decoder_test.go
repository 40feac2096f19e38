package input

import "testing"

// cwCycle is one full clockwise detent as sampled at the pins, starting
// and ending at the rest state.
var cwCycle = [][2]bool{
	{true, false},
	{true, true},
	{false, true},
	{false, false},
}

// ccwCycle is the same detent in the opposite direction.
var ccwCycle = [][2]bool{
	{false, true},
	{true, true},
	{true, false},
	{false, false},
}

func feed(d *Decoder, samples [][2]bool) int {
	total := 0
	for _, s := range samples {
		total += d.Sample(s[0], s[1])
	}
	return total
}

func TestDecoderOneCycleOneEvent(t *testing.T) {
	var d Decoder
	d.Sample(false, false) // prime at rest

	if got := feed(&d, cwCycle); got != 1 {
		t.Errorf("clockwise cycle produced %d events, want 1", got)
	}
	if got := feed(&d, ccwCycle); got != -1 {
		t.Errorf("counter-clockwise cycle produced %d events, want -1", got)
	}
}

func TestDecoderCounterResetsBetweenDetents(t *testing.T) {
	var d Decoder
	d.Sample(false, false)

	// Ten full cycles: exactly ten events, no carry-over between detents.
	total := 0
	for i := 0; i < 10; i++ {
		total += feed(&d, cwCycle)
	}
	if total != 10 {
		t.Errorf("10 cycles produced %d events, want 10", total)
	}
}

func TestDecoderIgnoresBounce(t *testing.T) {
	var d Decoder
	d.Sample(false, false)

	// Chatter between two adjacent states: the counter oscillates and
	// never completes a detent.
	total := 0
	for i := 0; i < 20; i++ {
		total += d.Sample(true, false)
		total += d.Sample(false, false)
	}
	if total != 0 {
		t.Errorf("bounce produced %d events, want 0", total)
	}
}

func TestDecoderIgnoresInvalidTransitions(t *testing.T) {
	var d Decoder
	d.Sample(false, false)

	// Both pins flipping at once is physically impossible on a quadrature
	// encoder and must contribute nothing.
	total := 0
	for i := 0; i < 8; i++ {
		total += d.Sample(true, true)
		total += d.Sample(false, false)
	}
	if total != 0 {
		t.Errorf("invalid transitions produced %d events, want 0", total)
	}
}

func TestDecoderDirectionReversalMidDetent(t *testing.T) {
	var d Decoder
	d.Sample(false, false)

	// Two steps clockwise, then back: no event either way.
	total := d.Sample(true, false)
	total += d.Sample(true, true)
	total += d.Sample(true, false)
	total += d.Sample(false, false)
	if total != 0 {
		t.Errorf("mid-detent reversal produced %d events, want 0", total)
	}

	// A subsequent full cycle still yields exactly one event.
	if got := feed(&d, cwCycle); got != 1 {
		t.Errorf("cycle after reversal produced %d events, want 1", got)
	}
}

func TestDecoderFirstSamplePrimes(t *testing.T) {
	var d Decoder

	// The first sample establishes the reference state and never counts
	// as movement, whatever the pins read.
	if got := d.Sample(true, true); got != 0 {
		t.Errorf("priming sample produced %d, want 0", got)
	}
}
