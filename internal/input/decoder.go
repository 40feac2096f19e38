package input

// detent is the number of valid quadrature steps per physical detent.
const detent = 4

// transitions maps (previous state << 2 | current state) to a step
// direction. The eight impossible transitions map to zero, which is what
// makes the decoder immune to contact bounce.
var transitions = [16]int8{
	0, -1, 1, 0,
	1, 0, 0, -1,
	-1, 0, 0, 1,
	0, 1, -1, 0,
}

// Decoder turns raw quadrature pin samples into detent events. It is a
// pure value type; the caller owns the sampling cadence.
type Decoder struct {
	prev   uint8
	count  int8
	primed bool
}

// Sample feeds one reading of the two encoder pins and reports the detent
// movement it completed: +1 for one clockwise detent, -1 for one
// counter-clockwise detent, 0 otherwise.
func (d *Decoder) Sample(clk, dt bool) int {
	state := encode(clk, dt)
	if !d.primed {
		d.prev = state
		d.primed = true
		return 0
	}
	step := transitions[d.prev<<2|state]
	d.prev = state

	if step == 0 {
		return 0
	}
	d.count += step
	switch {
	case d.count >= detent:
		d.count = 0
		return 1
	case d.count <= -detent:
		d.count = 0
		return -1
	}
	return 0
}

func encode(clk, dt bool) uint8 {
	var s uint8
	if clk {
		s |= 2
	}
	if dt {
		s |= 1
	}
	return s
}
