package screens

// Scroller produces the x position for a horizontally scrolling line of
// text. Text that fits the view is centered and held still; wider text
// marches left by a fixed step per frame and wraps once the whole line
// plus a gap has passed.
type Scroller struct {
	step   int
	gap    int
	offset int
}

// NewScroller returns a scroller advancing by step pixels per frame with
// the given wrap gap.
func NewScroller(step, gap int) *Scroller {
	if step <= 0 {
		step = 2
	}
	if gap < 0 {
		gap = 0
	}
	return &Scroller{step: step, gap: gap}
}

// Reset restarts the scroll from the left edge. Screens call this when the
// text changes.
func (s *Scroller) Reset() { s.offset = 0 }

// X returns the draw position for this frame and advances the scroll.
func (s *Scroller) X(textWidth, viewWidth int) int {
	if textWidth <= viewWidth {
		s.offset = 0
		return (viewWidth - textWidth) / 2
	}
	x := -s.offset
	s.offset += s.step
	if s.offset >= textWidth+s.gap {
		s.offset = 0
	}
	return x
}
