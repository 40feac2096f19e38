package screens

import "testing"

func TestScrollerCentersShortText(t *testing.T) {
	s := NewScroller(2, 16)

	// 40px text in a 128px view: static, centered.
	for i := 0; i < 10; i++ {
		if x := s.X(40, 128); x != 44 {
			t.Fatalf("frame %d: X = %d, want 44 (static center)", i, x)
		}
	}
}

func TestScrollerAdvancesByStep(t *testing.T) {
	s := NewScroller(2, 16)

	x0 := s.X(200, 128)
	x1 := s.X(200, 128)
	x2 := s.X(200, 128)

	if x0 != 0 {
		t.Errorf("first frame X = %d, want 0", x0)
	}
	if x1 != -2 || x2 != -4 {
		t.Errorf("scroll positions = %d, %d, want -2, -4", x1, x2)
	}
}

func TestScrollerWrapsAtTextWidthPlusGap(t *testing.T) {
	s := NewScroller(10, 16)

	// 200px text + 16px gap: wraps after 216px of travel.
	seen := map[int]bool{}
	for i := 0; i < 50; i++ {
		x := s.X(200, 128)
		if x > 0 || x <= -(200+16) {
			t.Fatalf("frame %d: X = %d out of scroll range", i, x)
		}
		seen[x] = true
	}
	if !seen[0] {
		t.Error("scroll never wrapped back to the start")
	}
}

func TestScrollerResetAfterTextChange(t *testing.T) {
	s := NewScroller(4, 8)
	for i := 0; i < 5; i++ {
		s.X(300, 128)
	}

	s.Reset()
	if x := s.X(300, 128); x != 0 {
		t.Errorf("X after Reset = %d, want 0", x)
	}
}

func TestScrollerShortTextResetsOffset(t *testing.T) {
	s := NewScroller(4, 8)
	for i := 0; i < 5; i++ {
		s.X(300, 128)
	}

	// Fitting text rewinds the scroll so the next long text starts fresh.
	s.X(40, 128)
	if x := s.X(300, 128); x != 0 {
		t.Errorf("long text after short = %d, want 0", x)
	}
}
