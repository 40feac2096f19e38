package display

import (
	"image"
	"image/color"
	"testing"
)

func TestCanvasTextWidth(t *testing.T) {
	c := NewCanvas(128, 64)

	if w := c.TextWidth(""); w != 0 {
		t.Errorf("TextWidth(empty) = %d, want 0", w)
	}

	one := c.TextWidth("a")
	ten := c.TextWidth("aaaaaaaaaa")
	if one <= 0 {
		t.Fatalf("TextWidth(single) = %d, want positive", one)
	}
	// The built-in face is fixed width.
	if ten != 10*one {
		t.Errorf("TextWidth(10 chars) = %d, want %d", ten, 10*one)
	}
}

func TestCanvasTextLightsPixels(t *testing.T) {
	c := NewCanvas(128, 64)
	c.Text(0, 20, "X")

	if !anyLit(c) {
		t.Error("drawing text lit no pixels")
	}

	c.Reset()
	if anyLit(c) {
		t.Error("Reset left lit pixels behind")
	}
}

func TestCanvasCenteredTextClampsLongStrings(t *testing.T) {
	c := NewCanvas(32, 64)

	// Wider than the canvas: must start at x=0, not a negative offset.
	c.CenteredText(20, "a string much wider than 32 pixels")

	img := c.Image().(*image.Gray)
	lit := false
	for y := 0; y < 64; y++ {
		if img.GrayAt(0, y).Y != 0 || img.GrayAt(1, y).Y != 0 {
			lit = true
		}
	}
	if !lit {
		t.Error("overlong centered text drew nothing near the left edge")
	}
}

func TestCanvasProgressBarClamps(t *testing.T) {
	for _, ratio := range []float64{-0.5, 0, 0.5, 1, 2.5} {
		c := NewCanvas(128, 64)
		c.ProgressBar(10, 30, 100, 6, ratio)

		img := c.Image().(*image.Gray)
		// Nothing may land outside the bar's rectangle.
		for x := 0; x < 128; x++ {
			for y := 0; y < 64; y++ {
				inside := x >= 10 && x < 110 && y >= 30 && y < 36
				if !inside && img.GrayAt(x, y).Y != 0 {
					t.Fatalf("ratio %v lit pixel outside bar at (%d,%d)", ratio, x, y)
				}
			}
		}
	}
}

func TestStubAcceptsFrames(t *testing.T) {
	s := NewStub(128, 64)

	if got := s.Bounds(); got != image.Rect(0, 0, 128, 64) {
		t.Errorf("Bounds() = %v", got)
	}
	if err := s.Draw(image.NewGray(s.Bounds())); err != nil {
		t.Errorf("Draw() = %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func anyLit(c *Canvas) bool {
	img := c.Image().(*image.Gray)
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if img.GrayAt(x, y) != (color.Gray{}) {
				return true
			}
		}
	}
	return false
}
