package screens

import (
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/aldenhart/quadrant/internal/config"
	"github.com/aldenhart/quadrant/internal/display"
	"github.com/aldenhart/quadrant/internal/state"
)

func newTestPrefs(t *testing.T) *config.PrefsStore {
	t.Helper()
	prefs, err := config.NewPrefsStore(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("NewPrefsStore: %v", err)
	}
	return prefs
}

func litPixels(img image.Image) int {
	b := img.Bounds()
	lit := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0 {
				lit++
			}
		}
	}
	return lit
}

func TestScreensaverRendersSelectedVariant(t *testing.T) {
	prefs := newTestPrefs(t)
	if err := prefs.Update(func(p *config.Preferences) {
		p.Screensaver = config.ScreensaverStarfield
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	ss := NewScreensaver(prefs)
	ss.OnStart()

	cv := display.NewCanvas(128, 64)
	ss.Render(cv, state.PlaybackState{}, time.Now())

	// Stars are single pixels; the bounce variant draws a whole time
	// string, so a sparse frame proves the pref selected the starfield.
	lit := litPixels(cv.Image())
	if lit == 0 {
		t.Fatal("starfield rendered an empty frame")
	}
	if lit > starCount {
		t.Fatalf("starfield lit %d pixels, want at most %d", lit, starCount)
	}
}

func TestStarfieldDrifts(t *testing.T) {
	prefs := newTestPrefs(t)
	if err := prefs.Update(func(p *config.Preferences) {
		p.Screensaver = config.ScreensaverStarfield
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	ss := NewScreensaver(prefs)
	ss.OnStart()

	first := display.NewCanvas(128, 64)
	ss.Render(first, state.PlaybackState{}, time.Now())
	second := display.NewCanvas(128, 64)
	ss.Render(second, state.PlaybackState{}, time.Now())

	a, b := first.Image(), second.Image()
	for y := 0; y < 64; y++ {
		for x := 0; x < 128; x++ {
			ra, _, _, _ := a.At(x, y).RGBA()
			rb, _, _, _ := b.At(x, y).RGBA()
			if ra != rb {
				return
			}
		}
	}
	t.Fatal("starfield frames are identical, stars never moved")
}

func TestBounceVariantShowsTime(t *testing.T) {
	prefs := newTestPrefs(t)

	ss := NewScreensaver(prefs)
	ss.OnStart()

	cv := display.NewCanvas(128, 64)
	ss.Render(cv, state.PlaybackState{}, time.Date(2026, 8, 30, 12, 34, 0, 0, time.UTC))

	// The default variant draws the clock text, far more than a handful
	// of star pixels.
	if lit := litPixels(cv.Image()); lit <= starCount {
		t.Fatalf("bounce variant lit only %d pixels", lit)
	}
}
