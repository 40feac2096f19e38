package screens

import (
	"math/rand"
	"time"

	"github.com/aldenhart/quadrant/internal/config"
	"github.com/aldenhart/quadrant/internal/coordinator"
	"github.com/aldenhart/quadrant/internal/display"
	"github.com/aldenhart/quadrant/internal/state"
)

const starCount = 24

type star struct {
	x, y  int
	speed int
}

// Screensaver keeps long idle periods from burning the OLED in. The
// stored preference selects the variant: "bounce" moves the current time
// around the panel, "starfield" drifts points across it.
type Screensaver struct {
	prefs *config.PrefsStore

	// bounce state
	x, y   int
	dx, dy int

	// starfield state
	stars []star
	rng   *rand.Rand
}

// NewScreensaver returns the screensaver screen.
func NewScreensaver(prefs *config.PrefsStore) *Screensaver {
	return &Screensaver{prefs: prefs, dx: 1, dy: 1}
}

func (ss *Screensaver) Mode() coordinator.Mode { return coordinator.ModeScreensaver }

// OnStart resets the variant state so a re-entered screensaver is visibly
// alive immediately.
func (ss *Screensaver) OnStart() {
	ss.x, ss.y = 0, 0
	ss.dx, ss.dy = 1, 1
	ss.stars = nil
}

func (ss *Screensaver) Render(cv *display.Canvas, _ state.PlaybackState, now time.Time) {
	p := ss.prefs.Get()
	switch p.Screensaver {
	case config.ScreensaverStarfield:
		ss.renderStarfield(cv)
	default:
		ss.renderBounce(cv, p, now)
	}
}

func (ss *Screensaver) renderBounce(cv *display.Canvas, p config.Preferences, now time.Time) {
	text := now.Format(clockLayout(p.ClockFormat, p.ShowSeconds))

	w := cv.Bounds().Dx()
	h := cv.Bounds().Dy()
	tw := cv.TextWidth(text)
	th := cv.TextHeight()

	ss.x += ss.dx
	ss.y += ss.dy
	if ss.x <= 0 || ss.x+tw >= w {
		ss.dx = -ss.dx
		ss.x = clamp(ss.x, 0, w-tw)
	}
	if ss.y <= 0 || ss.y+th >= h {
		ss.dy = -ss.dy
		ss.y = clamp(ss.y, 0, h-th)
	}

	cv.Text(ss.x, ss.y+th, text)
}

func (ss *Screensaver) renderStarfield(cv *display.Canvas) {
	w := cv.Bounds().Dx()
	h := cv.Bounds().Dy()

	if ss.stars == nil {
		if ss.rng == nil {
			ss.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		ss.stars = make([]star, starCount)
		for i := range ss.stars {
			ss.stars[i] = star{
				x:     ss.rng.Intn(w),
				y:     ss.rng.Intn(h),
				speed: 1 + ss.rng.Intn(3),
			}
		}
	}

	for i := range ss.stars {
		s := &ss.stars[i]
		s.x -= s.speed
		if s.x < 0 {
			// Respawn on the right edge at a fresh row and speed.
			s.x = w - 1
			s.y = ss.rng.Intn(h)
			s.speed = 1 + ss.rng.Intn(3)
		}
		cv.FillRect(s.x, s.y, 1, 1)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
