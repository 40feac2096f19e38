package screens

import (
	"strings"
	"time"

	"github.com/aldenhart/quadrant/internal/config"
	"github.com/aldenhart/quadrant/internal/coordinator"
	"github.com/aldenhart/quadrant/internal/display"
	"github.com/aldenhart/quadrant/internal/state"
)

// Clock is the idle screen: current time and date, formatted per the
// stored preferences.
type Clock struct {
	prefs *config.PrefsStore
}

// NewClock returns the clock screen.
func NewClock(prefs *config.PrefsStore) *Clock {
	return &Clock{prefs: prefs}
}

func (c *Clock) Mode() coordinator.Mode { return coordinator.ModeClock }

func (c *Clock) Render(cv *display.Canvas, _ state.PlaybackState, now time.Time) {
	p := c.prefs.Get()
	layout := clockLayout(p.ClockFormat, p.ShowSeconds)

	h := cv.Bounds().Dy()
	cv.CenteredText(h/2-4, now.Format(layout))
	cv.CenteredText(h-8, now.Format("Mon 02 Jan"))
}

// clockLayout appends a seconds component to the stored time layout when
// the user asked for it.
func clockLayout(layout string, showSeconds bool) string {
	if layout == "" {
		layout = "15:04"
	}
	if !showSeconds || strings.Contains(layout, "05") {
		return layout
	}
	if strings.Contains(layout, " PM") {
		return strings.Replace(layout, " PM", ":05 PM", 1)
	}
	return layout + ":05"
}
