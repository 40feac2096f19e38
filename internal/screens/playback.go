package screens

import (
	"fmt"
	"time"

	"github.com/aldenhart/quadrant/internal/coordinator"
	"github.com/aldenhart/quadrant/internal/display"
	"github.com/aldenhart/quadrant/internal/state"
)

// Original is the classic playback screen: scrolling title with a big
// volume and sample-rate footer.
type Original struct {
	title    *Scroller
	lastText string
}

// NewOriginal returns the classic playback screen.
func NewOriginal() *Original {
	return &Original{title: NewScroller(2, 16)}
}

func (o *Original) Mode() coordinator.Mode { return coordinator.ModeOriginal }

func (o *Original) Render(cv *display.Canvas, s state.PlaybackState, _ time.Time) {
	w := cv.Bounds().Dx()
	h := cv.Bounds().Dy()

	line := s.Title
	if line == "" {
		line = "quadrant"
	}
	if line != o.lastText {
		o.title.Reset()
		o.lastText = line
	}
	cv.Text(o.title.X(cv.TextWidth(line), w), h/3, line)

	cv.HLine(0, h/2, w)
	cv.Text(2, h-6, fmt.Sprintf("Vol %d", s.Volume))
	if s.SampleRate > 0 {
		right := formatSampleRate(s.SampleRate)
		cv.Text(w-cv.TextWidth(right)-2, h-6, right)
	}
}

// Modern is the detailed playback screen: artist and scrolling title,
// progress bar, volume and audio format.
type Modern struct {
	title    *Scroller
	lastText string
}

// NewModern returns the detailed playback screen.
func NewModern() *Modern {
	return &Modern{title: NewScroller(2, 16)}
}

func (m *Modern) Mode() coordinator.Mode { return coordinator.ModeModern }

func (m *Modern) Render(cv *display.Canvas, s state.PlaybackState, _ time.Time) {
	w := cv.Bounds().Dx()
	h := cv.Bounds().Dy()

	cv.CenteredText(10, truncate(cv, s.Artist, w))

	title := s.Title
	if title != m.lastText {
		m.title.Reset()
		m.lastText = title
	}
	cv.Text(m.title.X(cv.TextWidth(title), w), 24, title)

	if s.HasProgress() {
		cv.ProgressBar(4, h/2+2, w-8, 5, float64(s.Elapsed)/float64(s.Duration))
		cv.Text(4, h-14, formatDuration(s.Elapsed))
		total := formatDuration(s.Duration)
		cv.Text(w-cv.TextWidth(total)-4, h-14, total)
	}

	cv.Text(2, h-2, fmt.Sprintf("Vol %d", s.Volume))
	if s.SampleRate > 0 {
		right := formatSampleRate(s.SampleRate)
		if s.BitDepth > 0 {
			right = fmt.Sprintf("%s/%dbit", right, s.BitDepth)
		}
		cv.Text(w-cv.TextWidth(right)-2, h-2, right)
	}
}

// WebRadio shows the station and the stream's now-playing metadata.
type WebRadio struct {
	station  *Scroller
	lastText string
}

// NewWebRadio returns the stream playback screen.
func NewWebRadio() *WebRadio {
	return &WebRadio{station: NewScroller(2, 16)}
}

func (w *WebRadio) Mode() coordinator.Mode { return coordinator.ModeWebRadio }

func (w *WebRadio) Render(cv *display.Canvas, s state.PlaybackState, _ time.Time) {
	width := cv.Bounds().Dx()
	h := cv.Bounds().Dy()

	cv.CenteredText(10, "WEB RADIO")
	cv.HLine(0, 14, width)

	station := s.Title
	if station == "" {
		station = "(no station)"
	}
	if station != w.lastText {
		w.station.Reset()
		w.lastText = station
	}
	cv.Text(w.station.X(cv.TextWidth(station), width), 30, station)

	if s.Artist != "" {
		cv.CenteredText(44, truncate(cv, s.Artist, width))
	}
	cv.Text(2, h-2, fmt.Sprintf("Vol %d", s.Volume))
}

// truncate trims s with an ellipsis so it fits in width pixels.
func truncate(cv *display.Canvas, s string, width int) string {
	if cv.TextWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && cv.TextWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatSampleRate(hz int) string {
	khz := float64(hz) / 1000
	if khz == float64(int(khz)) {
		return fmt.Sprintf("%dkHz", int(khz))
	}
	return fmt.Sprintf("%.1fkHz", khz)
}
