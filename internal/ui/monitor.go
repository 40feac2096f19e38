package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aldenhart/quadrant/internal/state"
)

// StateMsg delivers a fresh playback snapshot to the monitor.
type StateMsg state.PlaybackState

// ConnMsg reports a backend connection status change.
type ConnMsg struct {
	Connected bool
}

// MonitorModel is the Bubble Tea model behind `quadrantd monitor`.
type MonitorModel struct {
	addr      string
	spin      spinner.Model
	width     int
	connected bool
	current   state.PlaybackState
	haveState bool
}

// NewMonitorModel returns a monitor for the backend at addr.
func NewMonitorModel(addr string) MonitorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)
	return MonitorModel{
		addr:  addr,
		spin:  s,
		width: GetTerminalWidth(),
	}
}

// Init implements tea.Model
func (m MonitorModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update implements tea.Model
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > MaxContentWidth {
			m.width = MaxContentWidth
		}

	case StateMsg:
		m.current = state.PlaybackState(msg)
		m.haveState = true

	case ConnMsg:
		m.connected = msg.Connected

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m MonitorModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("QUADRANT MONITOR - " + m.addr))
	b.WriteString("\n\n")

	if !m.haveState {
		b.WriteString(fmt.Sprintf("%s waiting for backend...\n", m.spin.View()))
	} else {
		b.WriteString(m.renderState())
	}

	b.WriteString("\n")
	b.WriteString(HintStyle.Render("press q to quit"))

	return BorderStyle(m.width).Render(b.String())
}

func (m MonitorModel) renderState() string {
	s := m.current

	statusStyle := StatusPauseStyle
	if s.Status == state.StatusPlay {
		statusStyle = StatusPlayStyle
	}

	rows := []struct{ key, value string }{
		{"Status", statusStyle.Render(strings.ToUpper(string(s.Status)))},
		{"Service", string(s.Service)},
		{"Title", s.Title},
		{"Artist", s.Artist},
		{"Album", s.Album},
		{"Volume", fmt.Sprintf("%d", s.Volume)},
	}
	if s.SampleRate > 0 {
		rows = append(rows, struct{ key, value string }{
			"Format", fmt.Sprintf("%d Hz / %d bit", s.SampleRate, s.BitDepth)})
	}
	if s.HasProgress() {
		rows = append(rows, struct{ key, value string }{
			"Progress", fmt.Sprintf("%s / %s", fmtClock(s.Elapsed), fmtClock(s.Duration))})
	}
	rows = append(rows, struct{ key, value string }{
		"Seq", fmt.Sprintf("%d", s.Seq)})

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(KeyStyle.Render(row.key + ":"))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(row.value))
		b.WriteString("\n")
	}
	return b.String()
}

func fmtClock(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
