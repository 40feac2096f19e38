package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the monitor UI
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - playing, connected
	WarningColor = lipgloss.Color("#FFA500") // Orange - paused, reconnecting
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

var (
	// TitleStyle is for the monitor banner
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			PaddingLeft(1)

	// StatusPlayStyle marks an actively playing backend
	StatusPlayStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// StatusPauseStyle marks a paused or stopped backend
	StatusPauseStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	// KeyStyle is for field labels (e.g., "Artist:")
	KeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(10)

	// ValueStyle is for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// HintStyle is for the quit hint footer
	HintStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// BorderStyle returns the border style for the monitor panel
func BorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Padding(0, 1)
}

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
