package screens

import (
	"sync"
	"time"

	"github.com/aldenhart/quadrant/internal/coordinator"
	"github.com/aldenhart/quadrant/internal/display"
	"github.com/aldenhart/quadrant/internal/state"
)

// MenuItem is one selectable row.
type MenuItem struct {
	Label  string
	Action func()
}

// InputHandler is implemented by screens that consume rotary and button
// events while active. The input router delivers events to the active
// screen's loop only.
type InputHandler interface {
	HandleRotate(delta int)
	HandleSelect()
	HandleBack()
}

// Menu is the shared list screen behind the whole menu family: the main
// menu, the settings submenus and the library/playlist/radio browsers.
// Rotary turns move the selection, a short press runs the item's action, a
// long press runs the back action.
type Menu struct {
	mode  coordinator.Mode
	title string
	load  func() []MenuItem
	back  func()

	mu       sync.Mutex
	items    []MenuItem
	selected int
}

// NewMenu builds a list screen with a static item set.
func NewMenu(mode coordinator.Mode, title string, items []MenuItem, back func()) *Menu {
	return &Menu{mode: mode, title: title, items: items, back: back}
}

// NewDynamicMenu builds a list screen whose items are reloaded every time
// the mode is entered (browsers fetching from the backend).
func NewDynamicMenu(mode coordinator.Mode, title string, load func() []MenuItem, back func()) *Menu {
	return &Menu{mode: mode, title: title, load: load, back: back}
}

func (m *Menu) Mode() coordinator.Mode { return m.mode }

// OnStart refreshes dynamic items and rewinds the selection.
func (m *Menu) OnStart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.load != nil {
		m.items = m.load()
	}
	m.selected = 0
}

// HandleRotate moves the selection, clamped to the list ends.
func (m *Menu) HandleRotate(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.items) {
		m.selected = len(m.items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// HandleSelect runs the selected item's action.
func (m *Menu) HandleSelect() {
	m.mu.Lock()
	var action func()
	if m.selected < len(m.items) {
		action = m.items[m.selected].Action
	}
	m.mu.Unlock()
	if action != nil {
		action()
	}
}

// HandleBack runs the menu's back action.
func (m *Menu) HandleBack() {
	if m.back != nil {
		m.back()
	}
}

// Selected returns the current selection index.
func (m *Menu) Selected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

func (m *Menu) Render(cv *display.Canvas, _ state.PlaybackState, _ time.Time) {
	m.mu.Lock()
	items := m.items
	selected := m.selected
	m.mu.Unlock()

	w := cv.Bounds().Dx()
	cv.CenteredText(10, m.title)
	cv.HLine(0, 13, w)

	if len(items) == 0 {
		cv.CenteredText(34, "(empty)")
		return
	}

	// Keep the selection inside a window of visible rows.
	const rowH = 12
	visible := (cv.Bounds().Dy() - 16) / rowH
	if visible < 1 {
		visible = 1
	}
	first := 0
	if selected >= visible {
		first = selected - visible + 1
	}

	y := 25
	for i := first; i < len(items) && i < first+visible; i++ {
		label := truncate(cv, items[i].Label, w-12)
		if i == selected {
			cv.Text(2, y, ">")
		}
		cv.Text(12, y, label)
		y += rowH
	}
}
