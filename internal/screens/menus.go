package screens

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aldenhart/quadrant/internal/config"
	"github.com/aldenhart/quadrant/internal/coordinator"
	"github.com/aldenhart/quadrant/internal/listener"
	"github.com/aldenhart/quadrant/internal/logging"
)

// Trigger requests a mode change by name. It is the coordinator's Trigger
// method in production.
type Trigger func(name string) error

// Library is the slice of the backend the browsing screens need. The
// backend listener satisfies it.
type Library interface {
	ListEntries(uri string) ([]listener.Entry, error)
	Playlists() ([]listener.Entry, error)
	PlayURI(uri string) error
	PlayPlaylist(name string) error
}

// NewMainMenu builds the top-level menu reached by a long press.
func NewMainMenu(trigger Trigger) *Menu {
	goTo := func(name string) func() {
		return func() { mustTrigger(trigger, name) }
	}
	items := []MenuItem{
		{Label: "Now playing", Action: goTo("playback")},
		{Label: "Library", Action: goTo("library")},
		{Label: "USB library", Action: goTo("usblibrary")},
		{Label: "Playlists", Action: goTo("playlists")},
		{Label: "Radio", Action: goTo("radio")},
		{Label: "Clock settings", Action: goTo("clockmenu")},
		{Label: "Display settings", Action: goTo("displaymenu")},
		{Label: "Screensaver", Action: goTo("screensavermenu")},
		{Label: "System info", Action: goTo("systeminfo")},
	}
	return NewMenu(coordinator.ModeMenu, "MENU", items, goTo("clock"))
}

// NewClockMenu builds the clock settings submenu. Selections persist to
// the preferences store immediately.
func NewClockMenu(prefs *config.PrefsStore, trigger Trigger) *Menu {
	back := func() { mustTrigger(trigger, "menu") }
	set := func(fn func(*config.Preferences)) func() {
		return func() {
			if err := prefs.Update(fn); err != nil {
				logging.Warn("Saving preferences failed", zap.Error(err))
			}
			back()
		}
	}
	items := []MenuItem{
		{Label: "24 hour", Action: set(func(p *config.Preferences) { p.ClockFormat = "15:04" })},
		{Label: "12 hour", Action: set(func(p *config.Preferences) { p.ClockFormat = "3:04 PM" })},
		{Label: "Seconds on", Action: set(func(p *config.Preferences) { p.ShowSeconds = true })},
		{Label: "Seconds off", Action: set(func(p *config.Preferences) { p.ShowSeconds = false })},
	}
	return NewMenu(coordinator.ModeClockMenu, "CLOCK", items, back)
}

// NewDisplayMenu builds the playback screen chooser.
func NewDisplayMenu(prefs *config.PrefsStore, trigger Trigger) *Menu {
	back := func() { mustTrigger(trigger, "menu") }
	choose := func(mode string) func() {
		return func() {
			if err := prefs.SetDisplayMode(mode); err != nil {
				logging.Warn("Saving display mode failed", zap.Error(err))
			}
			back()
		}
	}
	items := []MenuItem{
		{Label: "Original", Action: choose(config.DisplayModeOriginal)},
		{Label: "Modern", Action: choose(config.DisplayModeModern)},
	}
	return NewMenu(coordinator.ModeDisplayMenu, "DISPLAY", items, back)
}

// NewScreensaverMenu builds the screensaver settings submenu: the variant
// to show and how long the clock idles before it engages.
func NewScreensaverMenu(prefs *config.PrefsStore, trigger Trigger) *Menu {
	back := func() { mustTrigger(trigger, "menu") }
	set := func(fn func(*config.Preferences)) func() {
		return func() {
			if err := prefs.Update(fn); err != nil {
				logging.Warn("Saving preferences failed", zap.Error(err))
			}
			back()
		}
	}
	variant := func(name string) func() {
		return set(func(p *config.Preferences) { p.Screensaver = name })
	}
	delay := func(minutes int) func() {
		return set(func(p *config.Preferences) { p.ScreensaverDelay = minutes })
	}
	items := []MenuItem{
		{Label: "Bouncing clock", Action: variant(config.ScreensaverBounce)},
		{Label: "Starfield", Action: variant(config.ScreensaverStarfield)},
		{Label: "After 1 min", Action: delay(1)},
		{Label: "After 5 min", Action: delay(5)},
		{Label: "After 10 min", Action: delay(10)},
		{Label: "After 30 min", Action: delay(30)},
	}
	return NewMenu(coordinator.ModeScreensaverMenu, "SCREENSAVER", items, back)
}

// NewPlaylistsMenu lists the backend's stored playlists; selecting one
// replaces the queue and starts playback.
func NewPlaylistsMenu(src Library, trigger Trigger) *Menu {
	load := func() []MenuItem {
		entries, err := src.Playlists()
		if err != nil {
			logging.Warn("Listing playlists failed", zap.Error(err))
			return nil
		}
		items := make([]MenuItem, 0, len(entries))
		for _, e := range entries {
			name := e.Name
			items = append(items, MenuItem{Label: name, Action: func() {
				if err := src.PlayPlaylist(name); err != nil {
					logging.Warn("Starting playlist failed",
						zap.String("playlist", name), zap.Error(err))
					return
				}
				mustTrigger(trigger, "playback")
			}})
		}
		return items
	}
	return NewDynamicMenu(coordinator.ModePlaylists, "PLAYLISTS", load,
		func() { mustTrigger(trigger, "menu") })
}

// Browser is a hierarchical database browser built on the list screen:
// directories descend, files replace the queue and play, long press
// ascends (or leaves the browser at the root).
//
// path is touched from two goroutines: item actions run on the input
// poller, OnStart on whatever drives the mode transition. It gets its
// own lock; the embedded Menu's mutex is held inside Menu.OnStart while
// the loader runs, so sharing it would deadlock.
type Browser struct {
	*Menu
	src      Library
	trigger  Trigger
	playMode string // trigger name used after starting a selection
	root     string

	pathMu sync.Mutex
	path   []string
}

// NewBrowser builds a browser rooted at the given database directory.
func NewBrowser(mode coordinator.Mode, title, root string, src Library, trigger Trigger, playMode string) *Browser {
	b := &Browser{
		src:      src,
		trigger:  trigger,
		playMode: playMode,
		root:     root,
	}
	b.Menu = NewDynamicMenu(mode, title, b.level, b.up)
	return b
}

// NewLibraryBrowser browses the main music database.
func NewLibraryBrowser(src Library, trigger Trigger) *Browser {
	return NewBrowser(coordinator.ModeLibrary, "LIBRARY", "", src, trigger, "playback")
}

// NewUSBBrowser browses USB-mounted media.
func NewUSBBrowser(src Library, trigger Trigger) *Browser {
	return NewBrowser(coordinator.ModeUSBLibrary, "USB", "USB", src, trigger, "playback")
}

// NewRadioBrowser browses the stored radio stations directory.
func NewRadioBrowser(src Library, trigger Trigger) *Browser {
	return NewBrowser(coordinator.ModeRadio, "RADIO", "RADIO", src, trigger, "webradio")
}

// OnStart rewinds the browser to its root before the generic reload.
func (b *Browser) OnStart() {
	b.pathMu.Lock()
	b.path = nil
	b.pathMu.Unlock()
	b.Menu.OnStart()
}

func (b *Browser) current() string {
	b.pathMu.Lock()
	defer b.pathMu.Unlock()
	if len(b.path) == 0 {
		return b.root
	}
	return b.path[len(b.path)-1]
}

func (b *Browser) descend(uri string) {
	b.pathMu.Lock()
	b.path = append(b.path, uri)
	b.pathMu.Unlock()
	b.Menu.OnStart()
}

func (b *Browser) level() []MenuItem {
	uri := b.current()
	entries, err := b.src.ListEntries(uri)
	if err != nil {
		logging.Warn("Browsing failed",
			zap.String("uri", uri), zap.Error(err))
		return nil
	}
	items := make([]MenuItem, 0, len(entries))
	for _, e := range entries {
		e := e
		if e.Dir {
			items = append(items, MenuItem{Label: e.Name + "/", Action: func() {
				b.descend(e.URI)
			}})
		} else {
			items = append(items, MenuItem{Label: e.Name, Action: func() {
				if err := b.src.PlayURI(e.URI); err != nil {
					logging.Warn("Starting playback failed",
						zap.String("uri", e.URI), zap.Error(err))
					return
				}
				mustTrigger(b.trigger, b.playMode)
			}})
		}
	}
	return items
}

// up ascends one level, or leaves the browser from the root.
func (b *Browser) up() {
	b.pathMu.Lock()
	if len(b.path) == 0 {
		b.pathMu.Unlock()
		mustTrigger(b.trigger, "menu")
		return
	}
	b.path = b.path[:len(b.path)-1]
	b.pathMu.Unlock()
	b.Menu.OnStart()
}

func mustTrigger(trigger Trigger, name string) {
	if err := trigger(name); err != nil {
		logging.Error(fmt.Sprintf("Mode change to %q failed", name), zap.Error(err))
	}
}
