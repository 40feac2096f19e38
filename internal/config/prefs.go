package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const prefsFile = "preferences.json"

// Display mode preference values. The user picks which playback screen the
// coordinator activates when playback starts.
const (
	DisplayModeOriginal = "original"
	DisplayModeModern   = "modern"
)

// Screensaver variant names.
const (
	ScreensaverBounce    = "bounce"
	ScreensaverStarfield = "starfield"
)

// Preferences are the user's screen choices, read at startup and written
// whenever a menu selection changes them. Stored as a small JSON file next
// to the daemon config.
type Preferences struct {
	DisplayMode      string `json:"display_mode"`      // "original" or "modern"
	ClockFormat      string `json:"clock_format"`      // time layout for the clock screen
	ShowSeconds      bool   `json:"show_seconds"`
	Screensaver      string `json:"screensaver"`       // "bounce" or "starfield"
	ScreensaverDelay int    `json:"screensaver_delay"` // minutes of idle before screensaver
}

// DefaultPreferences returns the product-default preferences.
func DefaultPreferences() *Preferences {
	return &Preferences{
		DisplayMode:      DisplayModeModern,
		ClockFormat:      "15:04",
		ShowSeconds:      false,
		Screensaver:      ScreensaverBounce,
		ScreensaverDelay: 10,
	}
}

// PrefsStore loads and persists Preferences with atomic writes. Safe for
// concurrent use.
type PrefsStore struct {
	mu    sync.Mutex
	path  string
	prefs *Preferences
}

// NewPrefsStore opens (or initializes) the preferences store at path. An
// empty path uses the default location. A missing or unreadable file
// degrades to defaults with no error; preferences are not worth refusing
// to boot over.
func NewPrefsStore(path string) (*PrefsStore, error) {
	if path == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, prefsFile)
	}

	s := &PrefsStore{path: path, prefs: DefaultPreferences()}

	data, err := os.ReadFile(path)
	if err == nil {
		var p Preferences
		if jsonErr := json.Unmarshal(data, &p); jsonErr == nil {
			s.prefs = merge(&p)
		}
	}

	return s, nil
}

// merge fills unset fields with defaults so older files keep working.
func merge(p *Preferences) *Preferences {
	def := DefaultPreferences()
	if p.DisplayMode != DisplayModeOriginal && p.DisplayMode != DisplayModeModern {
		p.DisplayMode = def.DisplayMode
	}
	if p.ClockFormat == "" {
		p.ClockFormat = def.ClockFormat
	}
	if p.Screensaver == "" {
		p.Screensaver = def.Screensaver
	}
	if p.ScreensaverDelay <= 0 {
		p.ScreensaverDelay = def.ScreensaverDelay
	}
	return p
}

// Get returns a copy of the current preferences.
func (s *PrefsStore) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.prefs
}

// Update applies fn to the preferences and persists the result.
func (s *PrefsStore) Update(fn func(*Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.prefs)
	return s.save()
}

// SetDisplayMode persists the user's playback screen choice.
func (s *PrefsStore) SetDisplayMode(mode string) error {
	if mode != DisplayModeOriginal && mode != DisplayModeModern {
		return fmt.Errorf("unknown display mode: %q", mode)
	}
	return s.Update(func(p *Preferences) { p.DisplayMode = mode })
}

// save writes the preferences atomically: write to a temp file, then rename.
func (s *PrefsStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary preferences file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save preferences file: %w", err)
	}

	return nil
}
