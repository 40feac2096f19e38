package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestPrefsStoreDefaults(t *testing.T) {
	store, err := NewPrefsStore(filepath.Join(t.TempDir(), "preferences.json"))
	if err != nil {
		t.Fatalf("NewPrefsStore() error = %v", err)
	}

	prefs := store.Get()
	if prefs.DisplayMode != DisplayModeModern {
		t.Errorf("DisplayMode = %v, want %v", prefs.DisplayMode, DisplayModeModern)
	}
	if prefs.ClockFormat != "15:04" {
		t.Errorf("ClockFormat = %v, want 15:04", prefs.ClockFormat)
	}
}

func TestPrefsStoreSetDisplayMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	store, err := NewPrefsStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.SetDisplayMode(DisplayModeOriginal); err != nil {
		t.Fatalf("SetDisplayMode() error = %v", err)
	}

	// Written on change: a fresh store sees the persisted value.
	reloaded, err := NewPrefsStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Get().DisplayMode; got != DisplayModeOriginal {
		t.Errorf("reloaded DisplayMode = %v, want %v", got, DisplayModeOriginal)
	}
}

func TestPrefsStoreRejectsUnknownMode(t *testing.T) {
	store, err := NewPrefsStore(filepath.Join(t.TempDir(), "preferences.json"))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.SetDisplayMode("vaporwave"); err == nil {
		t.Error("SetDisplayMode() should reject unknown modes")
	}
}

func TestPrefsStoreCorruptFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store, err := NewPrefsStore(path)
	if err != nil {
		t.Fatalf("corrupt prefs file should not fail startup, got %v", err)
	}
	if store.Get().DisplayMode != DisplayModeModern {
		t.Error("corrupt prefs should degrade to defaults")
	}
}

func TestPrefsStoreMergesSparseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	sparse, _ := json.Marshal(map[string]string{"display_mode": "original"})
	if err := os.WriteFile(path, sparse, 0600); err != nil {
		t.Fatal(err)
	}

	store, err := NewPrefsStore(path)
	if err != nil {
		t.Fatal(err)
	}

	prefs := store.Get()
	if prefs.DisplayMode != DisplayModeOriginal {
		t.Errorf("DisplayMode = %v, want original", prefs.DisplayMode)
	}
	if prefs.ClockFormat == "" {
		t.Error("sparse file should be merged with defaults")
	}
}
