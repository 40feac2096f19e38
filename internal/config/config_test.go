package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.Host != "localhost" {
		t.Errorf("Backend.Host = %v, want localhost", cfg.Backend.Host)
	}
	if cfg.Backend.Port != 6600 {
		t.Errorf("Backend.Port = %v, want 6600", cfg.Backend.Port)
	}
	if cfg.Timing.GraceDelay != 500*time.Millisecond {
		t.Errorf("Timing.GraceDelay = %v, want 500ms", cfg.Timing.GraceDelay)
	}
	if cfg.Rotary.LongPressThreshold != 1500*time.Millisecond {
		t.Errorf("Rotary.LongPressThreshold = %v, want 1.5s", cfg.Rotary.LongPressThreshold)
	}
}

func TestBackendAddr(t *testing.T) {
	b := Backend{Host: "moode.local", Port: 6600}
	if got := b.Addr(); got != "moode.local:6600" {
		t.Errorf("Addr() = %v, want moode.local:6600", got)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file should not error, got %v", err)
	}
	if cfg.Backend.Port != 6600 {
		t.Errorf("missing file should yield defaults, got port %d", cfg.Backend.Port)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
backend:
  host: player.local
rotary:
  clk_pin: GPIO17
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.Host != "player.local" {
		t.Errorf("Backend.Host = %v, want player.local", cfg.Backend.Host)
	}
	// Unset fields fall back to defaults
	if cfg.Backend.Port != 6600 {
		t.Errorf("Backend.Port = %v, want default 6600", cfg.Backend.Port)
	}
	if cfg.Rotary.ClkPin != "GPIO17" {
		t.Errorf("Rotary.ClkPin = %v, want GPIO17", cfg.Rotary.ClkPin)
	}
	if cfg.Rotary.DtPin != "GPIO5" {
		t.Errorf("Rotary.DtPin = %v, want default GPIO5", cfg.Rotary.DtPin)
	}
	if cfg.Timing.GraceDelay != 500*time.Millisecond {
		t.Errorf("Timing.GraceDelay = %v, want default 500ms", cfg.Timing.GraceDelay)
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() on malformed YAML should error")
	}
}
