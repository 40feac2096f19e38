package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "quadrant"
	configFile = "config.yaml"
)

// Config is the daemon configuration loaded from config.yaml. Every field
// has a usable default so a missing file is not an error.
type Config struct {
	Backend Backend `yaml:"backend"`
	Display Display `yaml:"display"`
	Rotary  Rotary  `yaml:"rotary"`
	Panel   Panel   `yaml:"panel"`
	Timing  Timing  `yaml:"timing"`

	// PrefsPath overrides the location of the JSON preferences file.
	PrefsPath string `yaml:"prefs_path,omitempty"`
}

// Backend describes the connection to the playback backend.
type Backend struct {
	Host string `yaml:"host"` // empty enables mDNS discovery
	Port int    `yaml:"port"`

	ReconnectBase time.Duration `yaml:"reconnect_base"` // base backoff delay
	ReconnectMax  time.Duration `yaml:"reconnect_max"`  // backoff cap
}

// Addr returns the host:port dial address for the backend.
func (b Backend) Addr() string {
	return fmt.Sprintf("%s:%d", b.Host, b.Port)
}

// Display describes the OLED attached to the front panel.
type Display struct {
	Driver string `yaml:"driver"` // "ssd1306" or "none"
	Bus    string `yaml:"bus"`    // I2C bus name, empty = first available
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	RedrawInterval time.Duration `yaml:"redraw_interval"` // bounds staleness per screen loop
}

// Rotary describes the quadrature encoder and its shaft button.
type Rotary struct {
	ClkPin string `yaml:"clk_pin"`
	DtPin  string `yaml:"dt_pin"`
	SwPin  string `yaml:"sw_pin"`

	PollInterval       time.Duration `yaml:"poll_interval"`
	LongPressThreshold time.Duration `yaml:"long_press_threshold"`
}

// Panel describes the button-matrix/LED port expander.
type Panel struct {
	Enabled  bool          `yaml:"enabled"`
	Bus      string        `yaml:"bus"`
	I2CAddr  uint16        `yaml:"i2c_addr"`
	LEDPulse time.Duration `yaml:"led_pulse"`

	PollInterval time.Duration `yaml:"poll_interval"`
}

// Timing holds product-tuned delays. These are configuration, not
// correctness invariants.
type Timing struct {
	GraceDelay     time.Duration `yaml:"grace_delay"`     // stop/pause tolerance before leaving playback
	SuppressWindow time.Duration `yaml:"suppress_window"` // echo-ignore window after local commands
}

// Default returns the product-default configuration.
func Default() *Config {
	return &Config{
		Backend: Backend{
			Host:          "localhost",
			Port:          6600,
			ReconnectBase: 5 * time.Second,
			ReconnectMax:  60 * time.Second,
		},
		Display: Display{
			Driver:         "ssd1306",
			Width:          128,
			Height:         64,
			RedrawInterval: 100 * time.Millisecond,
		},
		Rotary: Rotary{
			ClkPin:             "GPIO13",
			DtPin:              "GPIO5",
			SwPin:              "GPIO6",
			PollInterval:       time.Millisecond,
			LongPressThreshold: 1500 * time.Millisecond,
		},
		Panel: Panel{
			Enabled:      true,
			I2CAddr:      0x20,
			LEDPulse:     500 * time.Millisecond,
			PollInterval: 100 * time.Millisecond,
		},
		Timing: Timing{
			GraceDelay:     500 * time.Millisecond,
			SuppressWindow: 2 * time.Second,
		},
	}
}

// GetConfigDir returns the configuration directory for the daemon:
// $XDG_CONFIG_HOME/quadrant or $HOME/.config/quadrant.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration from path. An empty path uses the default
// location; a missing file returns defaults. Unset fields are filled in
// with their defaults so a sparse file stays valid.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults replaces zero values with the product defaults so a partial
// config file never yields a dead subsystem.
func (c *Config) fillDefaults() {
	def := Default()

	if c.Backend.Port == 0 {
		c.Backend.Port = def.Backend.Port
	}
	if c.Backend.ReconnectBase <= 0 {
		c.Backend.ReconnectBase = def.Backend.ReconnectBase
	}
	if c.Backend.ReconnectMax <= 0 {
		c.Backend.ReconnectMax = def.Backend.ReconnectMax
	}
	if c.Display.Driver == "" {
		c.Display.Driver = def.Display.Driver
	}
	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height == 0 {
		c.Display.Height = def.Display.Height
	}
	if c.Display.RedrawInterval <= 0 {
		c.Display.RedrawInterval = def.Display.RedrawInterval
	}
	if c.Rotary.ClkPin == "" {
		c.Rotary.ClkPin = def.Rotary.ClkPin
	}
	if c.Rotary.DtPin == "" {
		c.Rotary.DtPin = def.Rotary.DtPin
	}
	if c.Rotary.SwPin == "" {
		c.Rotary.SwPin = def.Rotary.SwPin
	}
	if c.Rotary.PollInterval <= 0 {
		c.Rotary.PollInterval = def.Rotary.PollInterval
	}
	if c.Rotary.LongPressThreshold <= 0 {
		c.Rotary.LongPressThreshold = def.Rotary.LongPressThreshold
	}
	if c.Panel.I2CAddr == 0 {
		c.Panel.I2CAddr = def.Panel.I2CAddr
	}
	if c.Panel.LEDPulse <= 0 {
		c.Panel.LEDPulse = def.Panel.LEDPulse
	}
	if c.Panel.PollInterval <= 0 {
		c.Panel.PollInterval = def.Panel.PollInterval
	}
	if c.Timing.GraceDelay <= 0 {
		c.Timing.GraceDelay = def.Timing.GraceDelay
	}
	if c.Timing.SuppressWindow <= 0 {
		c.Timing.SuppressWindow = def.Timing.SuppressWindow
	}
}
