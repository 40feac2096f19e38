package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"periph.io/x/host/v3"

	"github.com/aldenhart/quadrant/internal/config"
	"github.com/aldenhart/quadrant/internal/coordinator"
	"github.com/aldenhart/quadrant/internal/discovery"
	"github.com/aldenhart/quadrant/internal/display"
	"github.com/aldenhart/quadrant/internal/input"
	"github.com/aldenhart/quadrant/internal/listener"
	"github.com/aldenhart/quadrant/internal/logging"
	"github.com/aldenhart/quadrant/internal/panel"
	"github.com/aldenhart/quadrant/internal/screens"
	"github.com/aldenhart/quadrant/internal/state"
)

// Daemon command flags
var (
	configPath  string
	logLevel    string
	scanTimeout int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); default from QUADRANT_LOG_LEVEL")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(monitorCmd)
}

// runCmd starts the daemon (also the root command's default behavior)
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the front-panel daemon",
	Long: `Run the front-panel daemon until interrupted.

Connects to the configured MPD backend (or discovers one via mDNS when no
host is configured), opens the OLED and input hardware, and services the
panel until SIGINT/SIGTERM. Hardware that fails to open degrades that
subsystem only; the daemon keeps running with what it has.`,
	RunE: runDaemon,
}

// scanCmd discovers MPD backends on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for MPD servers on the network",
	Long: `Scan for MPD servers using mDNS/DNS-SD discovery.

This command listens for "_mpd._tcp" service advertisements and displays
all discovered servers with their addresses and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  quadrantd scan

  # Quick 3-second scan
  quadrantd scan --timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for MPD servers (timeout: %ds)...\n\n", scanTimeout)

	backends, err := discovery.ScanForBackends(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(backends) == 0 {
		fmt.Println("No MPD servers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Check that the player is powered on and on the same network")
		fmt.Println("  - MPD must be built with zeroconf support and have it enabled")
		fmt.Println("  - Firewalls must allow mDNS (UDP port 5353)")
		fmt.Println("  - Set backend.host in config.yaml to skip discovery")
		return nil
	}

	fmt.Printf("Found %d server(s):\n\n", len(backends))
	for i, b := range backends {
		fmt.Printf("%d. %s\n", i+1, b)
		if len(b.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", b.Metadata)
		}
	}

	return nil
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	prefs, err := config.NewPrefsStore(cfg.PrefsPath)
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}

	addr, err := backendAddr(cfg)
	if err != nil {
		return err
	}

	// One-time hardware registry init; failure downgrades every hardware
	// subsystem to its stub but the daemon still runs.
	if _, err := host.Init(); err != nil {
		logging.Warn("Hardware init failed, running headless", zap.Error(err))
	}

	suppressor := state.NewSuppressor()
	src := listener.New(addr,
		listener.WithBackoff(cfg.Backend.ReconnectBase, cfg.Backend.ReconnectMax),
		listener.WithSuppress(func() { suppressor.SuppressFor(cfg.Timing.SuppressWindow) }),
	)

	dev := openDisplay(cfg)
	defer dev.Close()

	coord := coordinator.New(suppressor, cfg.Timing.GraceDelay,
		func() string { return prefs.Get().DisplayMode })

	screenSet := buildScreens(addr, prefs, src, coord)
	loops := make(map[coordinator.Mode]*screens.Loop, len(screenSet))
	for _, s := range screenSet {
		loop := screens.NewLoop(s, dev, activeFor(coord, s.Mode()), suppressor.Suppressed, cfg.Display.RedrawInterval)
		loops[s.Mode()] = loop
		coord.Register(loop)
	}
	// Deferred after dev.Close, so it runs first: no loop may touch the
	// device once it is closed.
	defer func() {
		for _, loop := range loops {
			loop.Stop()
		}
	}()

	// Every snapshot goes to the coordinator (transitions) and to every
	// loop's mailbox; only the active loop renders.
	src.Subscribe(func(s state.PlaybackState) {
		coord.HandleState(s)
		for _, loop := range loops {
			loop.Publish(s)
		}
	})

	idle := coordinator.NewIdleWatch(coord, func() time.Duration {
		return time.Duration(prefs.Get().ScreensaverDelay) * time.Minute
	})

	rotary := openRotary(cfg, coord, src, screenSet, idle)
	if rotary != nil {
		rotary.Start()
		defer rotary.Stop()
	}

	if pnl := openPanel(cfg, src); pnl != nil {
		src.Subscribe(pnl.HandleState)
		pnl.Start()
		defer pnl.Stop()
	}

	if err := coord.Trigger("clock"); err != nil {
		return err
	}
	go src.Run()
	defer src.Stop()

	logging.Info("Daemon running",
		zap.String("backend", addr),
		zap.String("display", cfg.Display.Driver))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logging.Info("Shutting down")
	return nil
}

// backendAddr resolves the backend address, falling back to mDNS
// discovery when the config names no host.
func backendAddr(cfg *config.Config) (string, error) {
	if cfg.Backend.Host != "" {
		return cfg.Backend.Addr(), nil
	}

	logging.Info("No backend host configured, discovering via mDNS")
	scanner := discovery.NewScanner()
	backend, err := scanner.FindFirst(context.Background())
	if err != nil {
		return "", fmt.Errorf("backend discovery: %w", err)
	}
	logging.Info("Discovered backend", zap.String("backend", backend.String()))
	return backend.Addr(), nil
}

// openDisplay opens the configured OLED, degrading to a stub when the
// hardware is missing.
func openDisplay(cfg *config.Config) display.Device {
	if cfg.Display.Driver != "ssd1306" {
		logging.Info("Display disabled, using stub")
		return display.NewStub(cfg.Display.Width, cfg.Display.Height)
	}

	dev, err := display.OpenOLED(cfg.Display.Bus, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		logging.Warn("Display unavailable, continuing without it", zap.Error(err))
		return display.NewStub(cfg.Display.Width, cfg.Display.Height)
	}
	return dev
}

// buildScreens constructs the full screen set.
func buildScreens(backendAddr string, prefs *config.PrefsStore, src *listener.Listener, coord *coordinator.Coordinator) []screens.Screen {
	trigger := coord.Trigger
	return []screens.Screen{
		screens.NewClock(prefs),
		screens.NewOriginal(),
		screens.NewModern(),
		screens.NewWebRadio(),
		screens.NewSystemInfo(backendAddr),
		screens.NewScreensaver(prefs),
		screens.NewMainMenu(trigger),
		screens.NewClockMenu(prefs, trigger),
		screens.NewDisplayMenu(prefs, trigger),
		screens.NewScreensaverMenu(prefs, trigger),
		screens.NewPlaylistsMenu(src, trigger),
		screens.NewLibraryBrowser(src, trigger),
		screens.NewUSBBrowser(src, trigger),
		screens.NewRadioBrowser(src, trigger),
	}
}

func activeFor(coord *coordinator.Coordinator, mode coordinator.Mode) func() bool {
	return func() bool { return coord.Active(mode) }
}

// openRotary claims the encoder pins and routes gestures: menus consume
// them for navigation, everywhere else they are transport controls. Any
// gesture wakes the screensaver and resets the idle countdown.
func openRotary(cfg *config.Config, coord *coordinator.Coordinator, src *listener.Listener, screenSet []screens.Screen, idle *coordinator.IdleWatch) *input.Rotary {
	byMode := make(map[coordinator.Mode]screens.Screen, len(screenSet))
	for _, s := range screenSet {
		byMode[s.Mode()] = s
	}
	activeHandler := func() screens.InputHandler {
		if h, ok := byMode[coord.Current()].(screens.InputHandler); ok {
			return h
		}
		return nil
	}
	// wake consumes the gesture that lifted the screensaver.
	wake := func() bool {
		idle.Touch()
		if coord.Current() != coordinator.ModeScreensaver {
			return false
		}
		if err := coord.Trigger("clock"); err != nil {
			logging.Warn("Leaving screensaver failed", zap.Error(err))
		}
		return true
	}

	events := input.Events{
		Rotate: func(delta int) {
			if wake() {
				return
			}
			if h := activeHandler(); h != nil {
				h.HandleRotate(delta)
				return
			}
			if err := src.AdjustVolume(delta * 2); err != nil {
				logging.Debug("Volume adjust failed", zap.Error(err))
			}
		},
		Short: func() {
			if wake() {
				return
			}
			if h := activeHandler(); h != nil {
				h.HandleSelect()
				return
			}
			if err := src.Toggle(); err != nil {
				logging.Debug("Toggle failed", zap.Error(err))
			}
		},
		Long: func() {
			if wake() {
				return
			}
			if h := activeHandler(); h != nil {
				h.HandleBack()
				return
			}
			if err := coord.Trigger("menu"); err != nil {
				logging.Warn("Menu transition failed", zap.Error(err))
			}
		},
	}

	rotary, err := input.NewRotary(
		cfg.Rotary.ClkPin, cfg.Rotary.DtPin, cfg.Rotary.SwPin,
		cfg.Rotary.PollInterval, cfg.Rotary.LongPressThreshold, events)
	if err != nil {
		logging.Warn("Rotary unavailable, continuing without it", zap.Error(err))
		return nil
	}
	return rotary
}

// openPanel opens the button/LED expander, degrading to nothing when the
// board is absent or disabled.
func openPanel(cfg *config.Config, src *listener.Listener) *panel.Panel {
	if !cfg.Panel.Enabled {
		return nil
	}
	exp, err := panel.OpenExpander(cfg.Panel.Bus, cfg.Panel.I2CAddr)
	if err != nil {
		logging.Warn("Panel unavailable, continuing without it", zap.Error(err))
		return nil
	}
	leds := panel.NewLEDs(exp, cfg.Panel.LEDPulse)
	return panel.New(exp, src, leds, cfg.Panel.PollInterval)
}
