package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aldenhart/quadrant/internal/config"
	"github.com/aldenhart/quadrant/internal/listener"
	"github.com/aldenhart/quadrant/internal/logging"
	"github.com/aldenhart/quadrant/internal/state"
	"github.com/aldenhart/quadrant/internal/ui"
)

// monitorCmd shows the live backend state in the terminal
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch the backend's playback state live",
	Long: `Watch the playback state the front panel would render, in the terminal.

Connects to the configured backend exactly as the daemon does and shows
each state push as it arrives. Useful for checking wiring and backend
behavior without the panel hardware.`,
	RunE: runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	addr, err := backendAddr(cfg)
	if err != nil {
		return err
	}

	src := listener.New(addr,
		listener.WithBackoff(cfg.Backend.ReconnectBase, cfg.Backend.ReconnectMax))

	program := tea.NewProgram(ui.NewMonitorModel(addr))
	src.Subscribe(func(s state.PlaybackState) {
		program.Send(ui.StateMsg(s))
		program.Send(ui.ConnMsg{Connected: true})
	})

	go src.Run()
	defer src.Stop()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("monitor UI: %w", err)
	}
	return nil
}
