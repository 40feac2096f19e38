// Quadrantd is the front-panel controller daemon for an MPD-backed music
// player.
//
// It mirrors the player's state onto a small OLED, turns a rotary encoder
// and a button matrix into transport commands, and keeps the panel LEDs in
// step with playback. The daemon is designed for headless music appliances
// (Raspberry Pi class hardware) where the player itself runs elsewhere on
// the box or on the network.
//
// Usage:
//
//	quadrantd [command] [flags]
//
// Running without arguments starts the daemon.
// See 'quadrantd --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aldenhart/quadrant/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quadrantd",
	Short: "Front-panel controller for an MPD-backed player",
	Long: `Quadrantd drives an OLED front panel for a network music player.

It follows the player over MPD's idle protocol, renders the appropriate
screen (clock, now playing, web radio, menus), and maps the rotary
encoder and button matrix onto transport commands.

If no command is specified, the daemon starts.`,
	Version: version.Version,
	RunE:    runDaemon,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quadrantd %s (commit: %s)\n", version.Version, version.Commit)
	},
}
