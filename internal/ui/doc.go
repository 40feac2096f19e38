// Package ui implements the live monitor TUI for the quadrantd CLI.
//
// The monitor is a Bubble Tea program that mirrors what the front panel
// sees: the current playback snapshot as it streams in from the backend
// listener, plus connection status. It is a development and debugging
// surface; the OLED rendering itself lives in the screens package.
//
// # Logging Integration
//
// This package expects logging to be controlled via the QUADRANT_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent,
// allowing the TUI output to be displayed cleanly.
package ui
