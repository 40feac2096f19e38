// Package logging provides structured logging for the quadrant daemon.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the daemon. It provides both general logging
// functions and specialized functions for panel-specific logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (quadrature transitions, mailbox swaps)
//   - Info: Normal operations (connections, mode changes, commands)
//   - Warn: Non-fatal issues (connection drops, retries, missed joins)
//   - Error: Fatal issues (startup failures, bus errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Backend connected",
//	    zap.String("addr", "localhost:6600"),
//	    zap.Int("attempt", 3),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogConnection(addr, "connected")
//	logging.LogConnection(addr, "reconnect_scheduled")
//	logging.LogModeChange("clock", "modern")
//
// # Configuration
//
// Initialize logging at daemon startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is configured (flag or QUADRANT_LOG_LEVEL), the package
// installs a nop logger so utility commands stay silent.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
