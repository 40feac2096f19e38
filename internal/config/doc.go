// Package config provides configuration management for the quadrant daemon.
//
// Two files are managed:
//
//   - config.yaml: daemon configuration (backend address, GPIO pin names,
//     I2C addresses, timing constants). Loaded once at startup; every field
//     has a product default so a missing or sparse file still boots a fully
//     functional daemon.
//   - preferences.json: the user's screen choices (playback screen variant,
//     clock format, screensaver). Read at startup, written atomically on
//     every change from the settings menus.
//
// # File Location
//
// Both files live in $XDG_CONFIG_HOME/quadrant (or $HOME/.config/quadrant),
// overridable per file with flags.
//
// # Tuning Constants
//
// The grace delay (tolerated stop/pause gap during track changes) and the
// long-press threshold are product-tuned values, not correctness
// invariants, so they are configuration rather than code constants.
//
// # Thread Safety
//
// Config is read-only after Load. PrefsStore serializes all access and
// performs atomic writes (temp file + rename) to survive crashes.
package config
