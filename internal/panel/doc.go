// Package panel drives the optional button/LED board behind an MCP23017
// port expander.
//
// The sixteen buttons form a 4x4 matrix on port B: the column lines (high
// nibble, outputs) are driven low one at a time while the row lines (low
// nibble, pulled-up inputs) are read back; a low row means the key at that
// row/column is down. Each scan pass produces the full pressed grid, and
// only a key's transition from up to down fires its action.
//
// Port A carries the LEDs. The lit word is the OR of a persistent status
// part (playback state) and a transient feedback part (a key was just
// pressed) that clears itself after a pulse interval. The combined word is
// written to the expander only when it differs from the last write.
//
// The expander sits behind a two-method interface so the scanner and the
// LED logic test against a fake; opening the real bus is the only
// hardware-touching step, and its failure downgrades the whole panel to a
// no-op.
package panel
