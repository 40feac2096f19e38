// Package display abstracts the front-panel OLED behind a small Device
// interface so screens render to a plain image and never touch the bus.
//
// The real device is an SSD1306 over I2C. Frame pushes are serialized by a
// process-wide lock; screens hand over a complete frame and the display
// either shows it whole or not at all. When the bus cannot be opened the
// daemon substitutes a Stub device, so a missing or broken display degrades
// that one subsystem and nothing else.
package display
