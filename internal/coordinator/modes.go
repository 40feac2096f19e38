package coordinator

import (
	"errors"
	"fmt"

	"github.com/aldenhart/quadrant/internal/config"
)

// Mode identifies the currently active screen/behavior of the device.
// Exactly one mode is active at any instant.
type Mode string

const (
	ModeBoot            Mode = "boot"
	ModeClock           Mode = "clock"
	ModeOriginal        Mode = "original" // classic playback screen
	ModeModern          Mode = "modern"   // detailed playback screen
	ModeWebRadio        Mode = "webradio"
	ModeMenu            Mode = "menu"
	ModeClockMenu       Mode = "clockmenu"
	ModeDisplayMenu     Mode = "displaymenu"
	ModeScreensaverMenu Mode = "screensavermenu"
	ModeLibrary         Mode = "library"
	ModeUSBLibrary      Mode = "usblibrary"
	ModePlaylists       Mode = "playlists"
	ModeRadio           Mode = "radio"
	ModeScreensaver     Mode = "screensaver"
	ModeSystemInfo      Mode = "systeminfo"
)

// knownModes is the full mode table. Every trigger name resolves here
// (plus the "playback" alias handled in Next).
var knownModes = map[string]Mode{
	string(ModeBoot):            ModeBoot,
	string(ModeClock):           ModeClock,
	string(ModeOriginal):        ModeOriginal,
	string(ModeModern):          ModeModern,
	string(ModeWebRadio):        ModeWebRadio,
	string(ModeMenu):            ModeMenu,
	string(ModeClockMenu):       ModeClockMenu,
	string(ModeDisplayMenu):     ModeDisplayMenu,
	string(ModeScreensaverMenu): ModeScreensaverMenu,
	string(ModeLibrary):         ModeLibrary,
	string(ModeUSBLibrary):      ModeUSBLibrary,
	string(ModePlaylists):       ModePlaylists,
	string(ModeRadio):           ModeRadio,
	string(ModeScreensaver):     ModeScreensaver,
	string(ModeSystemInfo):      ModeSystemInfo,
}

// ErrInvalidTransition is returned by Trigger for unknown trigger names.
var ErrInvalidTransition = errors.New("invalid transition")

// Next is the pure transition function (current, trigger) -> next. Every
// known trigger succeeds from any current mode; the "playback" alias
// resolves to the user's stored display preference.
func Next(current Mode, trigger string, displayPref string) (Mode, error) {
	if trigger == "playback" {
		if displayPref == config.DisplayModeOriginal {
			return ModeOriginal, nil
		}
		return ModeModern, nil
	}
	next, ok := knownModes[trigger]
	if !ok {
		return current, fmt.Errorf("%w: %q", ErrInvalidTransition, trigger)
	}
	return next, nil
}

// IsPlayback reports whether m is one of the playback screens.
func IsPlayback(m Mode) bool {
	return m == ModeOriginal || m == ModeModern || m == ModeWebRadio
}
