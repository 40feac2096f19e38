package state

import (
	"strconv"
	"strings"
	"time"
)

// Status is the coarse playback status reported by the backend.
type Status string

const (
	StatusPlay  Status = "play"
	StatusPause Status = "pause"
	StatusStop  Status = "stop"
)

// ParseStatus normalizes a raw status string from the backend.
// Unknown or empty values degrade to StatusStop rather than failing.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "play", "playing":
		return StatusPlay
	case "pause", "paused":
		return StatusPause
	default:
		return StatusStop
	}
}

// Service is the coarse classification of where the current track comes from.
type Service string

const (
	ServiceWebRadio   Service = "webradio"
	ServiceLibrary    Service = "library"
	ServiceUSBLibrary Service = "usblibrary"
	ServiceUnknown    Service = "unknown"
)

// ClassifyService derives a Service tag from the URI or file path of the
// current item. Streams are webradio, USB-mounted paths are usblibrary,
// any other local path is library.
func ClassifyService(uri string) Service {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return ServiceUnknown
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return ServiceWebRadio
	case strings.HasPrefix(uri, "USB/"), strings.HasPrefix(uri, "usb/"):
		return ServiceUSBLibrary
	default:
		return ServiceLibrary
	}
}

// PlaybackState is an immutable snapshot of the remote player's status and
// current track. One snapshot is produced wholesale per backend push; missing
// or malformed fields default rather than fail. Seq carries the receipt
// order so consumers can refuse to render stale snapshots.
type PlaybackState struct {
	Seq        uint64
	Status     Status
	Service    Service
	Title      string
	Artist     string
	Album      string
	Volume     int // 0-100
	SampleRate int // Hz
	BitDepth   int
	Elapsed    time.Duration
	Duration   time.Duration
	TrackType  string
}

// HasProgress reports whether the snapshot carries enough information for a
// screen to synthesize elapsed-time progress between backend pushes.
func (s PlaybackState) HasProgress() bool {
	return s.Duration > 0
}

// Newer reports whether s arrived after other (by receipt order).
func (s PlaybackState) Newer(other PlaybackState) bool {
	return s.Seq > other.Seq
}

// ParseVolume parses a 0-100 volume value, clamping out-of-range numbers
// and defaulting malformed input to the given fallback.
func ParseVolume(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ParseSeconds parses a floating-point seconds value (the backend reports
// elapsed/duration that way) into a duration, defaulting to zero.
func ParseSeconds(raw string) time.Duration {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}

// ParseAudioFormat splits the backend's "samplerate:bits:channels" audio
// string. Either value defaults to zero when absent or malformed.
func ParseAudioFormat(raw string) (sampleRate, bitDepth int) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) >= 1 {
		if v, err := strconv.Atoi(parts[0]); err == nil && v > 0 {
			sampleRate = v
		}
	}
	if len(parts) >= 2 {
		if v, err := strconv.Atoi(parts[1]); err == nil && v > 0 {
			bitDepth = v
		}
	}
	return sampleRate, bitDepth
}
