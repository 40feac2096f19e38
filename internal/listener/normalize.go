package listener

import (
	"path"
	"strings"
	"sync"

	"github.com/fhs/gompd/v2/mpd"

	"github.com/aldenhart/quadrant/internal/state"
)

// Normalize merges a status response and the current item into a fresh
// snapshot. The backend's key-value payloads are never trusted to be
// complete: every absent or malformed field defaults.
func Normalize(status, song mpd.Attrs, seq uint64) state.PlaybackState {
	uri := song["file"]
	sampleRate, bitDepth := state.ParseAudioFormat(status["audio"])

	title := song["Title"]
	if title == "" {
		// Streams often carry their name instead of a tagged title.
		title = song["Name"]
	}
	if title == "" && uri != "" {
		title = path.Base(uri)
	}

	return state.PlaybackState{
		Seq:        seq,
		Status:     state.ParseStatus(status["state"]),
		Service:    state.ClassifyService(uri),
		Title:      title,
		Artist:     song["Artist"],
		Album:      song["Album"],
		Volume:     state.ParseVolume(status["volume"], 0),
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Elapsed:    state.ParseSeconds(status["elapsed"]),
		Duration:   state.ParseSeconds(status["duration"]),
		TrackType:  trackType(uri),
	}
}

// trackType derives a short format tag from the item URI: the lowercased
// file extension for local files, "webradio" for streams.
func trackType(uri string) string {
	if uri == "" {
		return ""
	}
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return "webradio"
	}
	ext := strings.TrimPrefix(path.Ext(uri), ".")
	return strings.ToLower(ext)
}

// TrackInfo is the payload of a track-changed notification.
type TrackInfo struct {
	Title   string
	Artist  string
	Service state.Service
}

// TrackFeed is an ordered observer list for track-changed notifications.
type TrackFeed struct {
	mu   sync.Mutex
	subs []func(TrackInfo)
}

// NewTrackFeed returns an empty track feed.
func NewTrackFeed() *TrackFeed {
	return &TrackFeed{}
}

// Subscribe appends fn to the dispatch list.
func (f *TrackFeed) Subscribe(fn func(TrackInfo)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

// Publish delivers info to every subscriber in registration order.
func (f *TrackFeed) Publish(info TrackInfo) {
	f.mu.Lock()
	subs := make([]func(TrackInfo), len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(info)
	}
}
