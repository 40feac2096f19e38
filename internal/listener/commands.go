package listener

import (
	"fmt"

	"github.com/fhs/gompd/v2/mpd"
	"go.uber.org/zap"

	"github.com/aldenhart/quadrant/internal/logging"
)

// ErrNotConnected is returned by outbound commands while the backend link
// is down. Callers treat it as transient and do not retry themselves; the
// reconnect loop restores the link.
var ErrNotConnected = fmt.Errorf("not connected to backend")

// withClient runs a mutating command against the backend, arming the
// suppression hook first so the command's own echo is ignored.
func (l *Listener) withClient(op string, fn func(*mpd.Client) error) error {
	if l.suppress != nil {
		l.suppress()
	}
	return l.query(op, fn)
}

// query runs fn against the command client without arming suppression
// (read-only operations).
func (l *Listener) query(op string, fn func(*mpd.Client) error) error {
	l.mu.Lock()
	client := l.client
	l.mu.Unlock()
	if client == nil {
		return ErrNotConnected
	}
	if err := fn(client); err != nil {
		logging.Warn("Backend command failed", zap.String("command", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Toggle flips between play and pause based on the backend's own view of
// the current state.
func (l *Listener) Toggle() error {
	return l.withClient("toggle", func(c *mpd.Client) error {
		status, err := c.Status()
		if err != nil {
			return err
		}
		if status["state"] == "play" {
			return c.Pause(true)
		}
		return c.Play(-1)
	})
}

// Play resumes (or starts) playback of the current queue position.
func (l *Listener) Play() error {
	return l.withClient("play", func(c *mpd.Client) error { return c.Play(-1) })
}

// Pause pauses playback.
func (l *Listener) Pause() error {
	return l.withClient("pause", func(c *mpd.Client) error { return c.Pause(true) })
}

// StopPlayback stops playback.
func (l *Listener) StopPlayback() error {
	return l.withClient("stop", func(c *mpd.Client) error { return c.Stop() })
}

// Next skips to the next queue item.
func (l *Listener) Next() error {
	return l.withClient("next", func(c *mpd.Client) error { return c.Next() })
}

// Previous skips to the previous queue item.
func (l *Listener) Previous() error {
	return l.withClient("previous", func(c *mpd.Client) error { return c.Previous() })
}

// ToggleShuffle flips random playback.
func (l *Listener) ToggleShuffle() error {
	return l.withClient("shuffle", func(c *mpd.Client) error {
		status, err := c.Status()
		if err != nil {
			return err
		}
		return c.Random(status["random"] != "1")
	})
}

// ToggleRepeat flips repeat mode.
func (l *Listener) ToggleRepeat() error {
	return l.withClient("repeat", func(c *mpd.Client) error {
		status, err := c.Status()
		if err != nil {
			return err
		}
		return c.Repeat(status["repeat"] != "1")
	})
}

// SetVolume sets the absolute volume (0-100, clamped).
func (l *Listener) SetVolume(volume int) error {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return l.withClient("setvol", func(c *mpd.Client) error { return c.SetVolume(volume) })
}

// AdjustVolume changes the volume by delta relative to the backend's
// current value.
func (l *Listener) AdjustVolume(delta int) error {
	return l.withClient("adjustvol", func(c *mpd.Client) error {
		status, err := c.Status()
		if err != nil {
			return err
		}
		volume := 50 // fallback when the backend reports no mixer
		if v, ok := status["volume"]; ok {
			if parsed := parseInt(v, -1); parsed >= 0 {
				volume = parsed
			}
		}
		volume += delta
		if volume < 0 {
			volume = 0
		}
		if volume > 100 {
			volume = 100
		}
		return c.SetVolume(volume)
	})
}

// PlayURI replaces the queue with the given URI and starts playback
// ("replace queue and play").
func (l *Listener) PlayURI(uri string) error {
	return l.withClient("playuri", func(c *mpd.Client) error {
		if err := c.Clear(); err != nil {
			return err
		}
		if err := c.Add(uri); err != nil {
			return err
		}
		return c.Play(0)
	})
}

// Entry is one row of a browse listing: a directory, a file or a stored
// playlist.
type Entry struct {
	Name string
	URI  string
	Dir  bool
}

// ListEntries lists the children of a database directory. The empty URI
// lists the library root.
func (l *Listener) ListEntries(uri string) ([]Entry, error) {
	var entries []Entry
	err := l.query("lsinfo", func(c *mpd.Client) error {
		attrs, err := c.ListInfo(uri)
		if err != nil {
			return err
		}
		for _, a := range attrs {
			if dir, ok := a["directory"]; ok {
				entries = append(entries, Entry{Name: baseName(dir), URI: dir, Dir: true})
			} else if file, ok := a["file"]; ok {
				name := a["Title"]
				if name == "" {
					name = baseName(file)
				}
				entries = append(entries, Entry{Name: name, URI: file})
			}
		}
		return nil
	})
	return entries, err
}

// Playlists lists the backend's stored playlists.
func (l *Listener) Playlists() ([]Entry, error) {
	var entries []Entry
	err := l.query("listplaylists", func(c *mpd.Client) error {
		attrs, err := c.ListPlaylists()
		if err != nil {
			return err
		}
		for _, a := range attrs {
			if name := a["playlist"]; name != "" {
				entries = append(entries, Entry{Name: name, URI: name})
			}
		}
		return nil
	})
	return entries, err
}

// PlayPlaylist replaces the queue with a stored playlist and starts
// playback.
func (l *Listener) PlayPlaylist(name string) error {
	return l.withClient("loadplaylist", func(c *mpd.Client) error {
		if err := c.Clear(); err != nil {
			return err
		}
		if err := c.PlaylistLoad(name, -1, -1); err != nil {
			return err
		}
		return c.Play(0)
	})
}

func baseName(uri string) string {
	for i := len(uri) - 1; i >= 0; i-- {
		if uri[i] == '/' {
			return uri[i+1:]
		}
	}
	return uri
}

func parseInt(s string, fallback int) int {
	n := 0
	if s == "" {
		return fallback
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	return n
}
