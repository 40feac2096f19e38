package listener

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fhs/gompd/v2/mpd"

	"github.com/aldenhart/quadrant/internal/state"
)

func TestReconnectDelay(t *testing.T) {
	base := 5 * time.Second
	max := 60 * time.Second

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 5 * time.Second},
		{2, 10 * time.Second},
		{5, 25 * time.Second},
		{12, 60 * time.Second},
		{100, 60 * time.Second}, // capped
		{0, 5 * time.Second},    // degenerate attempt clamps to 1
	}

	for _, tt := range tests {
		if got := ReconnectDelay(base, max, tt.attempt); got != tt.want {
			t.Errorf("ReconnectDelay(attempt=%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestReconnectDelayNonDecreasing(t *testing.T) {
	base := 2 * time.Second
	max := 30 * time.Second

	prev := time.Duration(0)
	for attempt := 1; attempt <= 50; attempt++ {
		d := ReconnectDelay(base, max, attempt)
		if d < prev {
			t.Fatalf("delay decreased at attempt %d: %v < %v", attempt, d, prev)
		}
		if d > max {
			t.Fatalf("delay exceeded cap at attempt %d: %v", attempt, d)
		}
		prev = d
	}
}

func TestNormalizeFullStatus(t *testing.T) {
	status := mpd.Attrs{
		"state":    "play",
		"volume":   "65",
		"elapsed":  "42.5",
		"duration": "180.0",
		"audio":    "44100:16:2",
	}
	song := mpd.Attrs{
		"Title":  "Blue in Green",
		"Artist": "Miles Davis",
		"Album":  "Kind of Blue",
		"file":   "NAS/jazz/kind_of_blue/03.flac",
	}

	s := Normalize(status, song, 7)

	if s.Seq != 7 {
		t.Errorf("Seq = %d, want 7", s.Seq)
	}
	if s.Status != state.StatusPlay {
		t.Errorf("Status = %v, want play", s.Status)
	}
	if s.Service != state.ServiceLibrary {
		t.Errorf("Service = %v, want library", s.Service)
	}
	if s.Title != "Blue in Green" || s.Artist != "Miles Davis" {
		t.Errorf("track = %q/%q, want Blue in Green/Miles Davis", s.Title, s.Artist)
	}
	if s.Volume != 65 {
		t.Errorf("Volume = %d, want 65", s.Volume)
	}
	if s.SampleRate != 44100 || s.BitDepth != 16 {
		t.Errorf("audio = %d/%d, want 44100/16", s.SampleRate, s.BitDepth)
	}
	if s.Elapsed != 42500*time.Millisecond {
		t.Errorf("Elapsed = %v, want 42.5s", s.Elapsed)
	}
	if s.Duration != 180*time.Second {
		t.Errorf("Duration = %v, want 3m", s.Duration)
	}
	if s.TrackType != "flac" {
		t.Errorf("TrackType = %q, want flac", s.TrackType)
	}
}

func TestNormalizeEmptyPayloadDefaults(t *testing.T) {
	// The backend payload is never trusted to be complete: an empty push
	// must produce a safe snapshot, not an error.
	s := Normalize(mpd.Attrs{}, mpd.Attrs{}, 1)

	if s.Status != state.StatusStop {
		t.Errorf("Status = %v, want stop default", s.Status)
	}
	if s.Service != state.ServiceUnknown {
		t.Errorf("Service = %v, want unknown", s.Service)
	}
	if s.Volume != 0 {
		t.Errorf("Volume = %d, want 0", s.Volume)
	}
	if s.Duration != 0 || s.Elapsed != 0 {
		t.Errorf("progress = %v/%v, want zero", s.Elapsed, s.Duration)
	}
}

func TestNormalizeStream(t *testing.T) {
	status := mpd.Attrs{"state": "play", "volume": "40"}
	song := mpd.Attrs{
		"Name": "FM4 live",
		"file": "http://stream.example.org/fm4.mp3",
	}

	s := Normalize(status, song, 3)

	if s.Service != state.ServiceWebRadio {
		t.Errorf("Service = %v, want webradio", s.Service)
	}
	// Streams carry their station name in Name, not Title.
	if s.Title != "FM4 live" {
		t.Errorf("Title = %q, want FM4 live", s.Title)
	}
	if s.TrackType != "webradio" {
		t.Errorf("TrackType = %q, want webradio", s.TrackType)
	}
}

func TestNormalizeTitleFallsBackToFilename(t *testing.T) {
	song := mpd.Attrs{"file": "USB/music/untagged_song.mp3"}

	s := Normalize(mpd.Attrs{}, song, 1)

	if s.Title != "untagged_song.mp3" {
		t.Errorf("Title = %q, want filename fallback", s.Title)
	}
	if s.Service != state.ServiceUSBLibrary {
		t.Errorf("Service = %v, want usblibrary", s.Service)
	}
}

func TestTrackFeedDispatch(t *testing.T) {
	f := NewTrackFeed()

	var got []TrackInfo
	f.Subscribe(func(info TrackInfo) { got = append(got, info) })

	f.Publish(TrackInfo{Title: "A"})
	f.Publish(TrackInfo{Title: "B"})

	if len(got) != 2 || got[0].Title != "A" || got[1].Title != "B" {
		t.Errorf("track feed deliveries = %+v", got)
	}
}

func TestListenerCommandsWhileDisconnected(t *testing.T) {
	l := New("localhost:6600")

	// No connection was established: commands fail fast and cleanly.
	if err := l.Play(); err != ErrNotConnected {
		t.Errorf("Play() while disconnected = %v, want ErrNotConnected", err)
	}
	if err := l.SetVolume(50); err != ErrNotConnected {
		t.Errorf("SetVolume() while disconnected = %v, want ErrNotConnected", err)
	}
}

func TestMutatingCommandsArmSuppression(t *testing.T) {
	armed := 0
	l := New("localhost:6600", WithSuppress(func() { armed++ }))

	_ = l.Play()
	_ = l.SetVolume(30)
	if armed != 2 {
		t.Errorf("suppression armed %d times, want 2", armed)
	}

	// Read-only queries must not arm it.
	_, _ = l.ListEntries("")
	_, _ = l.Playlists()
	if armed != 2 {
		t.Errorf("read-only query armed suppression (count %d)", armed)
	}
}

func TestListenerSubscriptionOrder(t *testing.T) {
	l := New("localhost:6600")

	var order []int
	l.Subscribe(func(state.PlaybackState) { order = append(order, 1) })
	l.Subscribe(func(state.PlaybackState) { order = append(order, 2) })

	// Deliveries go through the same feed the idle loop publishes to.
	l.feed.Publish(state.PlaybackState{Seq: 1})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("dispatch order = %v, want [1 2]", order)
	}
}

// fakeBackend speaks just enough of the MPD protocol for the listener's
// connection lifecycle: greeting, status/currentsong, idle/noidle.
type fakeBackend struct {
	t  *testing.T
	ln net.Listener

	mu    sync.Mutex
	conns []net.Conn
	idle  map[net.Conn]bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	b := &fakeBackend{t: t, ln: ln, idle: make(map[net.Conn]bool)}
	go b.acceptLoop()
	return b
}

func (b *fakeBackend) addr() string { return b.ln.Addr().String() }

func (b *fakeBackend) acceptLoop() {
	for {
		conn, err := b.ln.Accept()
		if err != nil {
			return
		}
		b.mu.Lock()
		b.conns = append(b.conns, conn)
		b.mu.Unlock()
		go b.serve(conn)
	}
}

func (b *fakeBackend) serve(conn net.Conn) {
	fmt.Fprint(conn, "OK MPD 0.23.5\n")
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "status":
			fmt.Fprint(conn, "volume: 40\nstate: play\nelapsed: 1.0\nduration: 100.0\naudio: 44100:16:2\nOK\n")
		case "currentsong":
			fmt.Fprint(conn, "file: NAS/album/track.flac\nTitle: Track\nArtist: Artist\nOK\n")
		case "idle":
			b.mu.Lock()
			b.idle[conn] = true
			b.mu.Unlock()
		case "noidle":
			b.mu.Lock()
			b.idle[conn] = false
			b.mu.Unlock()
			fmt.Fprint(conn, "OK\n")
		case "close":
			conn.Close()
			return
		default:
			fmt.Fprint(conn, "OK\n")
		}
	}
}

// pushEvent completes every pending idle with a changed notification.
func (b *fakeBackend) pushEvent(subsystem string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn, idling := range b.idle {
		if idling {
			fmt.Fprintf(conn, "changed: %s\nOK\n", subsystem)
			b.idle[conn] = false
		}
	}
}

// closeConn kills the i-th accepted connection (0 = the command client of
// the first cycle, 1 = its watcher).
func (b *fakeBackend) closeConn(i int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < len(b.conns) {
		b.conns[i].Close()
	}
}

func (b *fakeBackend) connCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

func (b *fakeBackend) close() {
	b.ln.Close()
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, conn := range b.conns {
		conn.Close()
	}
}

func TestFetchErrorTearsDownAndReconnects(t *testing.T) {
	backend := newFakeBackend(t)
	defer backend.close()

	l := New(backend.addr(), WithBackoff(10*time.Millisecond, 50*time.Millisecond))
	published := make(chan state.PlaybackState, 16)
	l.Subscribe(func(s state.PlaybackState) { published <- s })

	go l.Run()
	defer l.Stop()

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("no initial publish")
	}

	// Kill only the command client. The watcher stays alive, so the next
	// idle event makes the status fetch fail; that must end the whole
	// connection cycle, not wedge the listener.
	backend.closeConn(0)
	backend.pushEvent("player")

	deadline := time.Now().Add(2 * time.Second)
	for backend.connCount() < 4 {
		if time.Now().After(deadline) {
			t.Fatalf("listener never reconnected (connections: %d)", backend.connCount())
		}
		time.Sleep(10 * time.Millisecond)
	}

	// The fresh connection pair publishes again.
	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("no publish after reconnect")
	}
}
