package display

import (
	"image"
	"sync"
)

// Device is the rendering target for screens. Draw pushes a complete
// frame; partial updates are not part of the contract.
type Device interface {
	Bounds() image.Rectangle
	Draw(img image.Image) error
	Clear() error
	Close() error
}

// frameMu serializes frame pushes process-wide. Only one screen loop is
// active at a time, but a loop stopping late must not interleave its last
// frame with its successor's first.
var frameMu sync.Mutex

// Stub is a no-op Device used when no physical display is available. It
// accepts every frame so the rest of the daemon runs unchanged.
type Stub struct {
	width  int
	height int
}

// NewStub returns a stub device with the given logical dimensions.
func NewStub(width, height int) *Stub {
	return &Stub{width: width, height: height}
}

func (s *Stub) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

func (s *Stub) Draw(img image.Image) error { return nil }

func (s *Stub) Clear() error { return nil }

func (s *Stub) Close() error { return nil }
