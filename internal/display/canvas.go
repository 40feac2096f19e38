package display

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is a monochrome frame buffer with text helpers. Screens draw a
// frame into a canvas and hand Image() to the device wholesale.
type Canvas struct {
	img  *image.Gray
	face font.Face
}

// NewCanvas allocates a black canvas of the given dimensions using the
// built-in 7x13 face.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:  image.NewGray(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
}

// Image returns the underlying frame.
func (c *Canvas) Image() image.Image { return c.img }

// Bounds returns the canvas dimensions.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Reset blanks the canvas for the next frame.
func (c *Canvas) Reset() {
	draw.Draw(c.img, c.img.Bounds(), image.Black, image.Point{}, draw.Src)
}

// Text draws s with its baseline at (x, y). Pixels outside the canvas are
// clipped by the drawer.
func (c *Canvas) Text(x, y int, s string) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.White,
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// TextWidth measures the rendered width of s in pixels.
func (c *Canvas) TextWidth(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

// TextHeight returns the face height in pixels.
func (c *Canvas) TextHeight() int {
	return c.face.Metrics().Height.Ceil()
}

// CenteredText draws s horizontally centered with its baseline at y.
func (c *Canvas) CenteredText(y int, s string) {
	x := (c.img.Bounds().Dx() - c.TextWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	c.Text(x, y, s)
}

// HLine draws a horizontal run of lit pixels.
func (c *Canvas) HLine(x, y, length int) {
	for i := 0; i < length; i++ {
		c.img.SetGray(x+i, y, color.Gray{Y: 255})
	}
}

// Rect draws an unfilled rectangle.
func (c *Canvas) Rect(x, y, w, h int) {
	c.HLine(x, y, w)
	c.HLine(x, y+h-1, w)
	for i := 0; i < h; i++ {
		c.img.SetGray(x, y+i, color.Gray{Y: 255})
		c.img.SetGray(x+w-1, y+i, color.Gray{Y: 255})
	}
}

// FillRect draws a filled rectangle.
func (c *Canvas) FillRect(x, y, w, h int) {
	for row := 0; row < h; row++ {
		c.HLine(x, y+row, w)
	}
}

// ProgressBar draws a bordered bar filled to ratio (clamped to [0, 1]).
func (c *Canvas) ProgressBar(x, y, w, h int, ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	c.Rect(x, y, w, h)
	fill := int(float64(w-2) * ratio)
	if fill > 0 {
		c.FillRect(x+1, y+1, fill, h-2)
	}
}
