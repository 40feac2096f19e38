package display

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// OLED drives an SSD1306 panel over I2C.
type OLED struct {
	dev *ssd1306.Dev
	bus i2c.BusCloser
	w   int
	h   int
}

// OpenOLED initializes the periph host, opens the named I2C bus (empty
// string selects the platform default) and attaches an SSD1306 of the
// given dimensions.
func OpenOLED(busName string, width, height int) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("opening I2C bus %q: %w", busName, err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = width
	opts.H = height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("attaching ssd1306: %w", err)
	}

	return &OLED{dev: dev, bus: bus, w: width, h: height}, nil
}

func (o *OLED) Bounds() image.Rectangle {
	return image.Rect(0, 0, o.w, o.h)
}

// Draw pushes a complete frame to the panel under the process-wide frame
// lock.
func (o *OLED) Draw(img image.Image) error {
	frameMu.Lock()
	defer frameMu.Unlock()
	if err := o.dev.Draw(o.dev.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("pushing frame: %w", err)
	}
	return nil
}

// Clear blanks the panel.
func (o *OLED) Clear() error {
	return o.Draw(image.NewGray(o.Bounds()))
}

func (o *OLED) Close() error {
	frameMu.Lock()
	defer frameMu.Unlock()
	if err := o.dev.Halt(); err != nil {
		o.bus.Close()
		return fmt.Errorf("halting ssd1306: %w", err)
	}
	return o.bus.Close()
}
