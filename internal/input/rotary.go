package input

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/aldenhart/quadrant/internal/logging"
)

// Events receives the semantic gestures decoded from the hardware.
type Events struct {
	Rotate func(delta int)
	Short  func()
	Long   func()
}

// Rotary polls the encoder and button pins and dispatches gestures. The
// callbacks run on the polling goroutine, so they must be quick.
type Rotary struct {
	clk gpio.PinIO
	dt  gpio.PinIO
	sw  gpio.PinIO

	decoder  Decoder
	button   *Button
	interval time.Duration
	events   Events

	stop chan struct{}
	done chan struct{}
}

// NewRotary claims the three named GPIO pins (e.g. "GPIO13") with
// pull-ups and returns a poller. The periph host must already be
// initialized.
func NewRotary(clkPin, dtPin, swPin string, interval, longPress time.Duration, events Events) (*Rotary, error) {
	claim := func(name string) (gpio.PinIO, error) {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("no such pin: %q", name)
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("configuring pin %q: %w", name, err)
		}
		return pin, nil
	}

	clk, err := claim(clkPin)
	if err != nil {
		return nil, err
	}
	dt, err := claim(dtPin)
	if err != nil {
		return nil, err
	}
	sw, err := claim(swPin)
	if err != nil {
		return nil, err
	}

	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Rotary{
		clk:      clk,
		dt:       dt,
		sw:       sw,
		button:   NewButton(longPress),
		interval: interval,
		events:   events,
	}, nil
}

// Start launches the polling goroutine.
func (r *Rotary) Start() {
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	logging.Debug("Rotary poller starting",
		zap.Duration("interval", r.interval))
	go r.run()
}

// Stop terminates polling and waits for the goroutine to exit.
func (r *Rotary) Stop() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop = nil
}

func (r *Rotary) run() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
		}

		if delta := r.decoder.Sample(r.clk.Read() == gpio.High, r.dt.Read() == gpio.High); delta != 0 {
			if r.events.Rotate != nil {
				r.events.Rotate(delta)
			}
		}

		switch r.button.Sample(r.sw.Read() == gpio.High, time.Now()) {
		case PressShort:
			if r.events.Short != nil {
				r.events.Short()
			}
		case PressLong:
			if r.events.Long != nil {
				r.events.Long()
			}
		}
	}
}
