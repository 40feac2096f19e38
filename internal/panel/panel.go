package panel

import (
	"time"

	"go.uber.org/zap"

	"github.com/aldenhart/quadrant/internal/logging"
	"github.com/aldenhart/quadrant/internal/state"
)

// Commander is the slice of transport control the panel buttons need.
// The backend listener satisfies it.
type Commander interface {
	Toggle() error
	Next() error
	Previous() error
	StopPlayback() error
	ToggleShuffle() error
	ToggleRepeat() error
	AdjustVolume(delta int) error
}

// action is one cell of the static key map.
type action struct {
	name string
	run  func(Commander) error
	led  byte
}

// keymap assigns transport actions to the 4x4 grid. Unassigned cells are
// spare.
var keymap = [rows][cols]*action{
	{
		{name: "toggle", run: Commander.Toggle, led: LEDPlay},
		{name: "stop", run: Commander.StopPlayback, led: LEDPause},
		{name: "previous", run: Commander.Previous},
		{name: "next", run: Commander.Next},
	},
	{
		{name: "volume_down", run: func(c Commander) error { return c.AdjustVolume(-5) }},
		{name: "volume_up", run: func(c Commander) error { return c.AdjustVolume(5) }},
		{name: "shuffle", run: Commander.ToggleShuffle},
		{name: "repeat", run: Commander.ToggleRepeat},
	},
	{nil, nil, nil, nil},
	{nil, nil, nil, nil},
}

// Panel scans the button matrix and keeps the LED word in sync with
// playback state.
type Panel struct {
	exp      Expander
	cmd      Commander
	leds     *LEDs
	interval time.Duration

	pressed [rows][cols]bool

	stop chan struct{}
	done chan struct{}
}

// New wires a panel over an already-initialized expander.
func New(exp Expander, cmd Commander, leds *LEDs, interval time.Duration) *Panel {
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	return &Panel{exp: exp, cmd: cmd, leds: leds, interval: interval}
}

// HandleState maps playback status onto the persistent LED word. Wired as
// a listener subscriber.
func (p *Panel) HandleState(s state.PlaybackState) {
	switch s.Status {
	case state.StatusPlay:
		p.leds.SetStatus(LEDPlay)
	case state.StatusPause:
		p.leds.SetStatus(LEDPause)
	default:
		p.leds.SetStatus(0)
	}
}

// Start launches the matrix scanner.
func (p *Panel) Start() {
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.run()
}

// Stop terminates the scanner and waits for it.
func (p *Panel) Stop() {
	if p.stop == nil {
		return
	}
	close(p.stop)
	<-p.done
	p.stop = nil
}

func (p *Panel) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
		}
		p.scan()
	}
}

// scan drives each column low in turn and reads the rows back. A key
// fires on its up-to-down transition only.
func (p *Panel) scan() {
	for col := 0; col < cols; col++ {
		// All columns high except the one under test.
		drive := byte(colMask) &^ (1 << (4 + col))
		if err := p.exp.WriteReg(regGPIOB, drive); err != nil {
			logging.Warn("Matrix column drive failed", zap.Error(err))
			return
		}
		val, err := p.exp.ReadReg(regGPIOB)
		if err != nil {
			logging.Warn("Matrix row read failed", zap.Error(err))
			return
		}

		for row := 0; row < rows; row++ {
			down := val&(1<<row) == 0 // active low
			if down && !p.pressed[row][col] {
				p.fire(row, col)
			}
			p.pressed[row][col] = down
		}
	}

	// Leave all columns idle high between passes.
	if err := p.exp.WriteReg(regGPIOB, colMask); err != nil {
		logging.Warn("Matrix column idle failed", zap.Error(err))
	}
}

func (p *Panel) fire(row, col int) {
	a := keymap[row][col]
	if a == nil {
		return
	}
	logging.Debug("Panel key",
		zap.Int("row", row), zap.Int("col", col), zap.String("action", a.name))

	if a.led != 0 {
		p.leds.Pulse(a.led)
	}
	if err := a.run(p.cmd); err != nil {
		logging.Warn("Panel action failed",
			zap.String("action", a.name), zap.Error(err))
	}
}
