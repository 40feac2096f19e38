package panel

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// MCP23017 registers (IOCON.BANK = 0, the power-on default).
const (
	regIODIRA = 0x00
	regIODIRB = 0x01
	regGPPUA  = 0x0C
	regGPPUB  = 0x0D
	regGPIOA  = 0x12
	regGPIOB  = 0x13
	regOLATA  = 0x14
)

// Port B layout: rows in, columns out.
const (
	rowMask = 0x0F
	colMask = 0xF0
	rows    = 4
	cols    = 4
)

// Expander is the register-level access the scanner and LED word need.
type Expander interface {
	ReadReg(reg byte) (byte, error)
	WriteReg(reg, value byte) error
}

// mcp23017 is the real expander over I2C.
type mcp23017 struct {
	dev i2c.Dev
	bus i2c.BusCloser
}

// OpenExpander opens the named I2C bus and configures the MCP23017 at
// addr: port A all outputs (LEDs), port B rows as pulled-up inputs and
// columns as outputs.
func OpenExpander(busName string, addr uint16) (Expander, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("opening I2C bus %q: %w", busName, err)
	}

	e := &mcp23017{dev: i2c.Dev{Bus: bus, Addr: addr}, bus: bus}
	init := []struct{ reg, val byte }{
		{regIODIRA, 0x00},    // LEDs out
		{regIODIRB, rowMask}, // rows in, columns out
		{regGPPUB, rowMask},  // pull-ups on rows
		{regOLATA, 0x00},     // LEDs off
		{regGPIOB, colMask},  // columns idle high
	}
	for _, w := range init {
		if err := e.WriteReg(w.reg, w.val); err != nil {
			bus.Close()
			return nil, fmt.Errorf("initializing expander: %w", err)
		}
	}
	return e, nil
}

func (e *mcp23017) ReadReg(reg byte) (byte, error) {
	var buf [1]byte
	if err := e.dev.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, fmt.Errorf("reading register 0x%02x: %w", reg, err)
	}
	return buf[0], nil
}

func (e *mcp23017) WriteReg(reg, value byte) error {
	if err := e.dev.Tx([]byte{reg, value}, nil); err != nil {
		return fmt.Errorf("writing register 0x%02x: %w", reg, err)
	}
	return nil
}

// Close releases the bus.
func (e *mcp23017) Close() error {
	return e.bus.Close()
}
