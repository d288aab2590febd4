package lcd

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/lcdmon/internal/errors"
)

// PCF8574 expander lines wired to the HD44780.
const (
	pinRS        byte = 0x01
	pinEnable    byte = 0x04
	pinBacklight byte = 0x08
)

// HD44780 instruction set (subset).
const (
	cmdClear          byte = 0x01
	cmdEntryMode      byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdFunctionSet    byte = 0x20
	cmdSetCGRAM       byte = 0x40
	cmdSetDDRAM       byte = 0x80

	entryIncrement byte = 0x02
	displayOn      byte = 0x04
	twoLines       byte = 0x08
)

// rowOffsets are the DDRAM addresses of each line on a 20x4 module.
var rowOffsets = [Rows]byte{0x00, 0x40, 0x14, 0x54}

// HD44780 drives an HD44780 character LCD in 4-bit mode through a PCF8574
// I2C port expander.
type HD44780 struct {
	bus       Bus
	backlight byte
	sleep     func(time.Duration)
}

// NewHD44780 wraps an open bus. Call Init before anything else.
func NewHD44780(bus Bus) *HD44780 {
	return &HD44780{bus: bus, backlight: pinBacklight, sleep: time.Sleep}
}

// Init runs the 4-bit initialization sequence, turns the display on with
// the cursor hidden, and uploads the gauge glyphs. Any bus error is returned.
func (d *HD44780) Init() error {
	if err := d.init(); err != nil {
		return errors.WrapWithCode(err, errors.ErrDisplay,
			"Failed to initialize the display",
			"Check the backpack address and power supply")
	}
	return nil
}

func (d *HD44780) init() error {
	d.sleep(50 * time.Millisecond)
	if err := d.bus.Write([]byte{d.backlight}); err != nil {
		return err
	}

	// Force 8-bit mode three times, then switch to 4-bit.
	for _, wait := range []time.Duration{4500 * time.Microsecond, 4500 * time.Microsecond, 150 * time.Microsecond} {
		if err := d.writeNibble(0x30, 0); err != nil {
			return err
		}
		d.sleep(wait)
	}
	if err := d.writeNibble(0x20, 0); err != nil {
		return err
	}

	steps := []byte{
		cmdFunctionSet | twoLines,
		cmdDisplayControl | displayOn,
		cmdClear,
		cmdEntryMode | entryIncrement,
	}
	for _, cmd := range steps {
		if err := d.command(cmd); err != nil {
			return err
		}
	}

	return UploadGauge(d)
}

// Position moves the cursor, clamping to the screen.
func (d *HD44780) Position(col, row uint8) error {
	row = min(row, Rows-1)
	col = min(col, Cols-1)
	return d.command(cmdSetDDRAM | (rowOffsets[row] + col))
}

// Write sends one character cell.
func (d *HD44780) Write(b byte) error {
	return d.send(b, pinRS)
}

// Print sends every byte of s, stopping at the first error.
func (d *HD44780) Print(s string) error {
	for i := 0; i < len(s); i++ {
		if err := d.Write(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// UploadGlyph stores a 5x8 bitmap in CGRAM slot index, then returns the
// cursor to the home position.
func (d *HD44780) UploadGlyph(index uint8, bitmap [8]byte) error {
	if int(index) >= GlyphCount {
		return fmt.Errorf("glyph index %d out of range", index)
	}
	if err := d.command(cmdSetCGRAM | index<<3); err != nil {
		return err
	}
	for _, row := range bitmap {
		if err := d.send(row&0x1F, pinRS); err != nil {
			return err
		}
	}
	return d.Position(0, 0)
}

// Power turns the display output on or off; contents are preserved.
func (d *HD44780) Power(on bool) error {
	cmd := cmdDisplayControl
	if on {
		cmd |= displayOn
	}
	return d.command(cmd)
}

// Backlight switches the backlight line of the expander.
func (d *HD44780) Backlight(on bool) error {
	if on {
		d.backlight = pinBacklight
	} else {
		d.backlight = 0
	}
	return d.bus.Write([]byte{d.backlight})
}

// Close releases the bus.
func (d *HD44780) Close() error {
	return d.bus.Close()
}

func (d *HD44780) command(cmd byte) error {
	if err := d.send(cmd, 0); err != nil {
		return err
	}
	if cmd == cmdClear {
		d.sleep(2 * time.Millisecond)
	}
	return nil
}

// send writes a byte as two nibbles, each latched by an enable pulse, in one transfer.
func (d *HD44780) send(value, mode byte) error {
	hi := value&0xF0 | mode | d.backlight
	lo := value<<4&0xF0 | mode | d.backlight
	return d.bus.Write([]byte{hi | pinEnable, hi, lo | pinEnable, lo})
}

func (d *HD44780) writeNibble(nibble, mode byte) error {
	b := nibble&0xF0 | mode | d.backlight
	return d.bus.Write([]byte{b | pinEnable, b})
}

var (
	_ Display = (*HD44780)(nil)
	_ Closer  = (*HD44780)(nil)
)
