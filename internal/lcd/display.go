// Package lcd drives a 20x4 HD44780 character display and renders the
// dashboard onto it.
//
// # Key Components
//
//	Display      - capability interface shared by the hardware driver and the mock
//	HD44780      - driver for an HD44780 behind a PCF8574 I2C backpack
//	MockDisplay  - in-memory 20x4 grid used by tests and the demo command
//	DisplayChar  - quantizer mapping a 0..1 ratio onto one cell of a 3-row gauge
//	Renderer     - composes a Frame into display primitive calls
//
// # Glyphs
//
// The controller has 8 programmable 5x8 character slots. UploadGauge fills
// them with solid blocks of increasing height: slot 0 has the bottom pixel
// row lit, slot 7 is fully solid. Together with the blank space this gives
// 9 fill levels per cell and 24 levels across a 3-row gauge.
package lcd

// Geometry of the supported display.
const (
	Cols = 20
	Rows = 4
)

// Display is the set of primitives the renderer and poll loop need.
// Cells 0-7 written with Write select custom glyphs; other bytes are
// printable characters in the controller's ROM character set.
type Display interface {
	Position(col, row uint8) error
	Write(b byte) error
	Print(s string) error
	UploadGlyph(index uint8, bitmap [8]byte) error
	Power(on bool) error
	Backlight(on bool) error
}

// Closer is implemented by displays that hold an OS resource.
type Closer interface {
	Close() error
}
