package lcd

import "fmt"

// GlyphCount is the number of programmable character slots.
const GlyphCount = 8

// Special cells.
const (
	Blank  byte = ' '
	Degree byte = 0xDF // degree sign in the HD44780 A00 ROM
)

// GaugeGlyph returns the bitmap for slot i: the bottom i+1 pixel rows solid,
// 5 pixels wide.
func GaugeGlyph(i int) [8]byte {
	var bits [8]byte
	for row := 0; row <= i && row < 8; row++ {
		bits[7-row] = 0b11111
	}
	return bits
}

// UploadGauge programs all 8 gauge glyphs. Upload errors are returned as-is
// so initialization can fail fast.
func UploadGauge(d Display) error {
	for i := 0; i < GlyphCount; i++ {
		if err := d.UploadGlyph(uint8(i), GaugeGlyph(i)); err != nil {
			return fmt.Errorf("failed to upload glyph %d: %w", i, err)
		}
	}
	return nil
}
