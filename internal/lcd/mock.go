package lcd

import (
	"fmt"
	"io"
	"strings"
)

// gaugeBlocks renders glyph slots 0-7 for terminal output (lowest to highest).
var gaugeBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// MockDisplay is an in-memory Display holding the raw cell bytes of a 20x4
// screen. The cursor behaves like the controller's: writes advance it, the
// end of a line continues on the next one and the last line wraps to the first.
type MockDisplay struct {
	cells     [Rows][Cols]byte
	row, col  int
	glyphs    [GlyphCount][8]byte
	uploaded  [GlyphCount]bool
	on        bool
	backlight bool
}

// NewMockDisplay returns a blank, powered-on mock.
func NewMockDisplay() *MockDisplay {
	m := &MockDisplay{on: true, backlight: true}
	m.Clear()
	return m
}

// Clear blanks every cell and homes the cursor.
func (m *MockDisplay) Clear() {
	for r := range m.cells {
		for c := range m.cells[r] {
			m.cells[r][c] = Blank
		}
	}
	m.row, m.col = 0, 0
}

// Position moves the cursor, clamping to the screen.
func (m *MockDisplay) Position(col, row uint8) error {
	m.row = min(int(row), Rows-1)
	m.col = min(int(col), Cols-1)
	return nil
}

// Write stores one cell and advances the cursor.
func (m *MockDisplay) Write(b byte) error {
	m.cells[m.row][m.col] = b
	m.col++
	if m.col == Cols {
		m.col = 0
		m.row++
	}
	if m.row == Rows {
		m.row = 0
	}
	return nil
}

// Print writes every byte of s.
func (m *MockDisplay) Print(s string) error {
	for i := 0; i < len(s); i++ {
		_ = m.Write(s[i])
	}
	return nil
}

// UploadGlyph records a glyph bitmap.
func (m *MockDisplay) UploadGlyph(index uint8, bitmap [8]byte) error {
	if int(index) >= GlyphCount {
		return fmt.Errorf("glyph index %d out of range", index)
	}
	m.glyphs[index] = bitmap
	m.uploaded[index] = true
	return nil
}

// Power records the display state.
func (m *MockDisplay) Power(on bool) error {
	m.on = on
	return nil
}

// Backlight records the backlight state.
func (m *MockDisplay) Backlight(on bool) error {
	m.backlight = on
	return nil
}

// Cell returns the raw byte at a position.
func (m *MockDisplay) Cell(col, row int) byte {
	return m.cells[row][col]
}

// Glyph returns the uploaded bitmap of a slot and whether it was uploaded.
func (m *MockDisplay) Glyph(index int) ([8]byte, bool) {
	return m.glyphs[index], m.uploaded[index]
}

// IsOn reports whether the display is powered on.
func (m *MockDisplay) IsOn() bool { return m.on }

// BacklightOn reports whether the backlight is on.
func (m *MockDisplay) BacklightOn() bool { return m.backlight }

// Line renders one row for a terminal.
func (m *MockDisplay) Line(row int) string {
	var b strings.Builder
	for _, cell := range m.cells[row] {
		b.WriteRune(cellRune(cell))
	}
	return b.String()
}

// Lines renders every row.
func (m *MockDisplay) Lines() []string {
	lines := make([]string, Rows)
	for r := range lines {
		lines[r] = m.Line(r)
	}
	return lines
}

// String renders the screen as newline-separated rows.
func (m *MockDisplay) String() string {
	return strings.Join(m.Lines(), "\n")
}

// Dump writes the screen to w, one row per line.
func (m *MockDisplay) Dump(w io.Writer) error {
	for _, line := range m.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func cellRune(b byte) rune {
	switch {
	case int(b) < GlyphCount:
		return gaugeBlocks[b]
	case b == Degree:
		return '°'
	case b >= 0x20 && b < 0x7F:
		return rune(b)
	default:
		return '?'
	}
}

var _ Display = (*MockDisplay)(nil)
