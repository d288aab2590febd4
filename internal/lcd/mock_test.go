package lcd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockDisplay_StartsBlank(t *testing.T) {
	m := NewMockDisplay()

	assert.True(t, m.IsOn())
	assert.True(t, m.BacklightOn())
	for _, line := range m.Lines() {
		assert.Equal(t, strings.Repeat(" ", Cols), line)
	}
}

func TestMockDisplay_PositionClamps(t *testing.T) {
	m := NewMockDisplay()

	require.NoError(t, m.Position(50, 9))
	require.NoError(t, m.Write('x'))

	assert.Equal(t, byte('x'), m.Cell(Cols-1, Rows-1))
}

func TestMockDisplay_WriteWraps(t *testing.T) {
	m := NewMockDisplay()

	require.NoError(t, m.Position(18, 0))
	require.NoError(t, m.Print("abc"))
	assert.Equal(t, byte('a'), m.Cell(18, 0))
	assert.Equal(t, byte('b'), m.Cell(19, 0))
	assert.Equal(t, byte('c'), m.Cell(0, 1), "end of line continues on the next")

	require.NoError(t, m.Position(19, 3))
	require.NoError(t, m.Print("yz"))
	assert.Equal(t, byte('z'), m.Cell(0, 0), "last line wraps to the first")
}

func TestMockDisplay_RendersGlyphs(t *testing.T) {
	m := NewMockDisplay()

	require.NoError(t, m.Position(0, 0))
	for i := byte(0); i < GlyphCount; i++ {
		require.NoError(t, m.Write(i))
	}
	require.NoError(t, m.Write(Degree))
	require.NoError(t, m.Write(0x01+0x80))

	assert.Equal(t, "▁▂▃▄▅▆▇█°?          ", m.Line(0))
}

func TestMockDisplay_StateAndDump(t *testing.T) {
	m := NewMockDisplay()

	require.NoError(t, m.Power(false))
	require.NoError(t, m.Backlight(false))
	assert.False(t, m.IsOn())
	assert.False(t, m.BacklightOn())

	require.NoError(t, m.UploadGlyph(3, GaugeGlyph(3)))
	g, ok := m.Glyph(3)
	assert.True(t, ok)
	assert.Equal(t, GaugeGlyph(3), g)
	_, ok = m.Glyph(4)
	assert.False(t, ok)
	assert.Error(t, m.UploadGlyph(8, [8]byte{}))

	require.NoError(t, m.Print("hello"))
	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, Rows)
	assert.True(t, strings.HasPrefix(lines[0], "hello"))
	assert.Equal(t, m.String(), strings.TrimSuffix(buf.String(), "\n"))
}

func TestMockDisplay_Clear(t *testing.T) {
	m := NewMockDisplay()
	require.NoError(t, m.Print("dirty"))

	m.Clear()

	assert.Equal(t, Blank, m.Cell(0, 0))
	require.NoError(t, m.Write('a'))
	assert.Equal(t, byte('a'), m.Cell(0, 0), "cursor homed")
}
