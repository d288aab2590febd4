package lcd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaugeGlyph(t *testing.T) {
	assert.Equal(t, [8]byte{0, 0, 0, 0, 0, 0, 0, 0b11111}, GaugeGlyph(0))
	assert.Equal(t, [8]byte{0, 0, 0, 0, 0b11111, 0b11111, 0b11111, 0b11111}, GaugeGlyph(3))
	assert.Equal(t, [8]byte{0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111, 0b11111}, GaugeGlyph(7))
}

func TestUploadGauge(t *testing.T) {
	m := NewMockDisplay()
	require.NoError(t, UploadGauge(m))

	for i := 0; i < GlyphCount; i++ {
		g, ok := m.Glyph(i)
		require.True(t, ok, "glyph %d", i)
		assert.Equal(t, GaugeGlyph(i), g)
	}
}

type failingGlyphs struct {
	*MockDisplay
	failAt uint8
}

func (f failingGlyphs) UploadGlyph(index uint8, bitmap [8]byte) error {
	if index == f.failAt {
		return errors.New("nack")
	}
	return f.MockDisplay.UploadGlyph(index, bitmap)
}

func TestUploadGauge_FailsFast(t *testing.T) {
	d := failingGlyphs{MockDisplay: NewMockDisplay(), failAt: 2}

	err := UploadGauge(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glyph 2")

	_, ok := d.Glyph(3)
	assert.False(t, ok, "upload stops at the first failure")
}
