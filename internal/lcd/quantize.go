package lcd

import (
	"fmt"
	"math"
)

// GaugeRow identifies one third of a 3-row gauge. Row 0 is the top cell,
// row 2 the bottom cell.
type GaugeRow uint8

// GaugeRows is the height of a gauge in character cells.
const GaugeRows = 3

// pixelsPerCell is the glyph height; a gauge has GaugeRows*pixelsPerCell levels.
const pixelsPerCell = 8

// DisplayChar returns the cell to draw at the given row of a vertical bar
// filled to value: Blank for an empty cell, otherwise the glyph index 0-7
// for 1-8 lit pixel rows. The bar fills bottom-up in 24 steps, rounding up.
//
// value must be in [0,1] and row below GaugeRows; anything else is a bug in
// the caller and panics.
func DisplayChar(value float64, row GaugeRow) byte {
	if !(value >= 0 && value <= 1) {
		panic(fmt.Sprintf("lcd: gauge value %v out of [0,1]", value))
	}
	if row >= GaugeRows {
		panic(fmt.Sprintf("lcd: gauge row %d out of range", row))
	}

	quantized := int(math.Ceil(value * (GaugeRows * pixelsPerCell)))
	target := GaugeRows - 1 - int(row)

	var pixels int
	switch filled := quantized / pixelsPerCell; {
	case filled > target:
		pixels = pixelsPerCell
	case filled < target:
		pixels = 0
	default:
		pixels = quantized - pixelsPerCell*target
	}

	if pixels == 0 {
		return Blank
	}
	return byte(pixels - 1)
}

// Scale maps a throughput in Mbps onto a gauge ratio.
type Scale string

// Supported scales.
const (
	ScaleLog    Scale = "log"
	ScaleLinear Scale = "linear"
)

// fullScaleMbps is the throughput drawn as a full gauge; fullScaleDecades is its log10.
const (
	fullScaleMbps    = 1000.0
	fullScaleDecades = 3.0
)

// Ratio converts a throughput into a gauge ratio in [0,1].
func (s Scale) Ratio(mbps float64) float64 {
	if s == ScaleLinear {
		return LinearRatio(mbps)
	}
	return LogRatio(mbps)
}

// Valid reports whether s is a known scale.
func (s Scale) Valid() bool {
	return s == ScaleLog || s == ScaleLinear
}

// LogRatio compresses 1..1000 Mbps logarithmically onto 0..1.
func LogRatio(mbps float64) float64 {
	return clampRatio(math.Log10(mbps) / fullScaleDecades)
}

// LinearRatio maps 0..1000 Mbps linearly onto 0..1.
func LinearRatio(mbps float64) float64 {
	return clampRatio(mbps / fullScaleMbps)
}

// clampRatio clamps v to [0,1]; NaN becomes 0.
func clampRatio(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
