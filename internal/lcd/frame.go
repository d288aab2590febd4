package lcd

import (
	"fmt"
	"math"

	"github.com/rileyhilliard/lcdmon/internal/logger"
)

// DefaultSeparator is drawn between the CPU, network and memory gauge groups.
const DefaultSeparator byte = '|'

// Frame is one screenful of dashboard data.
type Frame struct {
	CoreLoads  []float64 // busy ratio per core, each in [0,1]
	Links      []LinkRate
	MemoryUsed float64 // used ratio in [0,1]
	TempC      float64
	PeakTxMbps int
	PeakRxMbps int
}

// LinkRate is the current throughput of one interface.
type LinkRate struct {
	TxMbps float64
	RxMbps float64
}

// Layout controls how gauges are drawn.
type Layout struct {
	Scale     Scale
	Separator byte
}

// DefaultLayout draws log-scaled network gauges separated by '|'.
func DefaultLayout() Layout {
	return Layout{Scale: ScaleLog, Separator: DefaultSeparator}
}

// GaugeWidth returns the number of columns the gauge rows need.
func GaugeWidth(cores, links int) int {
	// cores, separator, tx+rx per link, separator, memory
	return cores + 1 + 2*links + 1 + 1
}

// Fits reports whether cores and links fit on one display line.
func (l Layout) Fits(cores, links int) bool {
	return GaugeWidth(cores, links) <= Cols
}

// MaxLinks returns how many interfaces fit next to the given number of cores.
func MaxLinks(cores int) int {
	n := (Cols - cores - 3) / 2
	if n < 0 {
		return 0
	}
	return n
}

// StatusLine formats the bottom text row. The result is exactly Cols bytes
// wide for temperatures and peaks of up to three digits.
func StatusLine(tempC float64, peakTx, peakRx int) string {
	// \xdf is the Degree cell; it must stay a raw byte, not a UTF-8 rune.
	return fmt.Sprintf("cpu%3d\xdfC %3d/%3dMbps", int(math.Round(tempC)), peakTx, peakRx)
}

// Renderer draws frames onto a Display. Display I/O errors are logged and dropped.
type Renderer struct {
	display Display
	layout  Layout
	log     logger.Logger
}

// NewRenderer creates a renderer. A zero layout means DefaultLayout.
func NewRenderer(d Display, layout Layout, log logger.Logger) *Renderer {
	if layout.Scale == "" {
		layout.Scale = ScaleLog
	}
	if layout.Separator == 0 {
		layout.Separator = DefaultSeparator
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Renderer{display: d, layout: layout, log: log}
}

// Cells returns the cells of one gauge row, padded with blanks to Cols.
func (r *Renderer) Cells(f Frame, row GaugeRow) []byte {
	cells := make([]byte, 0, Cols)

	for _, load := range f.CoreLoads {
		cells = append(cells, DisplayChar(load, row))
	}
	cells = append(cells, r.layout.Separator)
	for _, link := range f.Links {
		cells = append(cells,
			DisplayChar(r.layout.Scale.Ratio(link.TxMbps), row),
			DisplayChar(r.layout.Scale.Ratio(link.RxMbps), row))
	}
	cells = append(cells, r.layout.Separator)
	cells = append(cells, DisplayChar(f.MemoryUsed, row))

	if len(cells) > Cols {
		cells = cells[:Cols]
	}
	for len(cells) < Cols {
		cells = append(cells, Blank)
	}
	return cells
}

// Render draws the three gauge rows and the status line.
func (r *Renderer) Render(f Frame) {
	for row := GaugeRow(0); row < GaugeRows; row++ {
		r.check(r.display.Position(0, uint8(row)), "position")
		for _, c := range r.Cells(f, row) {
			r.check(r.display.Write(c), "write")
		}
	}

	r.check(r.display.Position(0, GaugeRows), "position")
	r.check(r.display.Print(StatusLine(f.TempC, f.PeakTxMbps, f.PeakRxMbps)), "print")
}

// Shutdown turns the display and its backlight off, logging failures.
func (r *Renderer) Shutdown() {
	r.check(r.display.Power(false), "power off")
	r.check(r.display.Backlight(false), "backlight off")
}

func (r *Renderer) check(err error, op string) {
	if err != nil {
		r.log.Warn("display %s failed: %v", op, err)
	}
}
