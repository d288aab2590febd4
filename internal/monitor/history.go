package monitor

import "time"

// DefaultWindow is how far back the peak tracker looks.
const DefaultWindow = 60 * time.Second

// HistoryWindow keeps the rate observations of one interface that are
// younger than the window, oldest first. It is owned by a single poll loop
// and is not safe for concurrent use.
type HistoryWindow struct {
	window  time.Duration
	entries []historyEntry
}

type historyEntry struct {
	time   time.Time
	speeds RateSpeeds
}

// NewHistoryWindow creates an empty window. A non-positive window falls back to DefaultWindow.
func NewHistoryWindow(window time.Duration) *HistoryWindow {
	if window <= 0 {
		window = DefaultWindow
	}
	return &HistoryWindow{window: window}
}

// Push appends an observation and evicts, from the front, every entry whose
// age relative to t has reached the window.
func (h *HistoryWindow) Push(t time.Time, speeds RateSpeeds) {
	h.entries = append(h.entries, historyEntry{time: t, speeds: speeds})

	drop := 0
	for drop < len(h.entries) && t.Sub(h.entries[drop].time) >= h.window {
		drop++
	}
	if drop > 0 {
		// Shift down instead of reslicing so the backing array does not grow forever.
		n := copy(h.entries, h.entries[drop:])
		clear(h.entries[n:])
		h.entries = h.entries[:n]
	}
}

// Len returns the number of retained observations.
func (h *HistoryWindow) Len() int {
	return len(h.entries)
}

// Times returns the timestamps of the retained observations, oldest first.
func (h *HistoryWindow) Times() []time.Time {
	times := make([]time.Time, len(h.entries))
	for i, e := range h.entries {
		times[i] = e.time
	}
	return times
}

// Peak returns the rounded-up maximum tx and rx throughput in the window.
// ok is false only when the window is empty.
func (h *HistoryWindow) Peak() (peak Peak, ok bool) {
	return PeakOf(h)
}

// PeakOf returns the independent tx and rx maxima over every entry of every window.
func PeakOf(windows ...*HistoryWindow) (peak Peak, ok bool) {
	var maxTx, maxRx float64
	for _, w := range windows {
		if w == nil {
			continue
		}
		for _, e := range w.entries {
			tx, rx := e.speeds.Tx.Mbps(), e.speeds.Rx.Mbps()
			if !ok || tx > maxTx {
				maxTx = tx
			}
			if !ok || rx > maxRx {
				maxRx = rx
			}
			ok = true
		}
	}
	if !ok {
		return Peak{}, false
	}
	return Peak{TxMbps: ceilMbps(maxTx), RxMbps: ceilMbps(maxRx)}, true
}
