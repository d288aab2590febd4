// Package testing provides test doubles for the lcd package.
package testing

import (
	"fmt"
	"sync"

	"github.com/rileyhilliard/lcdmon/internal/lcd"
)

// Call records one display primitive.
type Call struct {
	Op   string // "position", "write", "print", "glyph", "power", "backlight"
	Col  uint8
	Row  uint8
	Byte byte
	Text string
	On   bool
}

func (c Call) String() string {
	switch c.Op {
	case "position":
		return fmt.Sprintf("position(%d,%d)", c.Col, c.Row)
	case "write":
		return fmt.Sprintf("write(%#02x)", c.Byte)
	case "print":
		return fmt.Sprintf("print(%q)", c.Text)
	case "glyph":
		return fmt.Sprintf("glyph(%d)", c.Byte)
	default:
		return fmt.Sprintf("%s(%v)", c.Op, c.On)
	}
}

// RecordingDisplay records every primitive call and forwards it to an
// in-memory MockDisplay so tests can check both the call sequence and the
// resulting screen.
type RecordingDisplay struct {
	mu sync.Mutex

	*lcd.MockDisplay
	Calls []Call

	// FailOps makes the named operations return FailError.
	FailOps   map[string]bool
	FailError error
}

// NewRecordingDisplay creates a recording display that succeeds by default.
func NewRecordingDisplay() *RecordingDisplay {
	return &RecordingDisplay{
		MockDisplay: lcd.NewMockDisplay(),
		FailOps:     make(map[string]bool),
		FailError:   fmt.Errorf("simulated I/O error"),
	}
}

func (r *RecordingDisplay) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, c)
	if r.FailOps[c.Op] {
		return r.FailError
	}
	return nil
}

// Ops returns the operation names of all recorded calls.
func (r *RecordingDisplay) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset forgets recorded calls.
func (r *RecordingDisplay) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = nil
}

func (r *RecordingDisplay) Position(col, row uint8) error {
	if err := r.record(Call{Op: "position", Col: col, Row: row}); err != nil {
		return err
	}
	return r.MockDisplay.Position(col, row)
}

func (r *RecordingDisplay) Write(b byte) error {
	if err := r.record(Call{Op: "write", Byte: b}); err != nil {
		return err
	}
	return r.MockDisplay.Write(b)
}

func (r *RecordingDisplay) Print(s string) error {
	if err := r.record(Call{Op: "print", Text: s}); err != nil {
		return err
	}
	return r.MockDisplay.Print(s)
}

func (r *RecordingDisplay) UploadGlyph(index uint8, bitmap [8]byte) error {
	if err := r.record(Call{Op: "glyph", Byte: index}); err != nil {
		return err
	}
	return r.MockDisplay.UploadGlyph(index, bitmap)
}

func (r *RecordingDisplay) Power(on bool) error {
	if err := r.record(Call{Op: "power", On: on}); err != nil {
		return err
	}
	return r.MockDisplay.Power(on)
}

func (r *RecordingDisplay) Backlight(on bool) error {
	if err := r.record(Call{Op: "backlight", On: on}); err != nil {
		return err
	}
	return r.MockDisplay.Backlight(on)
}

var _ lcd.Display = (*RecordingDisplay)(nil)

// FakeBus records bytes written to an I2C device.
type FakeBus struct {
	mu sync.Mutex

	Writes  [][]byte
	Closed  bool
	WriteFn func(p []byte) error // optional failure injection
}

func (b *FakeBus) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.WriteFn != nil {
		if err := b.WriteFn(p); err != nil {
			return err
		}
	}
	b.Writes = append(b.Writes, append([]byte(nil), p...))
	return nil
}

func (b *FakeBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Closed = true
	return nil
}

// Bytes returns every written byte in order.
func (b *FakeBus) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	var all []byte
	for _, w := range b.Writes {
		all = append(all, w...)
	}
	return all
}

var _ lcd.Bus = (*FakeBus)(nil)
