package ui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Screen redraws a block of text in place on a terminal. When the writer is
// not a terminal every frame is appended instead, separated by a blank line.
type Screen struct {
	w      io.Writer
	out    *termenv.Output
	tty    bool
	frames int
}

// NewScreen creates a screen writing to w.
func NewScreen(w io.Writer) *Screen {
	return &Screen{
		w:   w,
		out: termenv.NewOutput(w),
		tty: IsTerminal(w),
	}
}

// Draw replaces the previous frame with s.
func (s *Screen) Draw(frame string) error {
	if s.tty {
		if s.frames == 0 {
			s.out.HideCursor()
		}
		s.out.ClearScreen()
		s.out.MoveCursor(1, 1)
	} else if s.frames > 0 {
		if _, err := io.WriteString(s.w, "\n"); err != nil {
			return err
		}
	}
	s.frames++
	_, err := io.WriteString(s.w, frame)
	return err
}

// Close restores the cursor.
func (s *Screen) Close() {
	if s.tty && s.frames > 0 {
		s.out.ShowCursor()
	}
}

// Frames returns how many frames have been drawn.
func (s *Screen) Frames() int {
	return s.frames
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
