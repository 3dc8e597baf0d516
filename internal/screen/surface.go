// Package screen provides the terminal side of a menu: a buffered render
// surface with cursor control, and scoped raw-mode acquisition of the tty.
package screen

import (
	"bufio"
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Pos is a 1-based screen position
type Pos struct {
	Row int
	Col int
}

// CursorReporter reads the terminal's answer to a cursor position query
type CursorReporter interface {
	ReadCursorReport() (row, col int, err error)
}

// Surface is a buffered output sink with cursor control. Writes are
// buffered and never fail on their own: the first write error is kept and
// returned by Flush.
type Surface struct {
	buf     *bufio.Writer
	out     *termenv.Output
	reports CursorReporter
}

// NewSurface wraps w. reports answers CursorPos queries and may be nil when
// positions are never queried.
func NewSurface(w io.Writer, profile termenv.Profile, reports CursorReporter) *Surface {
	buf := bufio.NewWriter(w)
	return &Surface{
		buf:     buf,
		out:     termenv.NewOutput(buf, termenv.WithProfile(profile)),
		reports: reports,
	}
}

// CursorPos asks the terminal where the cursor currently is
func (s *Surface) CursorPos() (Pos, error) {
	if s.reports == nil {
		return Pos{}, fmt.Errorf("cursor position query: no reporter attached")
	}
	s.writef("6n")
	if err := s.Flush(); err != nil {
		return Pos{}, fmt.Errorf("cursor position query: %w", err)
	}
	row, col, err := s.reports.ReadCursorReport()
	if err != nil {
		return Pos{}, fmt.Errorf("cursor position query: %w", err)
	}
	return Pos{Row: row, Col: col}, nil
}

// MoveTo moves the cursor to an absolute position
func (s *Surface) MoveTo(p Pos) {
	s.out.MoveCursor(p.Row, p.Col)
}

// Up moves the cursor n rows up
func (s *Surface) Up(n int) {
	if n > 0 {
		s.out.CursorUp(n)
	}
}

// Down moves the cursor n rows down
func (s *Surface) Down(n int) {
	if n > 0 {
		s.out.CursorDown(n)
	}
}

// Right moves the cursor n columns right
func (s *Surface) Right(n int) {
	if n > 0 {
		s.out.CursorForward(n)
	}
}

// ClearLine clears the whole current line
func (s *Surface) ClearLine() {
	s.out.ClearLine()
}

// ClearBelow clears from the cursor to the end of the screen
func (s *Surface) ClearBelow() {
	s.writef(termenv.EraseDisplaySeq, 0)
}

// HideCursor hides the cursor
func (s *Surface) HideCursor() {
	s.out.HideCursor()
}

// ShowCursor shows the cursor
func (s *Surface) ShowCursor() {
	s.out.ShowCursor()
}

// WriteString writes text as is
func (s *Surface) WriteString(text string) {
	_, _ = s.buf.WriteString(text)
}

// Flush sends everything buffered to the terminal
func (s *Surface) Flush() error {
	return s.buf.Flush()
}

// Reverse renders text in inverted colors
func (s *Surface) Reverse(text string) string {
	return s.out.String(text).Reverse().String()
}

// Faint renders text dimmed
func (s *Surface) Faint(text string) string {
	return s.out.String(text).Faint().String()
}

// Colored renders text in an ANSI color ("2" green, "3" yellow, "5" magenta)
func (s *Surface) Colored(text, color string) string {
	return s.out.String(text).Foreground(s.out.Color(color)).String()
}

func (s *Surface) writef(seq string, args ...any) {
	_, _ = fmt.Fprintf(s.buf, termenv.CSI+seq, args...)
}
