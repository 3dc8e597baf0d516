// Package menu implements inline, keyboard driven selection menus for
// raw-mode terminals: a plain list, a list filtered by a line editor, and a
// single-keystroke numbered list.
//
// Every call records the cursor position once, then loops: redraw anchored
// at that position, block for one key, apply it. The terminal itself (raw
// mode, restoring it, size checks) belongs to the caller.
package menu

import (
	"fmt"
	"iter"
	"log/slog"

	"termpick/internal/keys"
	"termpick/internal/screen"
)

// KeySource yields decoded keys, blocking until one is available
type KeySource interface {
	Next() (keys.Key, error)
}

// Surface is where menus are drawn. Drawing calls are buffered; Flush
// reports the first write error.
type Surface interface {
	CursorPos() (screen.Pos, error)
	MoveTo(p screen.Pos)
	Up(n int)
	Down(n int)
	Right(n int)
	ClearLine()
	ClearBelow()
	HideCursor()
	ShowCursor()
	WriteString(text string)
	Flush() error

	Reverse(text string) string
	Faint(text string) string
	Colored(text, color string) string
}

// Menus draws menus on one surface, reading keys from one source.
// It keeps no state between calls.
type Menus struct {
	keys       KeySource
	surface    Surface
	log        *slog.Logger
	hideCursor bool
}

// Option configures Menus
type Option func(*Menus)

// WithLogger sends debug output about key handling to l
func WithLogger(l *slog.Logger) Option {
	return func(m *Menus) {
		if l != nil {
			m.log = l
		}
	}
}

// WithHiddenCursor hides the cursor while a plain or numbered menu is
// shown. The filterable menu always shows it so the caret stays visible.
func WithHiddenCursor() Option {
	return func(m *Menus) {
		m.hideCursor = true
	}
}

// New creates Menus reading from src and drawing on s
func New(src KeySource, s Surface, opts ...Option) *Menus {
	m := &Menus{
		keys:    src,
		surface: s,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Text adapts a plain string for use as a menu item
type Text string

func (t Text) String() string {
	return string(t)
}

// Texts converts strings to menu items
func Texts(ss []string) []Text {
	out := make([]Text, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}

// NumberedKind tells which outcome a numbered menu produced
type NumberedKind int

const (
	NumberedIndex        NumberedKind = iota // An item was picked
	NumberedQuit                             // The quit key or Ctrl+C was pressed
	NumberedUnrecognized                     // Any other key, see Numbered.Key
)

// Numbered is the result of SelectNumbered
type Numbered struct {
	Kind  NumberedKind
	Index int      // Valid for NumberedIndex
	Key   keys.Key // Valid for NumberedUnrecognized
}

func count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

func labels[T fmt.Stringer](seq iter.Seq[T]) []string {
	var out []string
	for item := range seq {
		out = append(out, item.String())
	}
	return out
}
