package menu

import "termpick/internal/keys"

// outcome is what a key does to a running menu
type outcome int

const (
	stay outcome = iota
	confirm
	quit
)

func (o outcome) String() string {
	switch o {
	case confirm:
		return "confirm"
	case quit:
		return "quit"
	}
	return "stay"
}

// selection is the highlighted row of a list of count items.
// index stays in [0, max(count-1, 0)].
type selection struct {
	index int
	count int
}

// apply handles navigation, confirm and quit keys
func (s *selection) apply(k, quitKey keys.Key) outcome {
	switch {
	case k == keys.Enter:
		return confirm
	case k == keys.Up:
		if s.index > 0 {
			s.index--
		}
	case k == keys.Down:
		if s.index+1 < s.count {
			s.index++
		}
	case isQuit(k, quitKey):
		return quit
	}
	return stay
}

// resize re-clamps the index after the list was regenerated. The index is
// kept numerically, not by item.
func (s *selection) resize(n int) {
	s.count = n
	s.index = min(s.index, max(n-1, 0))
}

// chosen reports whether the index names an item
func (s *selection) chosen() bool {
	return s.index < s.count
}

func isQuit(k, quitKey keys.Key) bool {
	return k == keys.Interrupt || (!quitKey.IsZero() && k == quitKey)
}

// edit is what a key did to the line editor
type edit int

const (
	editIgnored  edit = iota // Not an editing key
	editMoved                // Consumed, buffer unchanged
	editChanged              // Buffer contents changed
	editRejected             // Non-ASCII character, buffer unchanged
)

// editor is an ASCII line buffer with a caret in [0, len(buf)]
type editor struct {
	buf   []byte
	caret int
}

func (e *editor) String() string {
	return string(e.buf)
}

// apply handles a key before any list navigation sees it
func (e *editor) apply(k keys.Key) edit {
	switch {
	case k.IsPrintable():
		e.buf = append(e.buf, 0)
		copy(e.buf[e.caret+1:], e.buf[e.caret:])
		e.buf[e.caret] = byte(k.Rune)
		e.caret++
		return editChanged
	case k.IsChar() && !k.IsASCII():
		return editRejected
	case k == keys.Backspace:
		if e.caret == 0 {
			return editMoved
		}
		e.buf = append(e.buf[:e.caret-1], e.buf[e.caret:]...)
		e.caret--
		return editChanged
	case k == keys.Delete:
		if e.caret == len(e.buf) {
			return editMoved
		}
		e.buf = append(e.buf[:e.caret], e.buf[e.caret+1:]...)
		return editChanged
	case k == keys.Left:
		if e.caret > 0 {
			e.caret--
		}
		return editMoved
	case k == keys.Right:
		if e.caret < len(e.buf) {
			e.caret++
		}
		return editMoved
	case k == keys.Home:
		e.caret = 0
		return editMoved
	case k == keys.End:
		e.caret = len(e.buf)
		return editMoved
	}
	return editIgnored
}
