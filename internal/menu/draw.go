package menu

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"termpick/internal/keys"
	"termpick/internal/screen"
)

const (
	navigateHint = "↑/↓ to navigate"
	selectHint   = "ENTER to select"
	asciiNotice  = "Only ASCII characters"

	// input line, blank line and the two hint lines
	filterChromeRows = 4
	// notice line shown under the input line
	noticeRows = 1
)

// Colors used by the menus, as ANSI color indexes
const (
	colorOrdinal = "2"
	colorNotice  = "3"
	colorInput   = "5"
)

// begin makes room for rows lines below the cursor and records the anchor
func (m *Menus) begin(rows int, hide bool) (screen.Pos, error) {
	// Scroll the terminal now so the frame fits under the anchor
	if rows > 0 {
		m.surface.WriteString(strings.Repeat("\n", rows))
		m.surface.Up(rows)
	}
	if hide {
		m.surface.HideCursor()
	}
	return m.surface.CursorPos()
}

// clear wipes the frame and leaves the cursor at the anchor
func (m *Menus) clear(anchor screen.Pos, hidden bool) error {
	m.surface.MoveTo(anchor)
	m.surface.ClearBelow()
	if hidden {
		m.surface.ShowCursor()
	}
	return m.surface.Flush()
}

// clearBelowInput wipes the frame and leaves the cursor one row under the
// anchor
func (m *Menus) clearBelowInput(anchor screen.Pos) error {
	m.surface.MoveTo(anchor)
	m.surface.ClearBelow()
	m.surface.WriteString("\r\n")
	return m.surface.Flush()
}

func (m *Menus) drawItems(items []string, index int, prompt string) {
	s := m.surface
	for i, item := range items {
		if i == index {
			if prompt != "" {
				s.WriteString(prompt + " ")
			}
			s.WriteString(s.Reverse(item))
		} else {
			s.WriteString(s.Faint(item))
		}
		s.WriteString("\r\n")
	}
}

// drawPlain repaints a plain list and parks the cursor at the anchor
func (m *Menus) drawPlain(anchor screen.Pos, title string, items []string, index int, prompt string) error {
	s := m.surface
	s.MoveTo(anchor)
	s.ClearBelow()
	if title != "" {
		s.WriteString(title + "\r\n")
	}
	m.drawItems(items, index, prompt)
	s.MoveTo(anchor)
	return s.Flush()
}

// drawFilter repaints the input line and the filtered list, then puts the
// cursor right after the caret
func (m *Menus) drawFilter(anchor screen.Pos, inputPrompt string, ed *editor, notice string, items []string, index int, prompt string) error {
	s := m.surface
	s.MoveTo(anchor)
	s.ClearBelow()
	s.WriteString(s.Colored(inputPrompt, colorInput) + ed.String())
	if notice != "" {
		s.WriteString("\r\n" + s.Colored(notice, colorNotice))
	}
	if len(items) > 0 {
		s.WriteString("\r\n\r\n" + navigateHint + "\r\n" + selectHint + "\r\n")
		m.drawItems(items, index, prompt)
	}
	s.MoveTo(anchor)
	s.Right(runewidth.StringWidth(inputPrompt) + ed.caret)
	return s.Flush()
}

// drawNumbered repaints a numbered list with a trailing Quit entry
func (m *Menus) drawNumbered(anchor screen.Pos, title string, items []string, quitKey keys.Key) error {
	s := m.surface
	s.MoveTo(anchor)
	s.ClearBelow()
	if title != "" {
		s.WriteString(title + "\r\n")
	}
	for i, item := range items {
		s.WriteString(s.Colored(strconv.Itoa(i+1), colorOrdinal) + ". " + item + "\r\n")
	}
	s.WriteString(s.Colored(quitKey.String(), colorOrdinal) + ". Quit\r\n")
	s.MoveTo(anchor)
	return s.Flush()
}

func titleRows(title string) int {
	if title == "" {
		return 0
	}
	return 1
}
