package menu

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"termpick/internal/keys"
)

var errNoQuitKey = errors.New("numbered menu needs a quit key")

// Select shows items as a plain list and lets the user move with the arrow
// keys. It returns the index of the item confirmed with Enter, or false
// when the user quits (quit key or Ctrl+C) or confirms an empty list.
// A zero quit key means only Ctrl+C quits.
func Select[T fmt.Stringer](m *Menus, items iter.Seq[T], title, prompt string, quitKey keys.Key) (int, bool, error) {
	sel := selection{count: count(items)}

	anchor, err := m.begin(titleRows(title)+sel.count, m.hideCursor)
	if err != nil {
		return 0, false, err
	}

	for {
		if err := m.drawPlain(anchor, title, labels(items), sel.index, prompt); err != nil {
			return 0, false, fmt.Errorf("draw menu: %w", err)
		}

		k, err := m.keys.Next()
		if err != nil {
			return 0, false, fmt.Errorf("read key: %w", err)
		}

		out := sel.apply(k, quitKey)
		m.log.Debug("menu key", "mode", "plain", "key", k.String(), "index", sel.index, "outcome", out)

		switch out {
		case confirm:
			if err := m.clear(anchor, m.hideCursor); err != nil {
				return 0, false, err
			}
			if !sel.chosen() {
				return 0, false, nil
			}
			return sel.index, true, nil
		case quit:
			return 0, false, m.clear(anchor, m.hideCursor)
		}
	}
}

// SelectWithInput shows an input line above a list produced by query.
// Typing edits the input; every edit calls query again with the current
// text and the highlighted row is re-clamped to the new list. Enter returns
// the highlighted item; quitting, or Enter on an empty list, returns false.
//
// Printable characters always go to the input, so a character quit key is
// never seen in this mode.
func SelectWithInput[T fmt.Stringer](m *Menus, query func(string) []T, prompt, inputPrompt string, quitKey keys.Key) (T, bool, error) {
	var zero T
	var ed editor

	list := query("")
	sel := selection{count: len(list)}

	anchor, err := m.begin(filterChromeRows+noticeRows+len(list), false)
	if err != nil {
		return zero, false, err
	}

	var notice string
	for {
		if err := m.drawFilter(anchor, inputPrompt, &ed, notice, labels(slices.Values(list)), sel.index, prompt); err != nil {
			return zero, false, fmt.Errorf("draw menu: %w", err)
		}
		notice = ""

		k, err := m.keys.Next()
		if err != nil {
			return zero, false, fmt.Errorf("read key: %w", err)
		}

		switch ed.apply(k) {
		case editChanged:
			list = query(ed.String())
			sel.resize(len(list))
			m.log.Debug("menu input", "text", ed.String(), "items", len(list), "index", sel.index)
			continue
		case editMoved:
			continue
		case editRejected:
			notice = asciiNotice
			continue
		}

		out := sel.apply(k, quitKey)
		m.log.Debug("menu key", "mode", "filter", "key", k.String(), "index", sel.index, "outcome", out)

		switch out {
		case confirm:
			if err := m.clearBelowInput(anchor); err != nil {
				return zero, false, err
			}
			if !sel.chosen() {
				return zero, false, nil
			}
			return list[sel.index], true, nil
		case quit:
			return zero, false, m.clearBelowInput(anchor)
		}
	}
}

// SelectNumbered shows items prefixed with 1-based numbers plus a Quit
// entry for quitKey, then reads exactly one key. Digits 1-9 pick the
// matching item; quitKey or Ctrl+C quit; anything else is returned as
// NumberedUnrecognized for the caller to handle.
func SelectNumbered[T fmt.Stringer](m *Menus, items iter.Seq[T], quitKey keys.Key, title string) (Numbered, error) {
	if quitKey.IsZero() {
		return Numbered{}, errNoQuitKey
	}

	names := labels(items)
	anchor, err := m.begin(titleRows(title)+len(names)+1, m.hideCursor)
	if err != nil {
		return Numbered{}, err
	}

	if err := m.drawNumbered(anchor, title, names, quitKey); err != nil {
		return Numbered{}, fmt.Errorf("draw menu: %w", err)
	}

	k, err := m.keys.Next()
	if err != nil {
		return Numbered{}, fmt.Errorf("read key: %w", err)
	}
	if err := m.clear(anchor, m.hideCursor); err != nil {
		return Numbered{}, err
	}

	res := numbered(k, len(names), quitKey)
	m.log.Debug("menu key", "mode", "numbered", "key", k.String(), "kind", res.Kind)
	return res, nil
}

func numbered(k keys.Key, n int, quitKey keys.Key) Numbered {
	if d, ok := k.Digit(); ok && d >= 1 && d <= n {
		return Numbered{Kind: NumberedIndex, Index: d - 1}
	}
	if isQuit(k, quitKey) {
		return Numbered{Kind: NumberedQuit}
	}
	return Numbered{Kind: NumberedUnrecognized, Key: k}
}
