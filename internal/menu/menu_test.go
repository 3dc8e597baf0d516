package menu

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termpick/internal/keys"
	"termpick/internal/screen"
)

// script is a KeySource replaying a fixed list of keys, then io.EOF
type script struct {
	keys  []keys.Key
	reads int
}

func (s *script) Next() (keys.Key, error) {
	if s.reads >= len(s.keys) {
		return keys.None, io.EOF
	}
	k := s.keys[s.reads]
	s.reads++
	return k, nil
}

// fixedCursor answers every position query with row 5, column 1
type fixedCursor struct{}

func (fixedCursor) ReadCursorReport() (int, int, error) {
	return 5, 1, nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func newTestMenus(ks ...keys.Key) (*Menus, *script, *bytes.Buffer) {
	var out bytes.Buffer
	src := &script{keys: ks}
	s := screen.NewSurface(&out, termenv.Ascii, fixedCursor{})
	return New(src, s, WithLogger(slog.New(slog.DiscardHandler))), src, &out
}

func fruits() []Text {
	return Texts([]string{"apple", "banana", "blueberry", "cherry"})
}

func prefixQuery(items []Text, calls *int) func(string) []Text {
	return func(text string) []Text {
		*calls++
		var out []Text
		for _, it := range items {
			if strings.HasPrefix(string(it), text) {
				out = append(out, it)
			}
		}
		return out
	}
}

func TestSelect(t *testing.T) {
	abc := Texts([]string{"a", "b", "c"})

	tests := []struct {
		name     string
		items    []Text
		quit     keys.Key
		keys     []keys.Key
		expected int
		ok       bool
	}{
		{
			name:     "down down enter",
			items:    abc,
			keys:     []keys.Key{keys.Down, keys.Down, keys.Enter},
			expected: 2,
			ok:       true,
		},
		{
			name:     "enter picks first",
			items:    abc,
			keys:     []keys.Key{keys.Enter},
			expected: 0,
			ok:       true,
		},
		{
			name:     "down saturates at last item",
			items:    abc,
			keys:     []keys.Key{keys.Down, keys.Down, keys.Down, keys.Down, keys.Enter},
			expected: 2,
			ok:       true,
		},
		{
			name:     "up saturates at first item",
			items:    abc,
			keys:     []keys.Key{keys.Up, keys.Down, keys.Up, keys.Up, keys.Enter},
			expected: 0,
			ok:       true,
		},
		{
			name:     "other keys change nothing",
			items:    abc,
			keys:     []keys.Key{keys.Down, keys.Char('x'), keys.Tab, keys.Enter},
			expected: 1,
			ok:       true,
		},
		{
			name:  "empty list enter is no selection",
			items: nil,
			keys:  []keys.Key{keys.Enter},
		},
		{
			name:  "quit key",
			items: abc,
			quit:  keys.Char('q'),
			keys:  []keys.Key{keys.Down, keys.Char('q')},
		},
		{
			name:  "interrupt without quit key",
			items: abc,
			keys:  []keys.Key{keys.Interrupt},
		},
		{
			name:  "escape quits when it is the quit key",
			items: abc,
			quit:  keys.Escape,
			keys:  []keys.Key{keys.Escape},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, src, _ := newTestMenus(tt.keys...)
			idx, ok, err := Select(m, slices.Values(tt.items), "Pick one", ">", tt.quit)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, idx)
			}
			assert.Equal(t, len(tt.keys), src.reads, "every key is consumed")
		})
	}
}

func TestSelectFrame(t *testing.T) {
	m, _, out := newTestMenus(keys.Down, keys.Enter)
	idx, ok, err := Select(m, slices.Values(Texts([]string{"a", "b"})), "T", ">", keys.None)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	anchor := "\x1b[5;1H"
	expected := "\n\n\n\x1b[3A" + "\x1b[6n" +
		anchor + "\x1b[0J" + "T\r\n" + "> a\r\n" + "b\r\n" + anchor +
		anchor + "\x1b[0J" + "T\r\n" + "a\r\n" + "> b\r\n" + anchor +
		anchor + "\x1b[0J"
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectHiddenCursor(t *testing.T) {
	var out bytes.Buffer
	s := screen.NewSurface(&out, termenv.Ascii, fixedCursor{})
	m := New(&script{keys: []keys.Key{keys.Enter}}, s, WithHiddenCursor())

	_, ok, err := Select(m, slices.Values(Texts([]string{"a"})), "", "", keys.None)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, out.String(), "\x1b[?25l")
	assert.True(t, strings.HasSuffix(out.String(), "\x1b[?25h"), "cursor shown again on exit")
}

func TestSelectIOFailures(t *testing.T) {
	t.Run("key source exhausted", func(t *testing.T) {
		m, _, _ := newTestMenus(keys.Down)
		_, _, err := Select(m, slices.Values(fruits()), "", ">", keys.None)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("surface broken", func(t *testing.T) {
		s := screen.NewSurface(failingWriter{}, termenv.Ascii, fixedCursor{})
		m := New(&script{keys: []keys.Key{keys.Enter}}, s)
		_, _, err := Select(m, slices.Values(fruits()), "", ">", keys.None)
		require.Error(t, err)
	})
}

func TestSelectWithInput(t *testing.T) {
	t.Run("typing narrows the list and clamps the index", func(t *testing.T) {
		calls := 0
		m, _, _ := newTestMenus(keys.Down, keys.Down, keys.Down, keys.Char('b'), keys.Enter)
		item, ok, err := SelectWithInput(m, prefixQuery(fruits(), &calls), ">", "find: ", keys.None)
		require.NoError(t, err)
		require.True(t, ok)
		// cherry was highlighted at index 3; "b" leaves two items
		assert.Equal(t, Text("blueberry"), item)
		assert.Equal(t, 2, calls, "query runs once up front and once per edit")
	})

	t.Run("backspace widens the list again", func(t *testing.T) {
		calls := 0
		m, _, _ := newTestMenus(keys.Char('c'), keys.Backspace, keys.Down, keys.Enter)
		item, ok, err := SelectWithInput(m, prefixQuery(fruits(), &calls), ">", "find: ", keys.None)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, Text("banana"), item)
		assert.Equal(t, 3, calls)
	})

	t.Run("caret moves do not query", func(t *testing.T) {
		calls := 0
		m, _, _ := newTestMenus(keys.Char('b'), keys.Left, keys.Right, keys.Left, keys.Enter)
		_, ok, err := SelectWithInput(m, prefixQuery(fruits(), &calls), ">", "find: ", keys.None)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 2, calls)
	})

	t.Run("no match then enter is no selection", func(t *testing.T) {
		calls := 0
		m, _, _ := newTestMenus(keys.Char('z'), keys.Enter)
		_, ok, err := SelectWithInput(m, prefixQuery(fruits(), &calls), ">", "find: ", keys.None)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("character quit key is typed instead", func(t *testing.T) {
		calls := 0
		m, _, _ := newTestMenus(keys.Char('q'), keys.Backspace, keys.Escape)
		_, ok, err := SelectWithInput(m, prefixQuery(fruits(), &calls), ">", "find: ", keys.Char('q'))
		require.ErrorIs(t, err, io.EOF, "q and escape do not end the menu")
		assert.False(t, ok)
	})

	t.Run("quit key and interrupt", func(t *testing.T) {
		for _, k := range []keys.Key{keys.Escape, keys.Interrupt} {
			calls := 0
			m, _, _ := newTestMenus(keys.Char('b'), k)
			_, ok, err := SelectWithInput(m, prefixQuery(fruits(), &calls), ">", "find: ", keys.Escape)
			require.NoError(t, err)
			assert.False(t, ok)
		}
	})

	t.Run("non-ascii shows a notice once", func(t *testing.T) {
		calls := 0
		m, _, out := newTestMenus(keys.Char('é'), keys.Char('a'), keys.Enter)
		item, ok, err := SelectWithInput(m, prefixQuery(fruits(), &calls), ">", "find: ", keys.None)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, Text("apple"), item)
		assert.Equal(t, 1, strings.Count(out.String(), asciiNotice))
		assert.NotContains(t, out.String(), "é")
		assert.Equal(t, 2, calls)
	})
}

func TestSelectWithInputFrame(t *testing.T) {
	calls := 0
	m, _, out := newTestMenus(keys.Char('a'), keys.Char('b'), keys.Left, keys.Interrupt)
	_, _, err := SelectWithInput(m, prefixQuery(fruits(), &calls), ">", "find: ", keys.None)
	require.NoError(t, err)

	got := out.String()
	anchor := "\x1b[5;1H"

	// First frame: every item, hints, caret after the prompt
	assert.Contains(t, got, anchor+"\x1b[0Jfind: \r\n\r\n"+navigateHint+"\r\n"+selectHint+"\r\n> apple\r\nbanana\r\n")
	assert.Contains(t, got, anchor+"\x1b[6C")
	// "ab" matches nothing: no hints, caret tracks the text
	assert.Contains(t, got, anchor+"\x1b[0Jfind: ab"+anchor+"\x1b[8C")
	// caret moved left once, after "a" and after Left
	assert.Equal(t, 2, strings.Count(got, anchor+"\x1b[7C"))
	// exit leaves the cursor one row below the anchor
	assert.True(t, strings.HasSuffix(got, anchor+"\x1b[0J\r\n"))
}

func TestSelectNumbered(t *testing.T) {
	abc := Texts([]string{"a", "b", "c"})

	tests := []struct {
		name     string
		key      keys.Key
		expected Numbered
	}{
		{"first", keys.Char('1'), Numbered{Kind: NumberedIndex, Index: 0}},
		{"last", keys.Char('3'), Numbered{Kind: NumberedIndex, Index: 2}},
		{"zero", keys.Char('0'), Numbered{Kind: NumberedUnrecognized, Key: keys.Char('0')}},
		{"past the end", keys.Char('4'), Numbered{Kind: NumberedUnrecognized, Key: keys.Char('4')}},
		{"letter", keys.Char('x'), Numbered{Kind: NumberedUnrecognized, Key: keys.Char('x')}},
		{"arrow", keys.Down, Numbered{Kind: NumberedUnrecognized, Key: keys.Down}},
		{"quit key", keys.Char('q'), Numbered{Kind: NumberedQuit}},
		{"interrupt", keys.Interrupt, Numbered{Kind: NumberedQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, src, _ := newTestMenus(tt.key, keys.Enter)
			res, err := SelectNumbered(m, slices.Values(abc), keys.Char('q'), "Choose")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res)
			assert.Equal(t, 1, src.reads, "exactly one key is read")
		})
	}
}

func TestSelectNumberedQuitOnEmptyList(t *testing.T) {
	m, _, _ := newTestMenus(keys.Char('q'))
	res, err := SelectNumbered(m, slices.Values([]Text{}), keys.Char('q'), "")
	require.NoError(t, err)
	assert.Equal(t, NumberedQuit, res.Kind)
}

func TestSelectNumberedFrame(t *testing.T) {
	m, _, out := newTestMenus(keys.Char('2'))
	_, err := SelectNumbered(m, slices.Values(Texts([]string{"a", "b"})), keys.Escape, "Choose")
	require.NoError(t, err)

	anchor := "\x1b[5;1H"
	expected := "\n\n\n\n\x1b[4A" + "\x1b[6n" +
		anchor + "\x1b[0J" + "Choose\r\n" + "1. a\r\n" + "2. b\r\n" + "esc. Quit\r\n" + anchor +
		anchor + "\x1b[0J"
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectNumberedNeedsQuitKey(t *testing.T) {
	m, _, _ := newTestMenus(keys.Char('1'))
	_, err := SelectNumbered(m, slices.Values(Texts([]string{"a"})), keys.None, "")
	require.ErrorIs(t, err, errNoQuitKey)
}
