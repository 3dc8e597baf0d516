package keys

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Code identifies the kind of a decoded key
type Code uint8

const (
	CodeNone Code = iota // Zero value, "no key"
	CodeRune             // Character key, see Key.Rune
	CodeCtrl             // Ctrl+letter, Rune holds the lowercase letter
	CodeAlt              // Alt+character (ESC prefix), Rune holds the character
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeEscape
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeUnknown // Recognized as a sequence but not mapped
)

// Key is a single decoded keyboard event. Keys are comparable with ==.
type Key struct {
	Code Code
	Rune rune
}

// Named keys
var (
	None      = Key{}
	Enter     = Key{Code: CodeEnter}
	Tab       = Key{Code: CodeTab}
	Backspace = Key{Code: CodeBackspace}
	Delete    = Key{Code: CodeDelete}
	Escape    = Key{Code: CodeEscape}
	Up        = Key{Code: CodeUp}
	Down      = Key{Code: CodeDown}
	Left      = Key{Code: CodeLeft}
	Right     = Key{Code: CodeRight}
	Home      = Key{Code: CodeHome}
	End       = Key{Code: CodeEnd}
	PageUp    = Key{Code: CodePageUp}
	PageDown  = Key{Code: CodePageDown}

	// Interrupt always cancels a menu, whatever quit key the caller chose
	Interrupt = Ctrl('c')
)

// Char returns the key for a typed character
func Char(r rune) Key {
	return Key{Code: CodeRune, Rune: r}
}

// Ctrl returns the key for Ctrl+r
func Ctrl(r rune) Key {
	return Key{Code: CodeCtrl, Rune: unicode.ToLower(r)}
}

// Alt returns the key for Alt+r
func Alt(r rune) Key {
	return Key{Code: CodeAlt, Rune: r}
}

// IsZero reports whether k is the "no key" value
func (k Key) IsZero() bool {
	return k.Code == CodeNone
}

// IsChar reports whether k is a typed character
func (k Key) IsChar() bool {
	return k.Code == CodeRune
}

// IsASCII reports whether k is a typed character in the ASCII range
func (k Key) IsASCII() bool {
	return k.Code == CodeRune && k.Rune < utf8.RuneSelf
}

// IsPrintable reports whether k is a printable ASCII character
func (k Key) IsPrintable() bool {
	return k.IsASCII() && k.Rune >= 0x20 && k.Rune != 0x7f
}

// Digit returns the numeric value of an ASCII digit key
func (k Key) Digit() (int, bool) {
	if k.Code != CodeRune || k.Rune < '0' || k.Rune > '9' {
		return 0, false
	}
	return int(k.Rune - '0'), true
}

var codeNames = map[Code]string{
	CodeEnter:     "enter",
	CodeTab:       "tab",
	CodeBackspace: "backspace",
	CodeDelete:    "delete",
	CodeEscape:    "esc",
	CodeUp:        "up",
	CodeDown:      "down",
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeHome:      "home",
	CodeEnd:       "end",
	CodePageUp:    "pgup",
	CodePageDown:  "pgdown",
	CodeUnknown:   "unknown",
}

// String returns the label used in menus and in config files
func (k Key) String() string {
	switch k.Code {
	case CodeNone:
		return ""
	case CodeRune:
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	case CodeCtrl:
		return "ctrl+" + string(k.Rune)
	case CodeAlt:
		return "alt+" + string(k.Rune)
	}
	if name, ok := codeNames[k.Code]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", k.Code)
}

// Parse turns a key name such as "q", "esc", "ctrl+d" or "alt+x" into a Key.
// An empty name parses to the zero Key.
func Parse(name string) (Key, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return None, nil
	}

	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil
	}

	lower := strings.ToLower(s)
	switch lower {
	case "space":
		return Char(' '), nil
	case "escape":
		return Escape, nil
	case "return":
		return Enter, nil
	}
	for code, n := range codeNames {
		if n == lower && code != CodeUnknown {
			return Key{Code: code}, nil
		}
	}

	for _, p := range []struct {
		prefix string
		make   func(rune) Key
	}{
		{"ctrl+", Ctrl},
		{"c-", Ctrl},
		{"alt+", Alt},
		{"m-", Alt},
	} {
		if !strings.HasPrefix(lower, p.prefix) {
			continue
		}
		rest := s[len(p.prefix):]
		if utf8.RuneCountInString(rest) != 1 {
			break
		}
		r, _ := utf8.DecodeRuneInString(rest)
		return p.make(r), nil
	}

	return None, fmt.Errorf("unknown key name %q", name)
}
