package keys

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMalformedInput is returned when the input stream is not valid UTF-8
var ErrMalformedInput = errors.New("malformed keyboard input")

// maxSequence bounds how many bytes a CSI sequence may span before it is
// given up on as Unknown
const maxSequence = 32

// position is a decoded cursor position report (ESC [ row ; col R)
type position struct {
	row, col int
}

// Decoder turns a raw terminal byte stream into Keys.
// Next blocks until a full key has been read.
type Decoder struct {
	r       *bufio.Reader
	pending []Key
}

// NewDecoder creates a Decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, 256)}
}

// Next returns the next key. Errors from the underlying reader (including
// io.EOF) are returned unchanged.
func (d *Decoder) Next() (Key, error) {
	if len(d.pending) > 0 {
		k := d.pending[0]
		d.pending = d.pending[1:]
		return k, nil
	}

	for {
		k, pos, err := d.decode()
		if err != nil {
			return None, err
		}
		// Unsolicited cursor reports are not keys
		if pos != nil {
			continue
		}
		return k, nil
	}
}

// ReadCursorReport reads until a cursor position report arrives and returns
// its 1-based row and column. Keys typed in the meantime are kept and
// returned by later calls to Next.
func (d *Decoder) ReadCursorReport() (int, int, error) {
	for {
		k, pos, err := d.decode()
		if err != nil {
			return 0, 0, err
		}
		if pos != nil {
			return pos.row, pos.col, nil
		}
		d.pending = append(d.pending, k)
	}
}

func (d *Decoder) decode() (Key, *position, error) {
	r, size, err := d.r.ReadRune()
	if err != nil {
		return None, nil, err
	}
	if r == utf8.RuneError && size == 1 {
		return None, nil, ErrMalformedInput
	}

	switch {
	case r == 0x1b:
		return d.escape()
	case r == '\r' || r == '\n':
		return Enter, nil, nil
	case r == 0x7f || r == 0x08:
		return Backspace, nil, nil
	case r == '\t':
		return Tab, nil, nil
	case r == 0:
		return Ctrl('@'), nil, nil
	case r < 0x1b:
		return Ctrl('a' + r - 1), nil, nil
	case r < 0x20:
		return Ctrl(rune("\\]^_"[r-0x1c])), nil, nil
	}
	return Char(r), nil, nil
}

// escape handles the bytes following ESC
func (d *Decoder) escape() (Key, *position, error) {
	// Nothing else arrived with the ESC byte: a lone Escape key press
	if d.r.Buffered() == 0 {
		return Escape, nil, nil
	}

	r, size, err := d.r.ReadRune()
	if err != nil {
		return None, nil, err
	}
	if r == utf8.RuneError && size == 1 {
		return None, nil, ErrMalformedInput
	}

	switch r {
	case '[':
		return d.csi()
	case 'O':
		b, err := d.r.ReadByte()
		if err != nil {
			return None, nil, err
		}
		return finalKey(b), nil, nil
	}

	if r >= 0x20 && r != 0x7f {
		return Alt(r), nil, nil
	}
	// ESC followed by a control byte: report Escape and decode the rest next time
	_ = d.r.UnreadRune()
	return Escape, nil, nil
}

// csi reads a Control Sequence Introducer sequence after ESC [
func (d *Decoder) csi() (Key, *position, error) {
	var params strings.Builder
	for i := 0; i < maxSequence; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return None, nil, err
		}
		if b >= 0x20 && b <= 0x3f {
			params.WriteByte(b)
			continue
		}

		p := params.String()
		switch b {
		case 'R':
			if pos, ok := parsePosition(p); ok {
				return None, &pos, nil
			}
			return Key{Code: CodeUnknown}, nil, nil
		case '~':
			return tildeKey(p), nil, nil
		}
		return finalKey(b), nil, nil
	}
	return Key{Code: CodeUnknown}, nil, nil
}

// finalKey maps the final byte of CSI and SS3 sequences. Modifier
// parameters (ESC [ 1 ; 5 A) are ignored.
func finalKey(b byte) Key {
	switch b {
	case 'A':
		return Up
	case 'B':
		return Down
	case 'C':
		return Right
	case 'D':
		return Left
	case 'H':
		return Home
	case 'F':
		return End
	}
	return Key{Code: CodeUnknown}
}

// tildeKey maps ESC [ n ~ sequences
func tildeKey(params string) Key {
	n, _, _ := strings.Cut(params, ";")
	switch n {
	case "1", "7":
		return Home
	case "3":
		return Delete
	case "4", "8":
		return End
	case "5":
		return PageUp
	case "6":
		return PageDown
	}
	return Key{Code: CodeUnknown}
}

func parsePosition(params string) (position, bool) {
	rs, cs, ok := strings.Cut(params, ";")
	if !ok {
		return position{}, false
	}
	row, err := strconv.Atoi(rs)
	if err != nil {
		return position{}, false
	}
	col, err := strconv.Atoi(cs)
	if err != nil {
		return position{}, false
	}
	return position{row: row, col: col}, true
}
