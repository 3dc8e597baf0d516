package screen

import (
	"errors"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"termpick/internal/keys"
)

// Minimum screen size the menus are laid out for
const (
	DefaultMinRows = 46
	DefaultMinCols = 29
)

var (
	ErrNotTerminal = errors.New("not a terminal")
	ErrTooSmall    = errors.New("terminal screen too small")
)

// Options controls how a Terminal is opened
type Options struct {
	MinRows int
	MinCols int
	// TTYPath is opened for both input and output. When it cannot be
	// opened, stdin and stdout are used instead.
	TTYPath string
}

// Terminal is a tty held in raw mode. Close restores it.
type Terminal struct {
	in    *os.File
	out   *os.File
	owned *os.File
	fd    int
	state *term.State

	Keys    *keys.Decoder
	Surface *Surface
}

// Open checks the terminal, enters raw mode and returns the Terminal.
// The caller must call Close on every exit path.
func Open(opts Options) (*Terminal, error) {
	if opts.MinRows == 0 {
		opts.MinRows = DefaultMinRows
	}
	if opts.MinCols == 0 {
		opts.MinCols = DefaultMinCols
	}
	if opts.TTYPath == "" {
		opts.TTYPath = "/dev/tty"
	}

	t := &Terminal{in: os.Stdin, out: os.Stdout}
	if tty, err := os.OpenFile(opts.TTYPath, os.O_RDWR, 0); err == nil {
		t.in, t.out, t.owned = tty, tty, tty
	}
	t.fd = int(t.in.Fd())

	if !term.IsTerminal(t.fd) {
		t.closeOwned()
		return nil, ErrNotTerminal
	}

	cols, rows, err := term.GetSize(t.fd)
	if err != nil {
		t.closeOwned()
		return nil, fmt.Errorf("failed to get terminal size: %w", err)
	}
	if rows < opts.MinRows || cols < opts.MinCols {
		t.closeOwned()
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrTooSmall, cols, rows, opts.MinCols, opts.MinRows)
	}

	profile := termenv.NewOutput(t.out).EnvColorProfile()

	state, err := term.MakeRaw(t.fd)
	if err != nil {
		t.closeOwned()
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	t.state = state

	t.Keys = keys.NewDecoder(t.in)
	t.Surface = NewSurface(t.out, profile, t.Keys)
	return t, nil
}

// Close shows the cursor again, flushes pending output and restores the
// saved terminal state
func (t *Terminal) Close() error {
	t.Surface.ShowCursor()
	errs := []error{t.Surface.Flush()}
	if t.state != nil {
		errs = append(errs, term.Restore(t.fd, t.state))
		t.state = nil
	}
	errs = append(errs, t.closeOwned())
	return errors.Join(errs...)
}

func (t *Terminal) closeOwned() error {
	if t.owned == nil {
		return nil
	}
	err := t.owned.Close()
	t.owned = nil
	return err
}
