// Package source collects menu items from arguments, readers and directories
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoItems is returned when a source produced nothing to choose from
var ErrNoItems = errors.New("no items to choose from")

// Args returns the non-empty arguments as items
func Args(args []string) []string {
	var items []string
	for _, a := range args {
		if strings.TrimSpace(a) != "" {
			items = append(items, a)
		}
	}
	return items
}

// Lines reads one item per non-empty line
func Lines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var items []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading items: %w", err)
	}

	return items, nil
}

// Stdin reads items piped to stdin
func Stdin() ([]string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot inspect stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no input piped to stdin")
	}
	return Lines(os.Stdin)
}

// File reads one item per line from a file
func File(path string) ([]string, error) {
	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Lines(f)
}

// Dir returns files under dir matching glob (on the base name, empty for
// all) as paths relative to dir, sorted alphabetically.
// Searches recursively, skips symlinks.
func Dir(dir, glob string) ([]string, error) {
	dir = ExpandHome(dir)
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory '%s' does not exist", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access '%s': %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' is not a directory", dir)
	}
	if glob != "" {
		if _, err := filepath.Match(glob, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern '%s': %w", glob, err)
		}
	}

	var files []string

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries we can't access
		}
		if d.Type()&os.ModeSymlink != 0 || d.IsDir() {
			return nil
		}

		if glob != "" {
			if matched, _ := filepath.Match(glob, d.Name()); !matched {
				return nil
			}
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading directory '%s': %w", dir, err)
	}

	if len(files) == 0 {
		if glob != "" {
			return nil, fmt.Errorf("%w: no files in '%s' matching '%s'", ErrNoItems, dir, glob)
		}
		return nil, fmt.Errorf("%w: no files in '%s'", ErrNoItems, dir)
	}

	sort.Strings(files)
	return files, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
