package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, Args([]string{"a", "", "  ", "b c"}))
	assert.Nil(t, Args(nil))
}

func TestLines(t *testing.T) {
	items, err := Lines(strings.NewReader("one\r\n\n  \ntwo words\nthree"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two words", "three"}, items)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0644))

	items, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, items)

	_, err = File(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yaml", "notes.txt", filepath.Join("sub", "c.yaml")} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "a.yaml"), filepath.Join(root, "link.yaml")))

	t.Run("all files", func(t *testing.T) {
		files, err := Dir(root, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.yaml", "b.yaml", "notes.txt", filepath.Join("sub", "c.yaml")}, files)
	})

	t.Run("glob on base name", func(t *testing.T) {
		files, err := Dir(root, "*.yaml")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.yaml", "b.yaml", filepath.Join("sub", "c.yaml")}, files)
	})

	t.Run("nothing matches", func(t *testing.T) {
		_, err := Dir(root, "*.json")
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := Dir(root, "[")
		assert.Error(t, err)
	})

	t.Run("not a directory", func(t *testing.T) {
		_, err := Dir(filepath.Join(root, "a.yaml"), "")
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Dir(filepath.Join(root, "nope"), "")
		assert.Error(t, err)
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x"), ExpandHome("~/x"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/tmp/x", ExpandHome("/tmp/x"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
