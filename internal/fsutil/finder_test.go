package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# empty\n"), 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.hcl"))
	writeFile(t, filepath.Join(root, "a.hcl"))
	writeFile(t, filepath.Join(root, "nested", "c.hcl"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)
}

func TestFindFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindFilesByExtension(t.TempDir(), "")
	})
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "defs", "a.hcl")
	b := filepath.Join(root, "defs", "b.hcl")
	single := filepath.Join(root, "single.hcl")
	writeFile(t, a)
	writeFile(t, b)
	writeFile(t, single)

	t.Run("directories and files, deduplicated", func(t *testing.T) {
		files, err := CollectFiles([]string{single, filepath.Join(root, "defs"), a}, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{single, a, b}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := CollectFiles([]string{filepath.Join(root, "nope.hcl")}, ".hcl")
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("wrong extension", func(t *testing.T) {
		txt := filepath.Join(root, "notes.txt")
		writeFile(t, txt)
		_, err := CollectFiles([]string{txt}, ".hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a .hcl file")
	})
}
