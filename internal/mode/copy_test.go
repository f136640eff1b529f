package mode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "ch1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.html"), []byte("<html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "ch1", "page.html"), []byte("<p>"), 0o644))

	dst := filepath.Join(t.TempDir(), "doc", "book")
	require.NoError(t, copyTree(context.Background(), src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(data))

	data, err = os.ReadFile(filepath.Join(dst, "ch1", "page.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>", string(data))
}

func TestCopyTreeMissingSource(t *testing.T) {
	dst := t.TempDir()
	err := copyTree(context.Background(), filepath.Join(dst, "absent"), filepath.Join(dst, "out"))
	require.Error(t, err)
}

func TestCopyTreeSourceNotDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	require.Error(t, copyTree(context.Background(), file, filepath.Join(dir, "out")))
}

func TestCopyTreeBuiltinArity(t *testing.T) {
	_, err := newCopyTree([]string{"only-src"})
	require.Error(t, err)
}
