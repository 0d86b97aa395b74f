package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestFindRecentPicksNewestInWindow(t *testing.T) {
	dir := t.TempDir()
	since := time.Now()

	touch(t, dir, "2025-03-14_09-20.txt", since.Add(10*time.Second))
	newest := touch(t, dir, "2025-03-14_09-21.txt", since.Add(30*time.Second))

	artifact, found, err := NewWatcher().FindRecent(dir, since, 150*time.Second)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, newest, artifact.Path)
}

func TestFindRecentIgnoresOutOfWindowAndForeignFiles(t *testing.T) {
	dir := t.TempDir()
	since := time.Now()

	// Too old, too new, and not matching the naming convention.
	touch(t, dir, "2025-03-14_08-00.txt", since.Add(-time.Hour))
	touch(t, dir, "2025-03-14_10-00.txt", since.Add(200*time.Second))
	touch(t, dir, "notes.txt", since.Add(5*time.Second))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2025-03-14_09-00.txt"), 0o755))

	_, found, err := NewWatcher().FindRecent(dir, since, 150*time.Second)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindRecentToleratesSlightlyEarlyMtime(t *testing.T) {
	dir := t.TempDir()
	since := time.Now()

	// Flushed just before the stop timestamp was taken.
	path := touch(t, dir, "2025-03-14_09-25.txt", since.Add(-time.Second))

	artifact, found, err := NewWatcher().FindRecent(dir, since, 150*time.Second)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, path, artifact.Path)
}

func TestFindRecentMissingDir(t *testing.T) {
	_, _, err := NewWatcher().FindRecent(filepath.Join(t.TempDir(), "missing"), time.Now(), time.Minute)
	assert.Error(t, err)
}
