package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/forayconsulting/meeting-recorder/internal/transcript"
)

// mtimeEpsilon pads the lower bound of the tolerance window so an artifact
// flushed just before the stop timestamp is still attributed to the session.
const mtimeEpsilon = 2 * time.Second

// CompletionWatcher discovers session artifacts by observing the output
// directory.
type CompletionWatcher interface {
	// FindRecent returns the most recent artifact whose modification time
	// falls within [since-epsilon, since+tolerance], if any.
	FindRecent(dir string, since time.Time, tolerance time.Duration) (Artifact, bool, error)
}

// DirWatcher is the filesystem-backed CompletionWatcher. Read-only; it
// tolerates concurrent writers because the supervisor only consults it
// after the worker has exited and closed its files.
type DirWatcher struct{}

func NewWatcher() *DirWatcher {
	return &DirWatcher{}
}

func (w *DirWatcher) FindRecent(dir string, since time.Time, tolerance time.Duration) (Artifact, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Artifact{}, false, fmt.Errorf("listing %s: %w", dir, err)
	}

	earliest := since.Add(-mtimeEpsilon)
	latest := since.Add(tolerance)

	var best Artifact
	found := false
	for _, entry := range entries {
		if entry.IsDir() || !transcript.MatchesFilename(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mtime := info.ModTime()
		if mtime.Before(earliest) || mtime.After(latest) {
			continue
		}
		if !found || mtime.After(best.ModTime) {
			best = Artifact{Path: filepath.Join(dir, entry.Name()), ModTime: mtime}
			found = true
		}
	}

	return best, found, nil
}
