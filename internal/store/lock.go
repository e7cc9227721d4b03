package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process already owns the data directory.
var ErrLocked = errors.New("data directory is in use by another daybook process")

const lockFile = "daybook.lock"

// DirLock is an exclusive advisory lock on a data directory.
type DirLock struct {
	flk *flock.Flock
}

// LockDir takes the data directory lock without blocking.
func LockDir(dir string) (*DirLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}

	flk := flock.New(filepath.Join(dir, lockFile))
	locked, err := flk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return &DirLock{flk: flk}, nil
}

// Path returns the lock file path.
func (l *DirLock) Path() string {
	return l.flk.Path()
}

// Unlock releases the lock. It is safe to call more than once.
func (l *DirLock) Unlock() error {
	return l.flk.Unlock()
}
