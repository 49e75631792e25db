// Package filelock serializes writes to the results file so that two scans
// of the same directory cannot interleave output in the same report.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock wraps a flock advisory lock guarding a target file.
type Lock struct {
	flock *flock.Flock
	path  string
}

// New creates a lock for the given target path. The lock file lives next to
// the target with a ".lock" suffix.
func New(target string) *Lock {
	lockPath := target + ".lock"
	return &Lock{
		flock: flock.New(lockPath),
		path:  lockPath,
	}
}

// Lock blocks until the exclusive lock is acquired.
func (l *Lock) Lock() error {
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}
	return nil
}

// Unlock releases the lock.
func (l *Lock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// WriteLocked writes data to path while holding the exclusive lock for it.
// The write itself is atomic: data goes to a temp file in the same directory
// which is then renamed over the target, so readers never see a partial
// report.
func WriteLocked(path string, data []byte) error {
	lock := New(path)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// Rename is atomic within a filesystem; the temp file was created in the
	// target's directory for exactly this reason.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tmp = nil
	return nil
}
