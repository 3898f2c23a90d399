package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	herrors "github.com/manav03panchal/hydrate/internal/errors"
)

// LockSuffix is appended to the store path to name its lock file.
const LockSuffix = ".lock"

// FileLock is an advisory lock that keeps a second long-running hydrate
// process from writing the same intake log.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a lock guarding the store at storePath.
func NewFileLock(storePath string) *FileLock {
	return &FileLock{path: storePath + LockSuffix}
}

// Path returns the lock file location.
func (l *FileLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. A lock held by a live process
// yields a *LockError wrapping ErrLockHeld.
func (l *FileLock) Acquire() error {
	if l.file != nil {
		return nil
	}

	// The store directory may not exist yet on a first run.
	if err := EnsureDirectory(filepath.Dir(l.path)); err != nil {
		return &LockError{Err: err}
	}

	if err := l.cleanStaleLock(); err != nil {
		return err
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return &LockError{Err: err}
	}

	if err := flockAcquire(file); err != nil {
		file.Close()
		return &LockError{Err: err, PID: l.readPID()}
	}

	if err := writePID(file); err != nil {
		flockRelease(file)
		file.Close()
		return &LockError{Err: err}
	}

	l.file = file
	return nil
}

// Release drops the lock and removes the lock file. Releasing an unheld
// lock is a no-op.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}

	file := l.file
	l.file = nil

	if err := flockRelease(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// cleanStaleLock removes a lock file left behind by a process that is gone.
func (l *FileLock) cleanStaleLock() error {
	pid := l.readPID()
	if pid <= 0 || isProcessRunning(pid) {
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clean stale lock: %w", err)
	}
	return nil
}

// readPID returns the PID recorded in the lock file, or 0.
func (l *FileLock) readPID() int {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

func writePID(file *os.File) error {
	if err := file.Truncate(0); err != nil {
		return err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(file, "%d", os.Getpid()); err != nil {
		return err
	}
	return file.Sync()
}

// LockError reports why the store lock could not be taken.
type LockError struct {
	Err error
	PID int
}

func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("intake log is in use by another hydrate process (PID %d)", e.PID)
	}
	return fmt.Sprintf("cannot lock intake log: %v", e.Err)
}

func (e *LockError) Unwrap() error {
	return e.Err
}

// IsLockHeld reports whether err means another process owns the lock.
func IsLockHeld(err error) bool {
	return herrors.Is(err, herrors.ErrLockHeld)
}
