//go:build !windows

package storage

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	herrors "github.com/manav03panchal/hydrate/internal/errors"
)

func flockAcquire(file *os.File) error {
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return herrors.ErrLockHeld
		}
		return fmt.Errorf("flock: %w", err)
	}
	return nil
}

func flockRelease(file *os.File) error {
	return syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
}

// isProcessRunning sends signal 0, which only checks that the process exists.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
