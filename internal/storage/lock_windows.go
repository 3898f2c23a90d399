//go:build windows

package storage

import (
	"os"
)

// Windows has no flock; the lock file and its PID are the only guard.
func flockAcquire(file *os.File) error {
	return nil
}

func flockRelease(file *os.File) error {
	return nil
}

// isProcessRunning assumes a process that can be found is still alive.
func isProcessRunning(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
