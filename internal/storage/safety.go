package storage

import (
	"fmt"
	"os"
	"path/filepath"

	herrors "github.com/manav03panchal/hydrate/internal/errors"
)

// MinFreeSpace is the free space below which appends are refused (1MB).
const MinFreeSpace = 1 * 1024 * 1024

// CheckDiskSpace returns ErrDiskFull when the volume holding path has less
// than MinFreeSpace available. An unknown free space does not block writes.
func CheckDiskSpace(path string) error {
	free, err := freeBytes(existingAncestor(path))
	if err != nil {
		return nil
	}
	if free < MinFreeSpace {
		return herrors.Wrapf(herrors.ErrDiskFull, "%d KB free, need at least %d KB",
			free/1024, MinFreeSpace/1024)
	}
	return nil
}

// EnsureDirectory creates the store's directory if it is missing.
func EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		if isDiskFullError(err) {
			return herrors.ErrDiskFull
		}
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// existingAncestor walks up from path to the nearest entry that exists, so
// free space can be measured before the store directory is created.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
