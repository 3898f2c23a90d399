//go:build !windows

package storage

import (
	"errors"
	"syscall"
)

func freeBytes(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}

func isDiskFullError(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
