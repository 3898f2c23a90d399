// Package storage provides the durable intake log for hydrate.
package storage

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	herrors "github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/model"
)

const (
	// AppName is the application name used for data directories.
	AppName = "hydrate"
	// StoreFileName is the default intake log file name.
	StoreFileName = "water_intake_log.txt"
)

// DefaultPath returns the default intake log path following the XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, StoreFileName)
}

// IntakeLog is an append-only, line-oriented store of intake events.
//
// The in-memory view caches every complete line read so far together with the
// byte offset where reading stopped; subsequent loads only read what was
// appended since. A store that shrank is reloaded from the start.
type IntakeLog struct {
	path string

	mu     sync.Mutex
	events []model.IntakeEvent
	offset int64
}

// NewIntakeLog creates an intake log backed by the file at path. The file is
// not touched until the first read or write.
func NewIntakeLog(path string) *IntakeLog {
	return &IntakeLog{path: path}
}

// Path returns the store location.
func (l *IntakeLog) Path() string {
	return l.path
}

// Append durably writes one event. The cache is extended only after the
// write has been synced.
func (l *IntakeLog) Append(event model.IntakeEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := EnsureDirectory(filepath.Dir(l.path)); err != nil {
		return herrors.NewStorageWriteError(l.path, err)
	}
	if err := CheckDiskSpace(filepath.Dir(l.path)); err != nil {
		return herrors.NewStorageWriteError(l.path, err)
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return herrors.NewStorageWriteError(l.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return herrors.NewStorageWriteError(l.path, err)
	}
	sizeBefore := info.Size()

	record := event.Encode()
	needsNewline, err := endsWithoutNewline(file, sizeBefore)
	if err != nil {
		return herrors.NewStorageWriteError(l.path, err)
	}
	if needsNewline {
		record = "\n" + record
	}

	if _, err := file.WriteString(record); err != nil {
		if isDiskFullError(err) {
			err = herrors.ErrDiskFull
		}
		return herrors.NewStorageWriteError(l.path, err)
	}
	if err := file.Sync(); err != nil {
		return herrors.NewStorageWriteError(l.path, err)
	}

	// Only extend the cache when it already covered the whole file.
	if l.offset == sizeBefore {
		l.events = append(l.events, event)
		l.offset = sizeBefore + int64(len(record))
	}

	return nil
}

// LoadAll returns every valid event in store order. Lines that do not decode
// are skipped. A missing store is an empty log.
func (l *IntakeLog) LoadAll() ([]model.IntakeEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tail, err := l.refresh()
	if err != nil {
		return nil, err
	}

	events := make([]model.IntakeEvent, 0, len(l.events)+1)
	events = append(events, l.events...)
	if tail != nil {
		events = append(events, *tail)
	}
	return events, nil
}

// LastTimestamp returns the timestamp of the last valid record. Trailing
// malformed lines are ignored. ok is false when the log holds no valid record.
func (l *IntakeLog) LastTimestamp() (ts time.Time, ok bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tail, err := l.refresh()
	if err != nil {
		return time.Time{}, false, err
	}

	if tail != nil {
		return tail.Timestamp, true, nil
	}
	if n := len(l.events); n > 0 {
		return l.events[n-1].Timestamp, true, nil
	}
	return time.Time{}, false, nil
}

// refresh reads everything appended since the last call. Complete lines are
// cached; a final line without newline is decoded and returned separately so
// it is read again once it has been completed.
func (l *IntakeLog) refresh() (*model.IntakeEvent, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.events = nil
			l.offset = 0
			return nil, nil
		}
		return nil, herrors.NewStorageReadError(l.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, herrors.NewStorageReadError(l.path, err)
	}
	if info.IsDir() {
		return nil, herrors.NewStorageReadError(l.path, errors.New("is a directory"))
	}

	if info.Size() < l.offset {
		l.events = nil
		l.offset = 0
	}

	if _, err := file.Seek(l.offset, io.SeekStart); err != nil {
		return nil, herrors.NewStorageReadError(l.path, err)
	}

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, herrors.NewStorageReadError(l.path, err)
		}

		if errors.Is(err, io.EOF) {
			if line == "" {
				return nil, nil
			}
			event, decodeErr := model.DecodeIntakeEvent(line)
			if decodeErr != nil {
				return nil, nil
			}
			return &event, nil
		}

		l.offset += int64(len(line))
		if event, decodeErr := model.DecodeIntakeEvent(line); decodeErr == nil {
			l.events = append(l.events, event)
		}
	}
}

// endsWithoutNewline reports whether a non-empty file's last byte is not '\n'.
func endsWithoutNewline(file *os.File, size int64) (bool, error) {
	if size == 0 {
		return false, nil
	}
	buf := make([]byte, 1)
	if _, err := file.ReadAt(buf, size-1); err != nil {
		return false, err
	}
	return buf[0] != '\n', nil
}
