package store

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var (
	epochOnce    sync.Once
	processEpoch int64
)

// startEpoch returns the wall-clock second this process first touched the
// store package. It is frozen once so every store created with New within
// one process run shares the same file.
func startEpoch() int64 {
	epochOnce.Do(func() {
		processEpoch = time.Now().Unix()
	})
	return processEpoch
}

// DefaultPath returns the per-process session log path,
// <temp-dir>/log-<unix-epoch-seconds-at-process-start>.log.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "log-"+strconv.FormatInt(startEpoch(), 10)+".log")
}

// Store persists rendered log lines to a single append-only file. The file
// is created on first append; it is never truncated or rotated and persists
// after the process exits.
type Store struct {
	path string
}

// New returns a store writing to the per-process default path.
func New() *Store {
	return &Store{path: DefaultPath()}
}

// NewAt returns a store writing to an explicit path.
func NewAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store appends to.
func (s *Store) Path() string {
	return s.path
}

// Append writes text to the end of the log file, creating the file on the
// first call. Each call is a self-contained open/write/close cycle; no file
// handle outlives the call.
func (s *Store) Append(text string) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open log file %s", s.path)
	}

	_, werr := f.WriteString(text)
	if err := multierr.Append(werr, f.Close()); err != nil {
		return errors.Wrapf(err, "append to log file %s", s.path)
	}
	return nil
}

// ReadAll returns the entire current content of the log file.
func (s *Store) ReadAll() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", errors.Wrapf(err, "read log file %s", s.path)
	}
	return string(b), nil
}
