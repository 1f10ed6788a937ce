package store

import (
	"fmt"
	"sync"

	"github.com/alexflint/go-filemutex"
)

// LockSuffix is appended to a state file name to form its lock file.
const LockSuffix = ".lock"

// fileLock serializes access to a state file between goroutines and
// between processes.
type fileLock struct {
	mu    sync.Mutex
	flock *filemutex.FileMutex
}

func newFileLock(statePath string) (*fileLock, error) {
	flock, err := filemutex.New(statePath + LockSuffix)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	return &fileLock{flock: flock}, nil
}

// Lock blocks until the state file is held exclusively.
func (l *fileLock) Lock() error {
	l.mu.Lock()
	if err := l.flock.Lock(); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("lock state: %w", err)
	}
	return nil
}

// Unlock releases the state file.
func (l *fileLock) Unlock() error {
	defer l.mu.Unlock()
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock state: %w", err)
	}
	return nil
}

func (l *fileLock) close() error {
	return l.flock.Close()
}
