package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/regexmark/pkg/fsutil"
)

// FileStore keeps state in a YAML map file. Writes replace the file
// atomically. Lock and Unlock guard the file against other processes.
type FileStore struct {
	*fileLock

	path string
}

// OpenFile opens the YAML store at path, creating its directory. The file
// itself is created on first write.
func OpenFile(path string) (*FileStore, error) {
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	lock, err := newFileLock(path)
	if err != nil {
		return nil, err
	}

	return &FileStore{fileLock: lock, path: path}, nil
}

// Path returns the state file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	state, err := s.read(ctx)
	if err != nil {
		return "", false, err
	}

	value, ok := state[key]
	return value, ok, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	state, err := s.read(ctx)
	if err != nil {
		return err
	}
	if current, ok := state[key]; ok && current == value {
		return nil
	}

	state[key] = value
	return s.write(ctx, state)
}

// Remove implements Store.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	state, err := s.read(ctx)
	if err != nil {
		return err
	}
	if _, ok := state[key]; !ok {
		return nil
	}

	delete(state, key)
	return s.write(ctx, state)
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) (map[string]string, error) {
	state, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(state), nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return s.close()
}

func (s *FileStore) read(ctx context.Context) (map[string]string, error) {
	content, _, err := fsutil.ReadFile(ctx, s.path)
	if errors.Is(err, fsutil.ErrNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	state := map[string]string{}
	if err := yaml.Unmarshal(content, &state); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", s.path, err)
	}
	if state == nil {
		state = map[string]string{}
	}
	return state, nil
}

func (s *FileStore) write(ctx context.Context, state map[string]string) error {
	content, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, s.path, content, os.FileMode(0o600)); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
