// Package store persists the few values regexmark keeps between runs: the
// last pattern, its flags and the navigation cursor.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaklabco/regexmark/pkg/mark"
	"github.com/yaklabco/regexmark/pkg/pattern"
)

// Persisted keys.
const (
	KeyRegex = "regex"
	KeyFlags = "flags"
	KeyIdx   = "idx"
)

// Backends accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrInvalidKey is returned for an empty or blank key.
var ErrInvalidKey = errors.New("invalid key")

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// List returns every stored pair.
	List(ctx context.Context) (map[string]string, error)

	// Close releases the store.
	Close() error
}

// Locker is implemented by stores that can serialize whole operations
// across processes.
type Locker interface {
	Lock() error
	Unlock() error
}

// Config selects and locates a backend.
type Config struct {
	// Backend is BackendFile or BackendSQLite. Empty means BackendFile.
	Backend string

	// Path is the state file. Empty means DefaultPath(Backend).
	Path string
}

// Open opens the configured backend, creating its directory if needed.
func Open(cfg Config) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendFile
	}

	path := cfg.Path
	if path == "" {
		var err error
		path, err = DefaultPath(backend)
		if err != nil {
			return nil, err
		}
	}

	switch backend {
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q: must be %s or %s", backend, BackendFile, BackendSQLite)
	}
}

// DefaultPath returns the state file location for backend under
// $XDG_STATE_HOME/regexmark, falling back to ~/.local/state/regexmark.
func DefaultPath(backend string) (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate state directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}

	name := "state.yml"
	if backend == BackendSQLite {
		name = "state.db"
	}
	return filepath.Join(dir, "regexmark", name), nil
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Settings are the persisted pattern and flags.
type Settings struct {
	Regex string `json:"regex" yaml:"regex"`
	Flags string `json:"flags" yaml:"flags"`
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() Settings {
	return Settings{Regex: pattern.DefaultPattern, Flags: pattern.DefaultFlags}
}

// LoadSettings reads the stored settings. Missing values take the matching
// field of defaults and are written back.
func LoadSettings(ctx context.Context, s Store, defaults Settings) (Settings, error) {
	out := defaults

	fields := []struct {
		key string
		dst *string
	}{
		{KeyRegex, &out.Regex},
		{KeyFlags, &out.Flags},
	}

	for _, f := range fields {
		value, ok, err := s.Get(ctx, f.key)
		if err != nil {
			return Settings{}, err
		}
		if ok {
			*f.dst = value
			continue
		}
		if err := s.Set(ctx, f.key, *f.dst); err != nil {
			return Settings{}, err
		}
	}

	return out, nil
}

// SaveSettings writes both settings.
func SaveSettings(ctx context.Context, s Store, settings Settings) error {
	if err := s.Set(ctx, KeyRegex, settings.Regex); err != nil {
		return err
	}
	return s.Set(ctx, KeyFlags, settings.Flags)
}

// Cursor returns the stored cursor and whether one was stored. An absent or
// unparsable value reads as mark.NoCursor.
func Cursor(ctx context.Context, s Store) (int, bool, error) {
	value, ok, err := s.Get(ctx, KeyIdx)
	if err != nil || !ok {
		return mark.NoCursor, false, err
	}

	cursor, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return mark.NoCursor, false, nil
	}
	return cursor, true, nil
}

// SetCursor stores cursor.
func SetCursor(ctx context.Context, s Store, cursor int) error {
	return s.Set(ctx, KeyIdx, strconv.Itoa(cursor))
}

// ClearCursor removes the stored cursor.
func ClearCursor(ctx context.Context, s Store) error {
	return s.Remove(ctx, KeyIdx)
}
