package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/regexmark/pkg/document"
	"github.com/yaklabco/regexmark/pkg/fsutil"
	"github.com/yaklabco/regexmark/pkg/pattern"
	"github.com/yaklabco/regexmark/pkg/session"
)

// Exit codes for regexmark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNoMatches indicates the highlighted pattern matched nothing.
	ExitNoMatches = 1

	// ExitInvalidUsage indicates invalid command-line usage, including an
	// invalid pattern or flag string.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitNoInput indicates there was no page to operate on.
	ExitNoInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrNoMatchesFound is returned after a report that found no markers.
	// It only carries the exit code and is not worth logging.
	ErrNoMatchesFound = errors.New("no matches found")

	// ErrUsage marks command-line usage errors.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration errors.
	ErrConfig = errors.New("configuration error")
)

func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrConfig, err)
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoMatchesFound):
		return ExitNoMatches
	case errors.Is(err, ErrUsage), pattern.IsPatternError(err):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, session.ErrNoActiveTarget),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, document.ErrBinary),
		errors.Is(err, document.ErrUnsupported):
		return ExitNoInput
	case errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrModified),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
