package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for output writers.
const bufWriterSize = 16 * 1024

// Options configures a reporter.
type Options struct {
	// Writer receives the report. Nil means os.Stdout.
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// Quiet suppresses everything but the focused excerpt in text output.
	Quiet bool
}

// DefaultOptions returns text output to stdout with automatic color.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatText,
		Color:  "auto",
	}
}
