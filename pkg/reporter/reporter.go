// Package reporter prints the outcome of regexmark commands.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/regexmark/pkg/session"
	"github.com/yaklabco/regexmark/pkg/view"
)

// Command names carried by a Report.
const (
	CommandHighlight = "highlight"
	CommandNext      = "next"
	CommandPrev      = "prev"
	CommandClear     = "clear"
	CommandRestore   = "restore"
	CommandState     = "state"
)

// Report is the outcome of one command.
type Report struct {
	Command string `json:"command"`
	Path    string `json:"path"`
	Output  string `json:"output,omitempty"`

	Pattern string `json:"pattern,omitempty"`
	Flags   string `json:"flags,omitempty"`

	// Markers is the number of markers on the page after the command.
	Markers int `json:"markers"`

	// Cursor is the focused marker, nil when nothing is focused.
	Cursor *int `json:"cursor,omitempty"`

	Removed       int  `json:"removed,omitempty"`
	StylesRemoved int  `json:"stylesRemoved,omitempty"`
	Restored      bool `json:"restored,omitempty"`

	// NoMatches is set when navigation found no markers.
	NoMatches bool `json:"noMatches,omitempty"`

	// Current is the text of the focused marker.
	Current string `json:"current,omitempty"`

	Focus   *view.Excerpt `json:"focus,omitempty"`
	Written bool          `json:"written"`

	// Stored holds every key in the state store, for state --all.
	Stored map[string]string `json:"stored,omitempty"`
}

// Reporter writes reports.
type Reporter interface {
	Report(ctx context.Context, report *Report) error
}

// New creates the reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// FromHighlight builds the report of a highlight.
func FromHighlight(s *session.Session, res *session.HighlightResult) *Report {
	r := base(CommandHighlight, s)
	r.Pattern = res.Settings.Regex
	r.Flags = res.Settings.Flags
	r.Markers = res.Markers
	r.Removed = res.Removed
	r.Written = res.Written
	if res.Step != nil {
		r.Cursor = &res.Step.Cursor
		r.Focus = res.Step.Focus
	} else {
		r.NoMatches = true
	}
	return r
}

// FromStep builds the report of a navigation step. A nil res means there
// was nothing to navigate.
func FromStep(command string, s *session.Session, res *session.StepResult) *Report {
	r := base(command, s)
	if res == nil {
		r.NoMatches = true
		return r
	}
	r.Markers = res.Count
	r.Cursor = &res.Cursor
	r.Focus = res.Focus
	r.Written = res.Written
	return r
}

// FromClear builds the report of a clear.
func FromClear(s *session.Session, res *session.ClearResult) *Report {
	r := base(CommandClear, s)
	r.Removed = res.Removed
	r.StylesRemoved = res.StylesRemoved
	r.Written = res.Written
	return r
}

// FromRestore builds the report of a restore from backup.
func FromRestore(s *session.Session, restored bool) *Report {
	r := base(CommandRestore, s)
	r.Restored = restored
	r.Written = restored
	return r
}

// FromStatus builds the report of the state command.
func FromStatus(status *session.Status) *Report {
	r := &Report{
		Command: CommandState,
		Path:    status.Path,
		Output:  status.Output,
		Pattern: status.Settings.Regex,
		Flags:   status.Settings.Flags,
		Markers: status.Markers,
		Current: status.Current,
	}
	if status.Cursor >= 0 {
		cursor := status.Cursor
		r.Cursor = &cursor
	}
	return r
}

func base(command string, s *session.Session) *Report {
	doc := s.Document()
	return &Report{Command: command, Path: doc.Path, Output: doc.OutputPath}
}
