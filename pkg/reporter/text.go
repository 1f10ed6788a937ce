package reporter

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/regexmark/internal/ui/pretty"
)

// TextReporter writes styled, human-readable reports.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, report *Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if r.opts.Quiet {
		if report.Focus != nil {
			fmt.Fprintln(r.bw, r.styles.FormatExcerpt(*report.Focus))
		}
		return nil
	}

	switch report.Command {
	case CommandState:
		r.writeState(report)
	case CommandClear:
		r.writeClear(report)
	case CommandRestore:
		r.writeRestore(report)
	default:
		r.writeFocus(report)
	}
	return nil
}

func (r *TextReporter) writeFocus(report *Report) {
	s := r.styles

	if report.Command == CommandHighlight {
		fmt.Fprintf(r.bw, "%s  %s  %s\n",
			s.FilePath.Render(report.Path),
			s.Match.Render(formatPattern(report.Pattern, report.Flags)),
			s.Dim.Render(plural(report.Markers, "match", "matches")))
	}

	if report.NoMatches || report.Cursor == nil {
		fmt.Fprintln(r.bw, s.Warning.Render("No matches."))
		return
	}

	line := s.FormatCounter(*report.Cursor, report.Markers)
	if report.Focus != nil {
		line += "  " + s.FormatExcerpt(*report.Focus)
	}
	fmt.Fprintln(r.bw, line)
}

func (r *TextReporter) writeClear(report *Report) {
	s := r.styles
	msg := "Cleared " + plural(report.Removed, "marker", "markers")
	if report.StylesRemoved > 0 {
		msg += " and " + plural(report.StylesRemoved, "stylesheet", "stylesheets")
	}
	fmt.Fprintf(r.bw, "%s  %s\n", s.FilePath.Render(report.Path), s.Success.Render(msg+"."))
}

func (r *TextReporter) writeRestore(report *Report) {
	s := r.styles
	if !report.Restored {
		fmt.Fprintf(r.bw, "%s  %s\n", s.FilePath.Render(report.Path), s.Warning.Render("No backup to restore."))
		return
	}
	fmt.Fprintf(r.bw, "%s  %s\n", s.FilePath.Render(report.Path), s.Success.Render("Restored from backup."))
}

func (r *TextReporter) writeState(report *Report) {
	s := r.styles

	// Without a page only the stored settings are known.
	if report.Path == "" {
		cursor := "none"
		if report.Cursor != nil {
			cursor = fmt.Sprint(*report.Cursor + 1)
		}
		fmt.Fprintln(r.bw, s.FormatField("pattern", formatPattern(report.Pattern, report.Flags)))
		fmt.Fprintln(r.bw, s.FormatField("cursor", cursor))
		r.writeStored(report.Stored)
		return
	}

	cursor := "none"
	if report.Cursor != nil {
		cursor = s.FormatCounter(*report.Cursor, report.Markers)
	}

	fields := [][2]string{
		{"file", report.Path},
		{"pattern", formatPattern(report.Pattern, report.Flags)},
		{"markers", fmt.Sprint(report.Markers)},
		{"cursor", cursor},
	}
	if report.Output != "" && report.Output != report.Path {
		fields = append(fields, [2]string{"output", report.Output})
	}
	if report.Current != "" {
		fields = append(fields, [2]string{"current", s.Current.Render(report.Current)})
	}

	for _, f := range fields {
		fmt.Fprintln(r.bw, s.FormatField(f[0], f[1]))
	}
}

// writeStored lists the raw store entries by key.
func (r *TextReporter) writeStored(stored map[string]string) {
	if len(stored) == 0 {
		return
	}
	fmt.Fprintln(r.bw, r.styles.Dim.Render("stored:"))
	for _, key := range slices.Sorted(maps.Keys(stored)) {
		fmt.Fprintln(r.bw, "  "+r.styles.FormatField(key, stored[key]))
	}
}

func formatPattern(pattern, flags string) string {
	return "/" + pattern + "/" + flags
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
