// Package pretty holds the lipgloss styles used for terminal output.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles are the renderers for each kind of output fragment.
type Styles struct {
	// Match and Current mirror the page styles: every match on a yellow
	// background, the focused one bold on salmon.
	Match   lipgloss.Style
	Current lipgloss.Style

	FilePath lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Counter  lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Failure lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Match:    plain,
			Current:  plain,
			FilePath: plain,
			Label:    plain,
			Value:    plain,
			Counter:  plain,
			Success:  plain,
			Warning:  plain,
			Failure:  plain,
			Dim:      plain,
			Bold:     plain,
		}
	}

	return &Styles{
		Match: lipgloss.NewStyle().
			Background(lipgloss.Color("11")).
			Foreground(lipgloss.Color("0")),
		Current: lipgloss.NewStyle().
			Background(lipgloss.Color("#FF8080")).
			Foreground(lipgloss.Color("0")).
			Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:    lipgloss.NewStyle(),
		Counter:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled decides whether to color output written to writer.
// "always" and "never" are absolute. Anything else means auto: color only
// when writer is a terminal and NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := writer.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
