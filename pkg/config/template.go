package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of a
	// commented minimal template.
	Full bool
}

// TemplateHeader starts every generated config file.
const TemplateHeader = `# regexmark configuration
# See: https://github.com/yaklabco/regexmark`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		data, err := NewConfig().ToYAMLWithHeader(TemplateHeader)
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return data, nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(TemplateHeader + "\n\n")
	fmt.Fprintf(&buf, `# Pattern and flags stored on first run.
# Flags: g (global), i (ignore case), m (multiline), u (unicode)
# default_pattern: %q
# default_flags: %s

# Matches collected from a single text node
# max_matches_per_node: %d

# Elements whose text is never marked, in addition to the elements whose
# content is always written as text (script, style, textarea, title, ...)
# skip_tags: [pre, code]

# Classes written onto marker elements
# classes:
#   highlighted: %s
#   current: %s

# Add the marker stylesheet to highlighted pages
# inject_styles: true

# Bound on a single match attempt, e.g. 500ms. 0 means unbounded.
# match_timeout: 0s

# Markdown flavor: commonmark or gfm
flavor: %s

# Where the pattern, flags and cursor are kept: file or sqlite
# store:
#   backend: %s
#   path: ~/.local/state/regexmark/state.yml

# Backup taken before a page is first rewritten: sidecar or none
# backups:
#   enabled: true
#   mode: %s
`,
		DefaultPattern, DefaultFlags, DefaultMaxMatchesPerNode,
		DefaultHighlightedClass, DefaultCurrentClass,
		FlavorCommonMark, DefaultStoreBackend, DefaultBackupMode)

	return buf.Bytes()
}
