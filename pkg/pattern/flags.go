package pattern

import (
	"fmt"
	"strings"
)

// Flag characters in canonical order.
const (
	FlagGlobal          = 'g'
	FlagCaseInsensitive = 'i'
	FlagMultiline       = 'm'
	FlagUnicode         = 'u'
)

// DefaultFlags is the flag string used when none has been stored yet.
const DefaultFlags = "gm"

// Options holds the independent boolean modifiers of a pattern.
type Options struct {
	// Global collects every match instead of only the first.
	Global bool

	// CaseInsensitive ignores letter case.
	CaseInsensitive bool

	// Multiline makes ^ and $ match at line boundaries.
	Multiline bool

	// Unicode enables code-point escapes such as \u{1F600}.
	Unicode bool
}

// DefaultOptions returns the options encoded by DefaultFlags.
func DefaultOptions() Options {
	return Options{Global: true, Multiline: true}
}

// String encodes the options as a flag string in canonical "gimu" order.
// Each enabled modifier contributes exactly one character.
func (o Options) String() string {
	var sb strings.Builder
	if o.Global {
		sb.WriteByte(FlagGlobal)
	}
	if o.CaseInsensitive {
		sb.WriteByte(FlagCaseInsensitive)
	}
	if o.Multiline {
		sb.WriteByte(FlagMultiline)
	}
	if o.Unicode {
		sb.WriteByte(FlagUnicode)
	}
	return sb.String()
}

// ParseFlags decodes a flag string. Characters may appear in any order but
// each at most once; anything outside "gimu" is rejected with an *Error.
func ParseFlags(flags string) (Options, error) {
	var opts Options
	seen := make(map[rune]bool, len(flags))

	for _, r := range flags {
		if seen[r] {
			return Options{}, &Error{
				Flags: flags,
				Err:   fmt.Errorf("duplicate flag %q", r),
			}
		}
		seen[r] = true

		switch r {
		case FlagGlobal:
			opts.Global = true
		case FlagCaseInsensitive:
			opts.CaseInsensitive = true
		case FlagMultiline:
			opts.Multiline = true
		case FlagUnicode:
			opts.Unicode = true
		default:
			return Options{}, &Error{
				Flags: flags,
				Err:   fmt.Errorf("invalid flag %q", r),
			}
		}
	}

	return opts, nil
}

// CanonicalFlags normalizes a flag string to "gimu" order.
func CanonicalFlags(flags string) (string, error) {
	opts, err := ParseFlags(flags)
	if err != nil {
		return "", err
	}
	return opts.String(), nil
}
