// Package pattern compiles user search expressions and finds their matches
// in plain text.
//
// Patterns follow ECMAScript regular expression syntax, executed with
// github.com/dlclark/regexp2. Match positions are expressed in characters
// (Unicode code points), not bytes.
package pattern

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultPattern is the pattern text used when none has been stored yet.
const DefaultPattern = "test.*"

// DefaultMaxMatches bounds the number of matches collected from one text.
const DefaultMaxMatches = 100

// Error reports a pattern or flag string that cannot be compiled.
type Error struct {
	// Pattern is the offending pattern text, if any.
	Pattern string

	// Flags is the flag string the pattern was compiled with.
	Flags string

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("invalid flags %q: %v", e.Flags, e.Err)
	}
	return fmt.Sprintf("invalid regular expression /%s/%s: %v", e.Pattern, e.Flags, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsPatternError reports whether err is, or wraps, an *Error.
func IsPatternError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// Match is a half-open range [Index, Index+Length) of characters within one
// text, together with the matched substring.
type Match struct {
	Index  int
	Length int
	Text   string
}

// End returns the exclusive end offset of the match.
func (m Match) End() int {
	return m.Index + m.Length
}

// Matcher executes a compiled pattern.
// A Matcher carries no scan state between calls and may be reused.
type Matcher struct {
	re    *regexp2.Regexp
	opts  Options
	limit int
}

// Compile compiles source with the given options.
// Syntax errors are returned as *Error.
func Compile(source string, opts Options) (*Matcher, error) {
	reOpts := regexp2.RegexOptions(regexp2.ECMAScript)
	if opts.CaseInsensitive {
		reOpts |= regexp2.IgnoreCase
	}
	if opts.Multiline {
		reOpts |= regexp2.Multiline
	}
	if opts.Unicode {
		reOpts |= regexp2.Unicode
	}

	re, err := regexp2.Compile(source, reOpts)
	if err != nil {
		return nil, &Error{Pattern: source, Flags: opts.String(), Err: err}
	}

	return &Matcher{
		re:    re,
		opts:  opts,
		limit: DefaultMaxMatches,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string, opts Options) *Matcher {
	m, err := Compile(source, opts)
	if err != nil {
		panic(err)
	}
	return m
}

// Options returns the modifiers the pattern was compiled with.
func (m *Matcher) Options() Options {
	return m.opts
}

// Limit returns the maximum number of matches FindAll collects per text.
func (m *Matcher) Limit() int {
	return m.limit
}

// SetLimit sets the per-text match cap. Values below 1 restore DefaultMaxMatches.
func (m *Matcher) SetLimit(n int) {
	if n < 1 {
		n = DefaultMaxMatches
	}
	m.limit = n
}

// SetTimeout bounds the time a single match attempt may take.
// Zero leaves attempts unbounded.
func (m *Matcher) SetTimeout(d time.Duration) {
	if d <= 0 {
		m.re.MatchTimeout = regexp2.DefaultMatchTimeout
		return
	}
	m.re.MatchTimeout = d
}

// FindAll returns the matches of the pattern in text, in order and
// non-overlapping.
//
// Without the global modifier at most one match is returned. With it, the
// scan restarts at the end of each match until nothing more matches or the
// limit is reached; an empty match moves the scan position forward by one
// character so the loop always terminates.
func (m *Matcher) FindAll(text string) ([]Match, error) {
	runes := []rune(text)

	if !m.opts.Global {
		found, err := m.re.FindRunesMatch(runes)
		if err != nil {
			return nil, fmt.Errorf("match: %w", err)
		}
		if found == nil {
			return nil, nil
		}
		return []Match{toMatch(found)}, nil
	}

	var matches []Match
	pos := 0
	for pos <= len(runes) && len(matches) < m.limit {
		found, err := m.re.FindRunesMatchStartingAt(runes, pos)
		if err != nil {
			return nil, fmt.Errorf("match: %w", err)
		}
		if found == nil {
			break
		}

		match := toMatch(found)
		matches = append(matches, match)

		pos = match.End()
		if match.Length == 0 {
			pos++
		}
	}

	return matches, nil
}

func toMatch(found *regexp2.Match) Match {
	return Match{
		Index:  found.Index,
		Length: found.Length,
		Text:   found.String(),
	}
}
