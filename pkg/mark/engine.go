// Package mark finds pattern matches in the text of an HTML tree, wraps each
// match in a marker element, and moves a focus cursor between markers.
//
// The engine never owns the tree. Every operation takes the root node to
// work on, mutates it in place, and leaves it renderable. Nothing is kept
// between calls except the classes written into the tree itself.
package mark

import (
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/yaklabco/regexmark/pkg/pattern"
)

// Default class names written onto marker elements.
const (
	DefaultHighlightedClass = "regexfindhighlighted"
	DefaultCurrentClass     = "regexfindcurrent"
)

// TextOnlyTags lists elements whose children html.Render writes as raw or
// escaped text. A marker inside one would be saved as literal markup, so
// these are skipped whatever the configured skip set says.
func TextOnlyTags() []string {
	return []string{
		"iframe", "noembed", "noframes", "noscript", "plaintext",
		"script", "style", "textarea", "title", "xmp",
	}
}

// DefaultSkipTags lists elements whose content is never scanned.
func DefaultSkipTags() []string {
	return TextOnlyTags()
}

// Classes names the marker classes.
type Classes struct {
	// Highlighted is carried by every marker.
	Highlighted string

	// Current is carried by the single focused marker.
	Current string
}

// DefaultClasses returns the default marker class names.
func DefaultClasses() Classes {
	return Classes{
		Highlighted: DefaultHighlightedClass,
		Current:     DefaultCurrentClass,
	}
}

// Options configures an Engine.
type Options struct {
	// Classes names the marker classes. Empty fields take the defaults.
	Classes Classes

	// SkipTags lists element names whose subtrees are not scanned.
	// Nil means DefaultSkipTags. TextOnlyTags are always skipped.
	SkipTags []string

	// MaxMatches caps the matches collected from one text node.
	// Zero or negative means pattern.DefaultMaxMatches.
	MaxMatches int

	// MatchTimeout bounds a single match attempt. Zero means unbounded.
	MatchTimeout time.Duration
}

// Engine applies patterns to trees and navigates the resulting markers.
// It holds only configuration and is safe to reuse across trees.
type Engine struct {
	classes      Classes
	skip         map[string]bool
	maxMatches   int
	matchTimeout time.Duration
}

// NewEngine creates an Engine from opts.
func NewEngine(opts Options) *Engine {
	classes := DefaultClasses()
	if opts.Classes.Highlighted != "" {
		classes.Highlighted = opts.Classes.Highlighted
	}
	if opts.Classes.Current != "" {
		classes.Current = opts.Classes.Current
	}

	skipTags := opts.SkipTags
	if skipTags == nil {
		skipTags = DefaultSkipTags()
	}
	skip := make(map[string]bool, len(skipTags))
	for _, tag := range append(TextOnlyTags(), skipTags...) {
		skip[strings.ToLower(tag)] = true
	}

	maxMatches := opts.MaxMatches
	if maxMatches < 1 {
		maxMatches = pattern.DefaultMaxMatches
	}

	return &Engine{
		classes:      classes,
		skip:         skip,
		maxMatches:   maxMatches,
		matchTimeout: opts.MatchTimeout,
	}
}

// Classes returns the marker class names used by the engine.
func (e *Engine) Classes() Classes {
	return e.classes
}

// Compile compiles source for use with ApplyMatcher, applying the engine's
// match cap and timeout.
func (e *Engine) Compile(source string, opts pattern.Options) (*pattern.Matcher, error) {
	m, err := pattern.Compile(source, opts)
	if err != nil {
		return nil, err
	}
	m.SetLimit(e.maxMatches)
	m.SetTimeout(e.matchTimeout)
	return m, nil
}

// Markers returns every marker element under root, in document order.
// The list is always computed from the tree as it is now.
func (e *Engine) Markers(root *html.Node) []*html.Node {
	return FindAll(root, func(n *html.Node) bool {
		return HasClass(n, e.classes.Highlighted)
	})
}

// Current returns the focused marker under root, or nil.
func (e *Engine) Current(root *html.Node) *html.Node {
	return FindFirst(root, func(n *html.Node) bool {
		return HasClass(n, e.classes.Current)
	})
}

func (e *Engine) skipped(n *html.Node) bool {
	return n.Type == html.ElementNode && e.skip[n.Data]
}
