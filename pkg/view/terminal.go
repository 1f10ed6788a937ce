// Package view presents the focused marker of a page in a terminal.
//
// A Terminal stands in for the browser viewport: scrolling a marker into
// view records it and cuts a one-line excerpt of its surrounding block,
// placed inside the terminal width the way the scroll options ask.
package view

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/term"

	"github.com/yaklabco/regexmark/pkg/mark"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Ellipsis marks text cut from either side of an excerpt.
const Ellipsis = "…"

// Excerpt is the line shown for a focused marker.
type Excerpt struct {
	// Before and After are the visible text around the match, including
	// Ellipsis where text was cut.
	Before string `json:"before"`
	Match  string `json:"match"`
	After  string `json:"after"`

	// Block is the tag name of the element the excerpt was cut from.
	Block string `json:"block"`

	// Offset is the match position, in characters, within the block text
	// after whitespace is collapsed.
	Offset int `json:"offset"`

	// Options are the scroll options the excerpt was produced for.
	Options mark.ScrollOptions `json:"-"`
}

// String returns the excerpt as plain text.
func (e Excerpt) String() string {
	return e.Before + e.Match + e.After
}

// Recorder is a mark.View that remembers its last focus.
type Recorder interface {
	mark.View

	// Last returns the excerpt of the most recent ScrollIntoView call.
	Last() (Excerpt, bool)
}

// Terminal is a Recorder sized to a terminal.
type Terminal struct {
	width int
	last  *Excerpt
}

var _ Recorder = (*Terminal)(nil)

// NewTerminal creates a Terminal width columns wide. A width below one
// means DefaultWidth.
func NewTerminal(width int) *Terminal {
	if width < 1 {
		width = DefaultWidth
	}
	return &Terminal{width: width}
}

// NewTerminalFor creates a Terminal sized to w when w is a terminal.
func NewTerminalFor(w io.Writer) *Terminal {
	return NewTerminal(Width(w))
}

// Width returns the column count of w, or DefaultWidth when w is not a
// terminal.
func Width(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return DefaultWidth
}

// Width returns the configured column count.
func (t *Terminal) Width() int {
	return t.width
}

// ScrollIntoView implements mark.View.
func (t *Terminal) ScrollIntoView(n *html.Node, opts mark.ScrollOptions) {
	block := enclosingBlock(n)
	before, match, after := splitAround(block, n)

	excerpt := fit(before, match, after, t.width, opts.Inline)
	excerpt.Block = block.Data
	excerpt.Offset = len(before)
	excerpt.Options = opts

	t.last = &excerpt
}

// Last implements Recorder.
func (t *Terminal) Last() (Excerpt, bool) {
	if t.last == nil {
		return Excerpt{}, false
	}
	return *t.last, true
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "dd": true, "div": true, "dt": true, "figcaption": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "li": true, "main": true,
	"nav": true, "p": true, "pre": true, "section": true, "td": true,
	"th": true,
}

func enclosingBlock(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && blockTags[p.Data] {
			return p
		}
	}
	top := n
	for top.Parent != nil {
		top = top.Parent
	}
	return top
}

// splitAround returns the text of block before target, inside it, and
// after it, with whitespace runs collapsed to single spaces.
func splitAround(block, target *html.Node) ([]rune, []rune, []rune) {
	var before, inside, after strings.Builder
	dst := &before

	//nolint:errcheck,revive // the callback never fails
	mark.Walk(block, func(n *html.Node) error {
		if n == target {
			inside.WriteString(mark.TextContent(n))
			dst = &after
			return mark.SkipChildren
		}
		if n.Type == html.TextNode {
			dst.WriteString(n.Data)
		}
		return nil
	})

	return collapse(before.String()), collapse(inside.String()), collapse(after.String())
}

func collapse(s string) []rune {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				out = append(out, ' ')
			}
			space = true
			continue
		}
		space = false
		out = append(out, r)
	}
	return out
}

// fit cuts before and after so the excerpt fits width, placing the match
// according to align.
func fit(before, match, after []rune, width int, align mark.ScrollAlign) Excerpt {
	if len(match) >= width {
		return Excerpt{Match: string(match[:width-1]) + Ellipsis}
	}

	room := width - len(match)
	var left int
	switch align {
	case mark.AlignStart:
		left = 0
	case mark.AlignEnd:
		left = room
	case mark.AlignNearest:
		left = min(len(before), room)
	default:
		left = room / 2
	}

	// Give unused room on one side to the other.
	if len(before) < left {
		left = len(before)
	}
	right := room - left
	if len(after) < right {
		right = len(after)
		left = min(len(before), room-right)
	}

	return Excerpt{
		Before: cutLeft(before, left),
		Match:  string(match),
		After:  cutRight(after, right),
	}
}

func cutLeft(r []rune, n int) string {
	if len(r) <= n {
		return string(r)
	}
	if n == 0 {
		return ""
	}
	return Ellipsis + string(r[len(r)-n+1:])
}

func cutRight(r []rune, n int) string {
	if len(r) <= n {
		return string(r)
	}
	if n == 0 {
		return ""
	}
	return string(r[:n-1]) + Ellipsis
}
