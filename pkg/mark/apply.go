package mark

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/regexmark/pkg/pattern"
)

// plannedNode pairs a text node with the partition of its content.
type plannedNode struct {
	node     *html.Node
	segments []Segment
}

// Apply compiles source with opts and marks every match under root.
//
// An empty source is a no-op. A source that does not compile returns a
// *pattern.Error and leaves root untouched. Otherwise the created markers
// are returned in document order; an empty result is not an error.
func (e *Engine) Apply(root *html.Node, source string, opts pattern.Options) ([]*html.Node, error) {
	if source == "" {
		return nil, nil
	}

	m, err := e.Compile(source, opts)
	if err != nil {
		return nil, err
	}

	return e.ApplyMatcher(root, m)
}

// ApplyMatcher marks every match of m under root.
//
// Matching and partitioning for the whole tree complete before the first
// node is rewritten, so a failing match attempt leaves root untouched.
func (e *Engine) ApplyMatcher(root *html.Node, m *pattern.Matcher) ([]*html.Node, error) {
	plan, err := e.plan(root, m)
	if err != nil {
		return nil, err
	}

	var markers []*html.Node
	for _, p := range plan {
		markers = append(markers, e.rewrite(p)...)
	}

	return markers, nil
}

// plan walks root in document order and collects the matches of every
// qualifying text node. Without the global modifier it stops at the first
// text node that has a match.
func (e *Engine) plan(root *html.Node, m *pattern.Matcher) ([]plannedNode, error) {
	global := m.Options().Global

	var plan []plannedNode
	err := Walk(root, func(n *html.Node) error {
		switch n.Type {
		case html.ElementNode:
			if e.skipped(n) {
				return SkipChildren
			}
		case html.TextNode:
			if n.Parent == nil || strings.TrimSpace(n.Data) == "" {
				return nil
			}

			matches, err := m.FindAll(n.Data)
			if err != nil {
				return fmt.Errorf("scan text node: %w", err)
			}
			if len(matches) == 0 {
				return nil
			}

			segments, err := Partition(n.Data, matches)
			if err != nil {
				return err
			}

			plan = append(plan, plannedNode{node: n, segments: segments})
			if !global {
				return errStopWalk
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return nil, err
	}

	return plan, nil
}

// rewrite replaces a planned text node with its partition. The replacement
// nodes are fully built before the original node is detached.
func (e *Engine) rewrite(p plannedNode) []*html.Node {
	replacement := make([]*html.Node, 0, len(p.segments))
	var markers []*html.Node
	for _, seg := range p.segments {
		if !seg.Matched {
			replacement = append(replacement, &html.Node{Type: html.TextNode, Data: seg.Text})
			continue
		}

		marker := e.newMarker(seg.Text)
		replacement = append(replacement, marker)
		markers = append(markers, marker)
	}

	parent := p.node.Parent
	for _, n := range replacement {
		parent.InsertBefore(n, p.node)
	}
	parent.RemoveChild(p.node)

	return markers
}

func (e *Engine) newMarker(text string) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Span.String(),
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: e.classes.Highlighted}},
	}
	if text != "" {
		span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return span
}
