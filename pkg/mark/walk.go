package mark

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// SkipChildren is returned by a WalkFunc to skip the children of the node
// being visited. It is not returned by Walk.
//
//nolint:errname,revive // Mirrors filepath.SkipDir.
var SkipChildren = errors.New("skip children")

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = errors.New("stop walk")

// WalkFunc is the function signature for Walk callbacks.
// Return SkipChildren to prune the subtree, or any other non-nil error to
// stop the walk.
type WalkFunc func(n *html.Node) error

// Walk performs a pre-order traversal of the tree starting at root.
//
// The children of a node are captured before they are visited, so callbacks
// may replace the node they are given without the walk descending into the
// replacement.
func Walk(root *html.Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for _, child := range children(root) {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(root *html.Node, predicate func(n *html.Node) bool) []*html.Node {
	var result []*html.Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *html.Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *html.Node, predicate func(n *html.Node) bool) *html.Node {
	var found *html.Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(node *html.Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindElement returns the first element with the given tag name.
func FindElement(root *html.Node, tag string) *html.Node {
	return FindFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	})
}

// FindByID returns the first element whose id attribute equals id.
func FindByID(root *html.Node, id string) *html.Node {
	return FindFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	})
}

// TextContent returns the concatenated text of n and all its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(node *html.Node) error {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		return nil
	})
	return sb.String()
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, child)
	}
	return out
}
