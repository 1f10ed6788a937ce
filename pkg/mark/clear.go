package mark

import "golang.org/x/net/html"

// Clear replaces every marker under root with a plain text node holding the
// marker's text content and returns the number of markers removed.
//
// Markers are unwound in reverse document order so a marker nested inside
// another is flattened first. Adjacent text nodes are left as they are.
// Calling Clear on a tree without markers does nothing.
func (e *Engine) Clear(root *html.Node) int {
	markers := e.Markers(root)

	removed := 0
	for i := len(markers) - 1; i >= 0; i-- {
		marker := markers[i]
		parent := marker.Parent
		if parent == nil {
			continue
		}

		text := &html.Node{Type: html.TextNode, Data: TextContent(marker)}
		parent.InsertBefore(text, marker)
		parent.RemoveChild(marker)
		removed++
	}

	return removed
}
