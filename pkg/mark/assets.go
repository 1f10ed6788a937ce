package mark

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ids of the style elements written by InjectStyles.
const (
	HighlightStyleID = "regexFindHighlightStyle"
	AnimationStyleID = "regexCurrAnimation"
	CurrentStyleID   = "regexFindCurrHighlightStyle"
)

// AnimationName is the keyframes rule played when a marker becomes current.
const AnimationName = "regexfindhere"

// StyleIDs lists the ids of every style element InjectStyles manages.
func StyleIDs() []string {
	return []string{HighlightStyleID, AnimationStyleID, CurrentStyleID}
}

// Stylesheet returns the CSS for each managed style element, keyed by id.
func Stylesheet(classes Classes) map[string]string {
	return map[string]string{
		HighlightStyleID: fmt.Sprintf(".%s { background-color: yellow; }", classes.Highlighted),
		AnimationStyleID: "@keyframes " + AnimationName + " { " +
			"30% { transform: scale(1.2); } " +
			"40%, 60% { transform: rotate(-3deg) scale(1.2); } " +
			"50% { transform: rotate(3deg) scale(1.2); } " +
			"70% { transform: rotate(0deg) scale(1.2); } " +
			"100% { transform: scale(1); } }",
		CurrentStyleID: fmt.Sprintf(".%s { display: inline-block; background-color: #FF8080; "+
			"font-size: x-large; padding: 2px 4px; border-radius: 3px; "+
			"animation: %s 0.5s ease-in-out; }", classes.Current, AnimationName),
	}
}

// InjectStyles adds the marker style elements to the head of doc. Elements
// that already exist are rewritten in place, so repeated calls leave exactly
// one element per id. It returns the number of elements created.
func InjectStyles(doc *html.Node, classes Classes) int {
	head := ensureHead(doc)
	if head == nil {
		return 0
	}

	css := Stylesheet(classes)
	created := 0
	for _, id := range StyleIDs() {
		if existing := FindByID(doc, id); existing != nil {
			setText(existing, css[id])
			continue
		}

		style := &html.Node{
			Type:     html.ElementNode,
			Data:     atom.Style.String(),
			DataAtom: atom.Style,
			Attr:     []html.Attribute{{Key: "id", Val: id}},
		}
		setText(style, css[id])
		head.AppendChild(style)
		created++
	}

	return created
}

// RemoveStyles deletes the style elements written by InjectStyles and
// returns how many were found.
func RemoveStyles(doc *html.Node) int {
	removed := 0
	for _, id := range StyleIDs() {
		n := FindByID(doc, id)
		if n == nil || n.Parent == nil {
			continue
		}
		n.Parent.RemoveChild(n)
		removed++
	}
	return removed
}

// ensureHead returns the head element of doc, creating it under the html
// element if the tree was built without one.
func ensureHead(doc *html.Node) *html.Node {
	if head := FindElement(doc, atom.Head.String()); head != nil {
		return head
	}

	root := FindElement(doc, atom.Html.String())
	if root == nil {
		return nil
	}

	head := &html.Node{Type: html.ElementNode, Data: atom.Head.String(), DataAtom: atom.Head}
	root.InsertBefore(head, root.FirstChild)
	return head
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
