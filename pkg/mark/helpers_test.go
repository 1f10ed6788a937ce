package mark_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/regexmark/pkg/mark"
)

// parseBody parses src as a full HTML document and returns the document and
// its body element.
func parseBody(t *testing.T, src string) (*html.Node, *html.Node) {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)

	body := mark.FindElement(doc, "body")
	require.NotNil(t, body)

	return doc, body
}

// inner renders the children of n.
func inner(t *testing.T, n *html.Node) string {
	t.Helper()

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&sb, c))
	}
	return sb.String()
}

// span renders a marker as Apply writes it.
func span(text string) string {
	return `<span class="regexfindhighlighted">` + text + `</span>`
}

type scrollCall struct {
	node *html.Node
	opts mark.ScrollOptions
}

type recordingView struct {
	calls []scrollCall
}

func (v *recordingView) ScrollIntoView(n *html.Node, opts mark.ScrollOptions) {
	v.calls = append(v.calls, scrollCall{node: n, opts: opts})
}
