package view_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/regexmark/pkg/mark"
	"github.com/yaklabco/regexmark/pkg/pattern"
	"github.com/yaklabco/regexmark/pkg/view"
)

// focusFirst marks src for "cat" and focuses the first marker with opts.
func focusFirst(t *testing.T, src string, width int, opts mark.ScrollOptions) view.Excerpt {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	body := mark.FindElement(doc, "body")

	engine := mark.NewEngine(mark.Options{})
	markers, err := engine.Apply(body, "cat", pattern.Options{Global: true})
	require.NoError(t, err)
	require.NotEmpty(t, markers)

	term := view.NewTerminal(width)
	term.ScrollIntoView(markers[0], opts)

	excerpt, ok := term.Last()
	require.True(t, ok)
	return excerpt
}

func TestTerminal_Centered(t *testing.T) {
	t.Parallel()

	excerpt := focusFirst(t, "<p>aaaa bbbb cat cccc dddd eeee ffff</p>", 20, mark.FocusScroll())

	assert.Equal(t, "…a bbbb ", excerpt.Before)
	assert.Equal(t, "cat", excerpt.Match)
	assert.Equal(t, " cccc dd…", excerpt.After)
	assert.Equal(t, "p", excerpt.Block)
	assert.Equal(t, 10, excerpt.Offset)
	assert.Len(t, []rune(excerpt.String()), 20)
}

func TestTerminal_ShortBlockFitsWhole(t *testing.T) {
	t.Parallel()

	excerpt := focusFirst(t, "<div><p>other</p><p>one <em>cat</em>\n\n  two</p></div>", 80, mark.FocusScroll())

	assert.Equal(t, "one cat two", excerpt.String())
	assert.Equal(t, "p", excerpt.Block)
	assert.Equal(t, mark.FocusScroll(), excerpt.Options)
}

func TestTerminal_InlineAlignment(t *testing.T) {
	t.Parallel()

	src := "<p>aaaa bbbb cat cccc dddd eeee ffff</p>"

	start := focusFirst(t, src, 20, mark.ScrollOptions{Inline: mark.AlignStart})
	assert.Empty(t, start.Before)
	assert.Equal(t, " cccc dddd eeee …", start.After)

	end := focusFirst(t, src, 20, mark.ScrollOptions{Inline: mark.AlignEnd})
	assert.Equal(t, "aaaa bbbb ", end.Before)
	assert.Equal(t, " cccc …", end.After)
}

func TestTerminal_LongMatch(t *testing.T) {
	t.Parallel()

	excerpt := focusFirst(t, "<p>"+strings.Repeat("cat", 10)+"</p>", 5, mark.FocusScroll())
	assert.Equal(t, "cat", excerpt.Match)

	doc, err := html.Parse(strings.NewReader("<p>x " + strings.Repeat("y", 30) + " x</p>"))
	require.NoError(t, err)
	markers, err := mark.NewEngine(mark.Options{}).Apply(mark.FindElement(doc, "body"), "y+", pattern.Options{Global: true})
	require.NoError(t, err)

	term := view.NewTerminal(10)
	term.ScrollIntoView(markers[0], mark.FocusScroll())
	got, _ := term.Last()
	assert.Equal(t, "yyyyyyyyy…", got.Match)
}

func TestTerminal_Defaults(t *testing.T) {
	t.Parallel()

	term := view.NewTerminal(0)
	assert.Equal(t, view.DefaultWidth, term.Width())

	_, ok := term.Last()
	assert.False(t, ok)

	assert.Equal(t, view.DefaultWidth, view.Width(&bytes.Buffer{}))
	assert.Equal(t, view.DefaultWidth, view.NewTerminalFor(&bytes.Buffer{}).Width())
}
