package mark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/regexmark/pkg/mark"
)

func TestStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cursor int
		count  int
		dir    mark.Direction
		want   int
	}{
		{name: "fresh forward lands on first", cursor: mark.NoCursor, count: 3, dir: mark.Forward, want: 0},
		{name: "fresh backward lands on last", cursor: mark.NoCursor, count: 3, dir: mark.Backward, want: 2},
		{name: "forward", cursor: 0, count: 3, dir: mark.Forward, want: 1},
		{name: "backward", cursor: 2, count: 3, dir: mark.Backward, want: 1},
		{name: "forward wraps", cursor: 2, count: 3, dir: mark.Forward, want: 0},
		{name: "backward wraps", cursor: 0, count: 3, dir: mark.Backward, want: 2},
		{name: "stale cursor past end", cursor: 9, count: 3, dir: mark.Forward, want: 0},
		{name: "single marker", cursor: 0, count: 1, dir: mark.Forward, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mark.Step(tt.cursor, tt.count, tt.dir))
		})
	}
}

func TestAdvance_Sequence(t *testing.T) {
	t.Parallel()

	_, body := parseBody(t, "<p>cat cats catalog</p>")
	engine := mark.NewEngine(mark.Options{})

	markers, err := engine.Apply(body, "cat", mustFlags(t, "g"))
	require.NoError(t, err)
	require.Len(t, markers, 3)

	view := &recordingView{}
	steps := []struct {
		dir  mark.Direction
		want int
	}{
		{mark.Forward, 0},
		{mark.Forward, 1},
		{mark.Backward, 0},
		{mark.Backward, 2},
		{mark.Forward, 0},
	}

	cursor := mark.NoCursor
	for i, step := range steps {
		cursor, err = engine.Advance(body, cursor, step.dir, view)
		require.NoError(t, err)
		assert.Equal(t, step.want, cursor, "step %d", i)

		assert.Same(t, markers[cursor], engine.Current(body))
		require.Len(t, view.calls, i+1)
		assert.Same(t, markers[cursor], view.calls[i].node)
		assert.Equal(t, mark.FocusScroll(), view.calls[i].opts)
	}
}

func TestAdvance_NoMarkers(t *testing.T) {
	t.Parallel()

	_, body := parseBody(t, "<p>nothing</p>")
	engine := mark.NewEngine(mark.Options{})
	view := &recordingView{}

	cursor, err := engine.Advance(body, 4, mark.Forward, view)

	require.ErrorIs(t, err, mark.ErrNoMatches)
	assert.Equal(t, 4, cursor)
	assert.Empty(t, view.calls)
}

func TestAdvance_RemovesStrayCurrent(t *testing.T) {
	t.Parallel()

	_, body := parseBody(t, "<p>x y x</p>")
	engine := mark.NewEngine(mark.Options{})

	markers, err := engine.Apply(body, "x", mustFlags(t, "g"))
	require.NoError(t, err)
	require.Len(t, markers, 2)

	// Something else on the page also claims to be current.
	stray := mark.FindElement(body, "p")
	mark.AddClass(stray, mark.DefaultCurrentClass)
	mark.AddClass(markers[1], mark.DefaultCurrentClass)

	cursor, err := engine.Advance(body, mark.NoCursor, mark.Forward, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cursor)

	current := mark.FindAll(body, func(n *html.Node) bool {
		return mark.HasClass(n, mark.DefaultCurrentClass)
	})
	require.Len(t, current, 1)
	assert.Same(t, markers[0], current[0])
}

func TestAdvance_RecomputesMarkers(t *testing.T) {
	t.Parallel()

	_, body := parseBody(t, "<p>x</p><p>x</p><p>x</p>")
	engine := mark.NewEngine(mark.Options{})

	markers, err := engine.Apply(body, "x", mustFlags(t, "g"))
	require.NoError(t, err)
	require.Len(t, markers, 3)

	// Drop the last marker behind the engine's back.
	last := markers[2]
	last.Parent.RemoveChild(last)

	cursor, err := engine.Advance(body, 1, mark.Forward, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cursor)
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"next", "forward", "NEXT"} {
		dir, err := mark.ParseDirection(s)
		require.NoError(t, err)
		assert.Equal(t, mark.Forward, dir)
	}
	for _, s := range []string{"prev", "previous", "backward"} {
		dir, err := mark.ParseDirection(s)
		require.NoError(t, err)
		assert.Equal(t, mark.Backward, dir)
	}

	_, err := mark.ParseDirection("sideways")
	require.Error(t, err)

	assert.Equal(t, "forward", mark.Forward.String())
	assert.Equal(t, "backward", mark.Backward.String())
}
