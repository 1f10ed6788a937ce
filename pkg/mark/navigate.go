package mark

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// NoCursor is the cursor value meaning no marker has been focused yet.
const NoCursor = -1

// ErrNoMatches is returned by Advance when the tree holds no markers.
var ErrNoMatches = errors.New("no matches")

// Direction selects which neighbour Advance moves to.
type Direction int

const (
	// Forward moves to the next marker in document order.
	Forward Direction = iota

	// Backward moves to the previous marker in document order.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "forward"/"next" or "backward"/"prev".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "forward", "next":
		return Forward, nil
	case "backward", "prev", "previous":
		return Backward, nil
	default:
		return Forward, fmt.Errorf("unknown direction %q: must be next or prev", s)
	}
}

// ScrollBehavior selects how a view moves to a target.
type ScrollBehavior string

// Scroll behaviors.
const (
	ScrollAuto   ScrollBehavior = "auto"
	ScrollSmooth ScrollBehavior = "smooth"
)

// ScrollAlign selects where a target lands inside the view along one axis.
type ScrollAlign string

// Scroll alignments.
const (
	AlignStart   ScrollAlign = "start"
	AlignCenter  ScrollAlign = "center"
	AlignEnd     ScrollAlign = "end"
	AlignNearest ScrollAlign = "nearest"
)

// ScrollOptions describes how a view should bring a node into focus.
type ScrollOptions struct {
	Behavior ScrollBehavior
	Block    ScrollAlign
	Inline   ScrollAlign
}

// FocusScroll is the request Advance issues for the newly focused marker:
// centered on both axes, animated where the view can animate.
func FocusScroll() ScrollOptions {
	return ScrollOptions{
		Behavior: ScrollSmooth,
		Block:    AlignCenter,
		Inline:   AlignCenter,
	}
}

// View is whatever presents the tree to the user.
type View interface {
	// ScrollIntoView brings n into the visible area.
	ScrollIntoView(n *html.Node, opts ScrollOptions)
}

// Step computes the cursor after moving one marker in dir from cursor, with
// wraparound over count markers. A cursor of NoCursor moves to the first
// marker going forward and the last going backward. count must be positive.
func Step(cursor, count int, dir Direction) int {
	next := cursor + 1
	if dir == Backward {
		next = cursor - 1
	}

	if next < 0 {
		next = count - 1
	} else if next >= count {
		next = 0
	}
	return next
}

// Advance moves the focus one marker in dir from cursor and returns the new
// cursor.
//
// The marker list is recomputed from root on every call. With no markers,
// ErrNoMatches is returned and no class is touched. Otherwise the current
// class is removed from every element holding it, assigned to the marker at
// the new cursor, and view (if non-nil) is asked to scroll it into focus.
func (e *Engine) Advance(root *html.Node, cursor int, dir Direction, view View) (int, error) {
	markers := e.Markers(root)
	if len(markers) == 0 {
		return cursor, ErrNoMatches
	}

	next := Step(cursor, len(markers), dir)

	for _, n := range FindAll(root, func(n *html.Node) bool {
		return HasClass(n, e.classes.Current)
	}) {
		RemoveClass(n, e.classes.Current)
	}

	target := markers[next]
	AddClass(target, e.classes.Current)

	if view != nil {
		view.ScrollIntoView(target, FocusScroll())
	}

	return next, nil
}
