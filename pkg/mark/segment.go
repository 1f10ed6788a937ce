package mark

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/regexmark/pkg/pattern"
)

// Segment is one span of a partitioned text node.
type Segment struct {
	// Text is the span content.
	Text string

	// Matched is true if the span is a pattern match.
	Matched bool
}

// RangeError describes a match that does not fit the text it was found in.
type RangeError struct {
	Match   pattern.Match
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid match [%d:%d]: %s", e.Match.Index, e.Match.End(), e.Message)
}

// OverlapError describes two matches that share characters.
type OverlapError struct {
	First  pattern.Match
	Second pattern.Match
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping matches: [%d:%d] and [%d:%d]",
		e.First.Index, e.First.End(),
		e.Second.Index, e.Second.End())
}

// ValidateMatches checks that matches are in range for a text of textLen
// characters, sorted by index, and non-overlapping.
func ValidateMatches(matches []pattern.Match, textLen int) error {
	for i, m := range matches {
		if m.Index < 0 {
			return &RangeError{Match: m, Message: "index is negative"}
		}
		if m.Length < 0 {
			return &RangeError{Match: m, Message: "length is negative"}
		}
		if m.End() > textLen {
			return &RangeError{
				Match:   m,
				Message: fmt.Sprintf("end %d exceeds text length %d", m.End(), textLen),
			}
		}
		if i > 0 && m.Index < matches[i-1].End() {
			return &OverlapError{First: matches[i-1], Second: m}
		}
	}
	return nil
}

// Partition splits text into alternating plain and matched segments, in
// order. Empty plain spans are omitted; matched spans are always kept, so the
// result holds exactly one matched segment per match. Concatenating the Text
// of every segment yields the original text byte for byte, including any
// invalid UTF-8, which counts one character per byte.
func Partition(text string, matches []pattern.Match) ([]Segment, error) {
	offsets := charOffsets(text)
	if err := ValidateMatches(matches, len(offsets)-1); err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, 2*len(matches)+1)

	cursor := 0
	for _, m := range matches {
		start, end := offsets[m.Index], offsets[m.End()]
		if start > cursor {
			segments = append(segments, Segment{Text: text[cursor:start]})
		}
		segments = append(segments, Segment{Text: text[start:end], Matched: true})
		cursor = end
	}
	if cursor < len(text) {
		segments = append(segments, Segment{Text: text[cursor:]})
	}

	return segments, nil
}

// charOffsets returns the byte offset of every character in text followed by
// len(text). Characters are counted the way a []rune conversion counts them.
func charOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := 0; i < len(text); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return append(offsets, len(text))
}
