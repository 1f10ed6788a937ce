package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaklabco/regexmark/pkg/pattern"
)

func TestCompile_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := pattern.Compile("(", pattern.DefaultOptions())
	require.Error(t, err)
	assert.True(t, pattern.IsPatternError(err))

	var pe *pattern.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "(", pe.Pattern)
	assert.Equal(t, "gm", pe.Flags)
	assert.Contains(t, pe.Error(), "/(/gm")
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		flags   string
		text    string
		want    []pattern.Match
	}{
		{
			name:    "global literal",
			pattern: "cat",
			flags:   "g",
			text:    "cat cats catalog",
			want: []pattern.Match{
				{Index: 0, Length: 3, Text: "cat"},
				{Index: 4, Length: 3, Text: "cat"},
				{Index: 9, Length: 3, Text: "cat"},
			},
		},
		{
			name:    "non-global takes first",
			pattern: "cat",
			flags:   "",
			text:    "cat cats catalog",
			want:    []pattern.Match{{Index: 0, Length: 3, Text: "cat"}},
		},
		{
			name:    "case insensitive",
			pattern: "cat",
			flags:   "gi",
			text:    "Cat CAT",
			want: []pattern.Match{
				{Index: 0, Length: 3, Text: "Cat"},
				{Index: 4, Length: 3, Text: "CAT"},
			},
		},
		{
			name:    "case sensitive misses",
			pattern: "cat",
			flags:   "g",
			text:    "Cat CAT",
			want:    nil,
		},
		{
			name:    "unicode code point escape",
			pattern: `\u{1F600}`,
			flags:   "gu",
			text:    "a😀b😀",
			want: []pattern.Match{
				{Index: 1, Length: 1, Text: "😀"},
				{Index: 3, Length: 1, Text: "😀"},
			},
		},
		{
			name:    "code point escape is literal without u",
			pattern: `\u{1F600}`,
			flags:   "g",
			text:    "😀 u{1F600}",
			want:    []pattern.Match{{Index: 2, Length: 8, Text: "u{1F600}"}},
		},
		{
			name:    "multiline anchors",
			pattern: "^b",
			flags:   "gm",
			text:    "a\nb\nb",
			want: []pattern.Match{
				{Index: 2, Length: 1, Text: "b"},
				{Index: 4, Length: 1, Text: "b"},
			},
		},
		{
			name:    "anchor without multiline",
			pattern: "^b",
			flags:   "g",
			text:    "a\nb",
			want:    nil,
		},
		{
			name:    "greedy default pattern",
			pattern: "test.*",
			flags:   "gm",
			text:    "a test here\ntest two",
			want: []pattern.Match{
				{Index: 2, Length: 9, Text: "test here"},
				{Index: 12, Length: 8, Text: "test two"},
			},
		},
		{
			name:    "indices count characters",
			pattern: "b",
			flags:   "g",
			text:    "ééb",
			want:    []pattern.Match{{Index: 2, Length: 1, Text: "b"}},
		},
		{
			name:    "empty matches advance",
			pattern: "x*",
			flags:   "g",
			text:    "ab",
			want: []pattern.Match{
				{Index: 0, Length: 0, Text: ""},
				{Index: 1, Length: 0, Text: ""},
				{Index: 2, Length: 0, Text: ""},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts, err := pattern.ParseFlags(tc.flags)
			require.NoError(t, err)

			m, err := pattern.Compile(tc.pattern, opts)
			require.NoError(t, err)

			got, err := m.FindAll(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFindAll_Limit(t *testing.T) {
	t.Parallel()

	m := pattern.MustCompile("(a)?", pattern.Options{Global: true})
	assert.Equal(t, pattern.DefaultMaxMatches, m.Limit())

	text := make([]byte, 500)
	for i := range text {
		text[i] = 'b'
	}

	got, err := m.FindAll(string(text))
	require.NoError(t, err)
	assert.Len(t, got, pattern.DefaultMaxMatches)

	m.SetLimit(3)
	got, err = m.FindAll(string(text))
	require.NoError(t, err)
	assert.Len(t, got, 3)

	m.SetLimit(0)
	assert.Equal(t, pattern.DefaultMaxMatches, m.Limit())
}

func TestFindAll_OrderedAndDisjoint(t *testing.T) {
	t.Parallel()

	pats := []string{"a+", "[ab]", "b*", "\\w+", "(ab|a)", "x?"}

	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[abx ]{0,40}`).Draw(t, "text")
		src := rapid.SampledFrom(pats).Draw(t, "pattern")

		m := pattern.MustCompile(src, pattern.Options{Global: true})
		got, err := m.FindAll(text)
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}

		runes := []rune(text)
		for i, match := range got {
			if i > 0 {
				prev := got[i-1]
				if match.Index < prev.End() {
					t.Fatalf("match %d at %d overlaps previous end %d", i, match.Index, prev.End())
				}
				if match.Index <= prev.Index {
					t.Fatalf("match %d at %d does not advance past %d", i, match.Index, prev.Index)
				}
			}
			if match.End() > len(runes) {
				t.Fatalf("match %d ends past text", i)
			}
			if string(runes[match.Index:match.End()]) != match.Text {
				t.Fatalf("match %d text %q does not equal slice", i, match.Text)
			}
		}
	})
}
