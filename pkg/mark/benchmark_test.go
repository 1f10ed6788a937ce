package mark_test

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/yaklabco/regexmark/pkg/mark"
	"github.com/yaklabco/regexmark/pkg/pattern"
)

// benchPage is a body with many paragraphs of mixed text and inline markup.
func benchPage() string {
	var sb strings.Builder
	sb.WriteString("<html><head></head><body>")
	for range 200 {
		sb.WriteString("<p>The test suite tests <em>testing</em> of tested code; <a href=#>attest</a> to it.</p>")
		sb.WriteString("<script>var test = 1;</script>")
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func parseBench(b *testing.B, src string) *html.Node {
	b.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		b.Fatal(err)
	}
	return mark.FindElement(doc, "body")
}

// Benchmark marking a page from scratch.
func BenchmarkApply(b *testing.B) {
	src := benchPage()
	engine := mark.NewEngine(mark.Options{})
	opts := pattern.Options{Global: true, Multiline: true}

	b.ResetTimer()
	for range b.N {
		b.StopTimer()
		body := parseBench(b, src)
		b.StartTimer()

		markers, err := engine.Apply(body, "test\\w*", opts)
		if err != nil || len(markers) == 0 {
			b.Fail()
		}
	}
}

// Benchmark the clear that precedes every highlight.
func BenchmarkApplyClear(b *testing.B) {
	src := benchPage()
	engine := mark.NewEngine(mark.Options{})
	opts := pattern.Options{Global: true}
	body := parseBench(b, src)

	b.ResetTimer()
	for range b.N {
		if _, err := engine.Apply(body, "test", opts); err != nil {
			b.Fatal(err)
		}
		if engine.Clear(body) == 0 {
			b.Fail()
		}
	}
}

// Benchmark one navigation step, which recomputes the marker list.
func BenchmarkAdvance(b *testing.B) {
	engine := mark.NewEngine(mark.Options{})
	body := parseBench(b, benchPage())
	markers, err := engine.Apply(body, "test", pattern.Options{Global: true})
	if err != nil || len(markers) == 0 {
		b.Fatal("no markers")
	}

	cursor := mark.NoCursor
	b.ResetTimer()
	for range b.N {
		cursor, err = engine.Advance(body, cursor, mark.Forward, nil)
		if err != nil {
			b.Fatal(err)
		}
	}
}
