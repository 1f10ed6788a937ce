package pretty

import (
	"fmt"

	"github.com/yaklabco/regexmark/pkg/view"
)

// FormatExcerpt renders an excerpt with its match in the Current style.
func (s *Styles) FormatExcerpt(e view.Excerpt) string {
	return s.Dim.Render(e.Before) + s.Current.Render(e.Match) + s.Dim.Render(e.After)
}

// FormatCounter renders a one-based "n/total" position for cursor.
func (s *Styles) FormatCounter(cursor, total int) string {
	return s.Counter.Render(fmt.Sprintf("%d/%d", cursor+1, total))
}

// FormatField renders a "label: value" pair.
func (s *Styles) FormatField(label, value string) string {
	return s.Label.Render(label+":") + " " + s.Value.Render(value)
}
