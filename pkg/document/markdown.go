package document

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown flavors accepted by NewRenderer.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Renderer turns Markdown into a standalone HTML page.
type Renderer struct {
	flavor string
	md     goldmark.Markdown
}

// NewRenderer creates a Renderer for flavor. Unknown flavors fall back to
// CommonMark.
func NewRenderer(flavor string) *Renderer {
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}

	opts := []goldmark.Option{
		// Raw HTML in the source stays in the page.
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	}
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return &Renderer{flavor: flavor, md: goldmark.New(opts...)}
}

// Flavor returns the configured flavor.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render converts src to a complete HTML document titled title.
func (r *Renderer) Render(ctx context.Context, title string, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(title))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return page.Bytes(), nil
}
