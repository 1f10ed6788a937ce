package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind is the source format of a document.
type Kind int

const (
	// KindHTML is an HTML page, rewritten in place.
	KindHTML Kind = iota

	// KindMarkdown is a Markdown file rendered to an HTML page.
	KindMarkdown
)

func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindMarkdown:
		return "markdown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Errors returned by Detect and Load.
var (
	// ErrBinary is returned for content that is not text.
	ErrBinary = errors.New("binary content")

	// ErrUnsupported is returned for text that is neither HTML nor Markdown.
	ErrUnsupported = errors.New("unsupported document type")

	// ErrEmpty is returned when the page has no text to search.
	ErrEmpty = errors.New("document has no text")
)

var extensionKinds = map[string]Kind{
	".html":     KindHTML,
	".htm":      KindHTML,
	".xhtml":    KindHTML,
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
	".mdown":    KindMarkdown,
	".mkd":      KindMarkdown,
}

// Detect classifies content read from path. The extension decides when it
// is a known one; otherwise go-enry guesses from the file name and content,
// and a final sniff looks for HTML structure.
func Detect(path string, content []byte) (Kind, error) {
	if enry.IsBinary(content) {
		return 0, fmt.Errorf("%w: %s", ErrBinary, path)
	}

	if kind, ok := extensionKinds[strings.ToLower(filepath.Ext(path))]; ok {
		return kind, nil
	}

	switch enry.GetLanguage(filepath.Base(path), content) {
	case "HTML":
		return KindHTML, nil
	case "Markdown":
		return KindMarkdown, nil
	}

	if looksLikeHTML(content) {
		return KindHTML, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupported, path)
}

func looksLikeHTML(content []byte) bool {
	lower := bytes.ToLower(bytes.TrimSpace(content))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}
