// Package document loads the page regexmark operates on and writes it back.
//
// HTML files are rewritten in place. Markdown files are rendered to a
// sibling HTML page on first use; later runs load that page so the markers
// written by earlier runs are still there. The Markdown source is never
// written.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/regexmark/pkg/fsutil"
	"github.com/yaklabco/regexmark/pkg/mark"
)

// Options configures Load.
type Options struct {
	// Flavor is the Markdown flavor, FlavorCommonMark or FlavorGFM.
	Flavor string

	// Output overrides where the page is written. Empty means the source
	// file for HTML and the sibling .html file for Markdown. An existing
	// output page newer than the source is loaded in place of the source.
	Output string

	// Backups controls the backup taken before the first write.
	Backups fsutil.BackupConfig
}

// Document is a loaded page.
type Document struct {
	// Path is the file the user named.
	Path string

	// OutputPath is where Save writes the page.
	OutputPath string

	// Kind is the source format of Path.
	Kind Kind

	root    *html.Node
	backups fsutil.BackupConfig

	// snapshot describes OutputPath as it was read, or nil if the page was
	// generated and OutputPath has not been read.
	snapshot *fsutil.FileInfo
}

// Load reads path and parses it into a page.
func Load(ctx context.Context, path string, opts Options) (*Document, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	kind, err := Detect(path, content)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:       path,
		OutputPath: opts.Output,
		Kind:       kind,
		backups:    opts.Backups,
	}

	if doc.OutputPath == "" {
		doc.OutputPath = path
		if kind == KindMarkdown {
			doc.OutputPath = SiblingHTML(path)
		}
	}

	if doc.OutputPath == path {
		if kind == KindMarkdown {
			return nil, fmt.Errorf("%w: refusing to overwrite markdown source %s", ErrUnsupported, path)
		}
		doc.snapshot = info
	} else {
		content, err = doc.outputPage(ctx, content, info, opts.Flavor)
		if err != nil {
			return nil, err
		}
	}

	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.root = root

	if strings.TrimSpace(mark.TextContent(doc.Body())) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	return doc, nil
}

// outputPage returns the page for a source written elsewhere: the existing
// output page when it is at least as new as the source, otherwise the source
// itself, rendered first if it is Markdown.
func (d *Document) outputPage(ctx context.Context, src []byte, srcInfo *fsutil.FileInfo, flavor string) ([]byte, error) {
	page, pageInfo, err := fsutil.ReadFile(ctx, d.OutputPath)
	switch {
	case err == nil && !pageInfo.ModTime.Before(srcInfo.ModTime):
		d.snapshot = pageInfo
		return page, nil
	case err == nil:
		d.snapshot = pageInfo
	case !errors.Is(err, fsutil.ErrNotFound):
		return nil, err
	}

	if d.Kind != KindMarkdown {
		return src, nil
	}

	title := strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path))
	return NewRenderer(flavor).Render(ctx, title, src)
}

// SiblingHTML returns path with its extension replaced by .html.
func SiblingHTML(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element, the root the engine scans.
func (d *Document) Body() *html.Node {
	return mark.FindElement(d.root, atom.Body.String())
}

// Text returns the text content of the body.
func (d *Document) Text() string {
	return mark.TextContent(d.Body())
}

// Render serializes the page.
func (d *Document) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return nil, fmt.Errorf("render %s: %w", d.OutputPath, err)
	}
	return buf.Bytes(), nil
}

// Save writes the page to OutputPath if its content changed, and reports
// whether it wrote. It fails with fsutil.ErrModified if OutputPath changed
// on disk since it was read.
func (d *Document) Save(ctx context.Context) (bool, error) {
	content, err := d.Render()
	if err != nil {
		return false, err
	}

	mode := fsutil.DefaultFileMode
	if d.snapshot != nil {
		modified, err := fsutil.CheckModified(ctx, d.snapshot)
		if err != nil {
			return false, err
		}
		if modified {
			return false, fmt.Errorf("%w: %s", fsutil.ErrModified, d.OutputPath)
		}
		mode = d.snapshot.Mode

		if _, err := fsutil.CreateBackup(ctx, d.OutputPath, d.backups); err != nil {
			return false, err
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, d.OutputPath, content, mode)
	if err != nil {
		return false, err
	}

	if written {
		_, info, err := fsutil.ReadFile(ctx, d.OutputPath)
		if err != nil {
			return true, err
		}
		d.snapshot = info
	}

	return written, nil
}

// Restore replaces OutputPath with its backup and reloads the page from it.
// It reports whether a backup existed.
func (d *Document) Restore(ctx context.Context) (bool, error) {
	restored, err := fsutil.RestoreBackup(ctx, d.OutputPath, d.backups.Mode)
	if err != nil || !restored {
		return restored, err
	}

	content, info, err := fsutil.ReadFile(ctx, d.OutputPath)
	if err != nil {
		return true, err
	}

	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return true, fmt.Errorf("parse %s: %w", d.OutputPath, err)
	}

	d.root = root
	d.snapshot = info
	return true, nil
}
