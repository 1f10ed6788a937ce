// Package session drives the mark engine the way a user does: highlight a
// pattern, step through the matches, clear them. It owns the pieces the
// engine does not: the page on disk, the persisted pattern, flags and
// cursor, and the view that shows the focused match.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/regexmark/internal/logging"
	"github.com/yaklabco/regexmark/pkg/document"
	"github.com/yaklabco/regexmark/pkg/fsutil"
	"github.com/yaklabco/regexmark/pkg/mark"
	"github.com/yaklabco/regexmark/pkg/pattern"
	"github.com/yaklabco/regexmark/pkg/store"
	"github.com/yaklabco/regexmark/pkg/view"
)

// ErrNoActiveTarget is returned when there is no page to operate on.
var ErrNoActiveTarget = errors.New("no active target")

// Options configures a Session.
type Options struct {
	// Engine applies and navigates markers. Nil means an engine with
	// default options.
	Engine *mark.Engine

	// Defaults are the settings stored on first run.
	Defaults store.Settings

	// InjectStyles adds the marker stylesheet to the page on highlight.
	InjectStyles bool

	// View is told about every focus change. Nil means no view.
	View view.Recorder
}

// Session binds one page to a store.
type Session struct {
	doc    *document.Document
	store  store.Store
	engine *mark.Engine
	opts   Options
}

// New creates a Session for doc. A nil doc yields ErrNoActiveTarget.
func New(doc *document.Document, st store.Store, opts Options) (*Session, error) {
	if doc == nil || doc.Body() == nil {
		return nil, ErrNoActiveTarget
	}
	if st == nil {
		return nil, errors.New("session: nil store")
	}

	engine := opts.Engine
	if engine == nil {
		engine = mark.NewEngine(mark.Options{})
	}
	if opts.Defaults == (store.Settings{}) {
		opts.Defaults = store.DefaultSettings()
	}

	return &Session{doc: doc, store: st, engine: engine, opts: opts}, nil
}

// Open loads path and creates a Session for it. Load failures that mean
// there is nothing to search are reported as ErrNoActiveTarget.
func Open(ctx context.Context, path string, docOpts document.Options, st store.Store, opts Options) (*Session, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no file given", ErrNoActiveTarget)
	}

	doc, err := document.Load(ctx, path, docOpts)
	if err != nil {
		if isMissingTarget(err) {
			logging.FromContext(ctx).Error("no active target", logging.FieldPath, path, logging.FieldError, err)
			return nil, fmt.Errorf("%w: %w", ErrNoActiveTarget, err)
		}
		return nil, err
	}

	return New(doc, st, opts)
}

// Document returns the page the session works on.
func (s *Session) Document() *document.Document {
	return s.doc
}

// Engine returns the engine the session uses.
func (s *Session) Engine() *mark.Engine {
	return s.engine
}

// Init reads the stored settings, storing the defaults for any that are
// missing.
func (s *Session) Init(ctx context.Context) (store.Settings, error) {
	var settings store.Settings
	err := s.locked(ctx, func() error {
		var err error
		settings, err = store.LoadSettings(ctx, s.store, s.opts.Defaults)
		return err
	})
	return settings, err
}

// HighlightResult describes a Highlight call.
type HighlightResult struct {
	Settings store.Settings
	Removed  int
	Markers  int

	// Step is the focus move made after marking, nil when nothing matched.
	Step *StepResult

	Written bool
}

// Highlight replaces the markers on the page with the matches of
// patternText under flags and focuses the first one.
//
// An invalid pattern or flag string returns a *pattern.Error before
// anything is changed. Otherwise the old markers are removed and the new
// ones applied in memory; only when matching succeeds are the cursor
// cleared, the settings stored, the page stepped forward once and saved. A
// failed match leaves both the store and the page on disk as they were.
func (s *Session) Highlight(ctx context.Context, patternText, flags string) (*HighlightResult, error) {
	opts, err := pattern.ParseFlags(flags)
	if err != nil {
		var pe *pattern.Error
		if errors.As(err, &pe) {
			pe.Pattern = patternText
		}
		return nil, err
	}

	var matcher *pattern.Matcher
	if patternText != "" {
		matcher, err = s.engine.Compile(patternText, opts)
		if err != nil {
			return nil, err
		}
	}

	logger := logging.FromContext(ctx)
	result := &HighlightResult{Settings: store.Settings{Regex: patternText, Flags: opts.String()}}

	err = s.locked(ctx, func() error {
		result.Removed = s.unmark(ctx)

		if matcher == nil {
			logger.Debug("empty pattern, nothing to mark")
		} else {
			markers, err := s.engine.ApplyMatcher(s.doc.Body(), matcher)
			if err != nil {
				return err
			}
			result.Markers = len(markers)
			logger.Debug("applied pattern",
				logging.FieldPattern, patternText,
				logging.FieldFlags, flags,
				logging.FieldMarkers, len(markers))

			if s.opts.InjectStyles {
				mark.InjectStyles(s.doc.Root(), s.engine.Classes())
			}
		}

		if err := store.ClearCursor(ctx, s.store); err != nil {
			return err
		}
		if err := store.SaveSettings(ctx, s.store, result.Settings); err != nil {
			return err
		}

		step, err := s.step(ctx, mark.Forward)
		if err != nil && !errors.Is(err, mark.ErrNoMatches) {
			return err
		}
		if err == nil {
			result.Step = step
		}

		result.Written, err = s.doc.Save(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// StepResult describes one focus move.
type StepResult struct {
	Direction mark.Direction
	Cursor    int
	Count     int

	// Focus is the excerpt the view produced, nil without a view.
	Focus *view.Excerpt

	Written bool
}

// Step moves the focus one marker in dir, persists the new cursor and
// saves the page. With no markers on the page it returns mark.ErrNoMatches
// and leaves the cursor as it was.
func (s *Session) Step(ctx context.Context, dir mark.Direction) (*StepResult, error) {
	var result *StepResult
	err := s.locked(ctx, func() error {
		var err error
		result, err = s.step(ctx, dir)
		if err != nil {
			return err
		}
		result.Written, err = s.doc.Save(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Session) step(ctx context.Context, dir mark.Direction) (*StepResult, error) {
	cursor, ok, err := store.Cursor(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := store.SetCursor(ctx, s.store, mark.NoCursor); err != nil {
			return nil, err
		}
	}

	var focus mark.View
	if s.opts.View != nil {
		focus = s.opts.View
	}

	next, err := s.engine.Advance(s.doc.Body(), cursor, dir, focus)
	if err != nil {
		logging.FromContext(ctx).Debug("nothing to navigate", logging.FieldDirection, dir)
		return nil, err
	}

	if err := store.SetCursor(ctx, s.store, next); err != nil {
		return nil, err
	}

	result := &StepResult{
		Direction: dir,
		Cursor:    next,
		Count:     len(s.engine.Markers(s.doc.Body())),
	}
	if s.opts.View != nil {
		if excerpt, ok := s.opts.View.Last(); ok {
			result.Focus = &excerpt
		}
	}

	logging.FromContext(ctx).Debug("moved focus",
		logging.FieldDirection, dir,
		logging.FieldCursor, next)
	return result, nil
}

// ClearResult describes a Clear call.
type ClearResult struct {
	Removed       int
	StylesRemoved int
	Written       bool
}

// Clear removes every marker from the page and the stored cursor, and
// saves the page. With purgeStyles the injected stylesheet goes too.
func (s *Session) Clear(ctx context.Context, purgeStyles bool) (*ClearResult, error) {
	result := &ClearResult{}
	err := s.locked(ctx, func() error {
		removed, err := s.clear(ctx)
		if err != nil {
			return err
		}
		result.Removed = removed

		if purgeStyles {
			result.StylesRemoved = mark.RemoveStyles(s.doc.Root())
		}

		result.Written, err = s.doc.Save(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Restore puts back the page saved before the first highlight and removes
// the stored cursor. It reports whether a backup existed.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	var restored bool
	err := s.locked(ctx, func() error {
		if err := store.ClearCursor(ctx, s.store); err != nil {
			return err
		}
		var err error
		restored, err = s.doc.Restore(ctx)
		return err
	})
	return restored, err
}

// clear removes the stored cursor and every marker.
func (s *Session) clear(ctx context.Context) (int, error) {
	if err := store.ClearCursor(ctx, s.store); err != nil {
		return 0, err
	}
	return s.unmark(ctx), nil
}

// unmark removes every marker from the page in memory.
func (s *Session) unmark(ctx context.Context) int {
	removed := s.engine.Clear(s.doc.Body())
	logging.FromContext(ctx).Debug("cleared markers", logging.FieldRemoved, removed)
	return removed
}

// Status is a snapshot of the page and the stored state.
type Status struct {
	Path     string
	Output   string
	Kind     string
	Settings store.Settings
	Cursor   int
	Markers  int

	// Current is the text of the focused marker, empty if none.
	Current string
}

// Status reports the stored state and the markers on the page. Missing
// settings are initialized as in Init.
func (s *Session) Status(ctx context.Context) (*Status, error) {
	status := &Status{
		Path:   s.doc.Path,
		Output: s.doc.OutputPath,
		Kind:   s.doc.Kind.String(),
	}

	err := s.locked(ctx, func() error {
		settings, err := store.LoadSettings(ctx, s.store, s.opts.Defaults)
		if err != nil {
			return err
		}
		status.Settings = settings

		status.Cursor, _, err = store.Cursor(ctx, s.store)
		return err
	})
	if err != nil {
		return nil, err
	}

	status.Markers = len(s.engine.Markers(s.doc.Body()))
	if current := s.engine.Current(s.doc.Body()); current != nil {
		status.Current = mark.TextContent(current)
	}
	return status, nil
}

// locked runs fn while holding the store's cross-process lock, if it has one.
func (s *Session) locked(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	locker, ok := s.store.(store.Locker)
	if !ok {
		return fn()
	}

	if err := locker.Lock(); err != nil {
		return err
	}
	err := fn()
	if unlockErr := locker.Unlock(); unlockErr != nil && err == nil {
		err = unlockErr
	}
	return err
}

func isMissingTarget(err error) bool {
	return errors.Is(err, document.ErrEmpty) ||
		errors.Is(err, fsutil.ErrNotFound) ||
		errors.Is(err, fsutil.ErrIsDirectory)
}
