// Package editor is the composition root: it owns the catalog and the user's edits,
// persists them through a store and hands render projections to exporters.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/content"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/filter"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/selection"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	// ErrSectionNotFound is returned by AddPoint for an unknown section id
	ErrSectionNotFound = errors.New("section not found")
	// ErrResetNotConfirmed is returned by Reset when the caller did not confirm
	ErrResetNotConfirmed = errors.New("reset must be confirmed")
)

// CustomPointPrefix starts the id of every point added in the editor
const CustomPointPrefix = "custom-"

// Options configures an Editor
type Options struct {
	Logger  zerolog.Logger
	Contact types.Contact
}

// Editor holds the session state. All methods are safe for concurrent use.
type Editor struct {
	loader  content.Loader
	store   storage.Store
	logger  zerolog.Logger
	contact types.Contact

	mu sync.RWMutex
	// base is the catalog as parsed from sources
	base types.Catalog
	// catalog is base plus custom points
	catalog types.Catalog
	custom  []CustomPoint
	sel     selection.State
	tags    filter.TagSet
	layout  layout.Settings
}

// New loads the catalog and restores persisted state. Per-document load problems and
// corrupt snapshots are logged and skipped; only a load that yields no catalog fails.
func New(ctx context.Context, loader content.Loader, store storage.Store, opts Options) (*Editor, error) {
	e := &Editor{
		loader:  loader,
		store:   store,
		logger:  opts.Logger,
		contact: opts.Contact,
	}

	base, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialize(base)
	e.restore(ctx)
	return e, nil
}

func (e *Editor) load(ctx context.Context) (types.Catalog, error) {
	catalog, err := e.loader.Load(ctx)
	if content.IsFatal(err) {
		return types.Catalog{}, fmt.Errorf("failed to load content: %w", err)
	}
	if err != nil {
		e.logger.Warn().Err(err).Msg("some source documents were skipped")
	}
	e.logger.Debug().
		Int("sections", len(catalog.Sections)).
		Int("points", catalog.PointCount()).
		Msg("catalog loaded")
	return catalog, nil
}

// initialize resets every piece of session state to a fresh load of base; callers hold mu
func (e *Editor) initialize(base types.Catalog) {
	e.base = base
	e.catalog = base.Clone()
	e.custom = nil
	e.sel = selection.Initialize(e.catalog)
	e.tags = filter.NewTagSet()
	e.layout = layout.Default()
}

// restore applies persisted snapshots over the fresh state; callers hold mu
func (e *Editor) restore(ctx context.Context) {
	if data, ok := e.read(ctx, storage.KeyCustomPoints); ok {
		points, err := DecodeCustomPoints(data)
		if err != nil {
			e.logger.Warn().Err(err).Str("key", storage.KeyCustomPoints).Msg("discarding persisted custom points")
		}
		for _, cp := range points {
			if !e.attach(cp) {
				e.logger.Debug().Str("id", cp.ID).Str("section", cp.SectionID).Msg("dropping custom point of a missing section")
				continue
			}
			e.custom = append(e.custom, cp)
		}
		e.sel = selection.Initialize(e.catalog)
	}

	if data, ok := e.read(ctx, storage.KeySelectedPoints); ok {
		sel, err := e.sel.Restore(data)
		if err != nil {
			e.logger.Warn().Err(err).Str("key", storage.KeySelectedPoints).Msg("discarding persisted selection")
		}
		e.sel = sel
	}

	if data, ok := e.read(ctx, storage.KeyLayoutSettings); ok {
		settings, err := layout.Merge(data)
		if err != nil {
			e.logger.Warn().Err(err).Str("key", storage.KeyLayoutSettings).Msg("discarding persisted layout")
		}
		e.layout = settings
	}
}

func (e *Editor) read(ctx context.Context, key string) ([]byte, bool) {
	data, err := e.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("failed to read persisted state")
		return nil, false
	}
	return data, true
}

// attach appends a custom point to its section; callers hold mu
func (e *Editor) attach(cp CustomPoint) bool {
	section := e.catalog.Section(cp.SectionID)
	if section == nil {
		return false
	}
	section.Points = append(section.Points, cp.Point())
	return true
}

// Catalog returns a copy of the catalog including custom points
func (e *Editor) Catalog() types.Catalog {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog.Clone()
}

// View derives the current filtered view
func (e *Editor) View() filter.View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return filter.DeriveView(e.catalog, e.tags, e.sel)
}

// ViewState derives the view and returns the selection it was derived from, read together
func (e *Editor) ViewState() (filter.View, selection.State) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return filter.DeriveView(e.catalog, e.tags, e.sel), e.sel
}

// Document builds the render projection of the current state
func (e *Editor) Document() types.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.document()
}

func (e *Editor) document() types.Document {
	view := filter.DeriveView(e.catalog, e.tags, e.sel)
	return rendering.BuildDocument(view, e.layout, e.contact)
}

// Layout returns the current layout settings
func (e *Editor) Layout() layout.Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.layout
}

// Tags returns every tag in the catalog, sorted
func (e *Editor) Tags() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return filter.AllTags(e.catalog)
}

// ActiveTags returns the active tag filter
func (e *Editor) ActiveTags() filter.TagSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tags
}

// Selection returns the current selection state
func (e *Editor) Selection() selection.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// PointSelected reports whether a point or skill token is included
func (e *Editor) PointSelected(id string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.IncludedOrDefault(id)
}

// CustomPoints returns the points added in the editor, in insertion order
func (e *Editor) CustomPoints() []CustomPoint {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]CustomPoint, len(e.custom))
	for i, cp := range e.custom {
		out[i] = cp.clone()
	}
	return out
}

// ToggleTag adds or removes one tag filter. Tag filters are not persisted.
func (e *Editor) ToggleTag(tag string) filter.TagSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tags = e.tags.Toggle(tag)
	return e.tags
}

// SetTags replaces the active tag filter
func (e *Editor) SetTags(tags ...string) filter.TagSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tags = filter.NewTagSet(tags...)
	return e.tags
}

// ClearTags removes every tag filter
func (e *Editor) ClearTags() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tags = filter.NewTagSet()
}

// TogglePoint flips the inclusion of a point or skill token and persists the selection.
// It returns the new flag.
func (e *Editor) TogglePoint(ctx context.Context, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = e.sel.Toggle(id)
	e.persistSelection(ctx)
	return e.sel.Included(id)
}

// AddPoint appends a user-written point to a section. Text that is empty after trimming
// adds nothing and returns added=false. Tags are comma separated.
func (e *Editor) AddPoint(ctx context.Context, sectionID, text, tagsCSV string) (point types.Point, added bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Point{}, false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.catalog.Section(sectionID) == nil {
		return types.Point{}, false, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	cp := CustomPoint{
		SectionID: sectionID,
		ID:        CustomPointPrefix + uuid.NewString(),
		Text:      text,
		Tags:      parsing.SplitTags(tagsCSV),
	}
	e.attach(cp)
	e.custom = append(e.custom, cp)
	e.sel = e.sel.SetDefault(cp.ID, true)

	e.persistCustomPoints(ctx)
	e.persistSelection(ctx)
	e.logger.Debug().Str("id", cp.ID).Str("section", sectionID).Msg("point added")
	return cp.Point(), true, nil
}

// SetLayout replaces the layout; out-of-range values are clamped
func (e *Editor) SetLayout(ctx context.Context, settings layout.Settings) layout.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = settings.Clamp()
	e.persistLayout(ctx)
	return e.layout
}

// UpdateLayout changes one numeric layout field
func (e *Editor) UpdateLayout(ctx context.Context, field string, value float64) (layout.Settings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	settings, err := e.layout.With(field, value)
	if err != nil {
		return e.layout, err
	}
	e.layout = settings
	e.persistLayout(ctx)
	return e.layout, nil
}

// PatchLayout overlays the keys of a JSON object on the current layout
func (e *Editor) PatchLayout(ctx context.Context, patch []byte) (layout.Settings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	settings, err := e.layout.Overlay(patch)
	if err != nil {
		return e.layout, err
	}
	e.layout = settings
	e.persistLayout(ctx)
	return e.layout, nil
}

// Reset clears persisted state and reloads the sources; the result matches a fresh start.
// Without confirmation nothing changes.
func (e *Editor) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}

	base, err := e.load(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.Clear(ctx); err != nil {
		e.logger.Warn().Err(err).Msg("failed to clear persisted state")
	}
	e.initialize(base)
	e.logger.Info().Msg("editor state reset")
	return nil
}

// Export builds the document, releases the lock and runs the exporter.
// Failures are returned as *export.Error; the editor state is not touched.
func (e *Editor) Export(ctx context.Context, exporter export.Exporter) ([]byte, error) {
	doc := e.Document()

	pdf, err := exporter.Export(ctx, doc)
	if err != nil {
		var exportErr *export.Error
		if errors.As(err, &exportErr) {
			return nil, err
		}
		return nil, &export.Error{Backend: fmt.Sprintf("%T", exporter), Message: "exporter failed", Cause: err}
	}
	return pdf, nil
}
