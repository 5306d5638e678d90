package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/content"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

func testSources() content.Sources {
	return content.Sources{
		types.CategoryExperience: {
			{Name: "acme", Raw: []byte("---\ncompany: Acme\ndesignation: Engineer\n---\n- Built API [Go, SQL]\n- Ran ML [Python]\n")},
		},
		types.CategoryProject: {
			{Name: "tool", Raw: []byte("---\nproject_name: Tool\n---\n- Wrote CLI [Rust]\n")},
		},
		types.CategoryEducation: {
			{Name: "uni", Raw: []byte("---\ninstitution: State University\ndegree: BSc\n---\n")},
		},
		types.CategorySkills: {
			{Name: "langs", Raw: []byte("---\ncategory: Languages\n---\n- Languages: Go, Python, SQL\n")},
		},
	}
}

func newEditor(t *testing.T, store storage.Store) *Editor {
	t.Helper()
	e, err := New(context.Background(), content.StaticLoader{Sources: testSources()}, store, Options{
		Logger:  zerolog.Nop(),
		Contact: types.Contact{Name: "Jane Doe"},
	})
	require.NoError(t, err)
	return e
}

// failingStore accepts reads of nothing and rejects every write
type failingStore struct{ *storage.Memory }

func (f *failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func (f *failingStore) Clear(context.Context) error {
	return errors.New("disk full")
}

type errLoader struct{ err error }

func (l errLoader) Load(context.Context) (types.Catalog, error) {
	return types.Catalog{}, l.err
}

func TestNew_FreshState(t *testing.T) {
	e := newEditor(t, storage.NewMemory())

	catalog := e.Catalog()
	require.Len(t, catalog.Sections, 4)
	assert.Equal(t, "acme (exp)", catalog.Sections[0].ID)
	assert.Equal(t, layout.Default(), e.Layout())
	assert.True(t, e.ActiveTags().Empty())
	for _, id := range catalog.PointIDs() {
		assert.True(t, e.PointSelected(id), id)
	}
	assert.Equal(t, []string{"Go", "Python", "Rust", "SQL"}, e.Tags())
}

func TestNew_FatalLoadError(t *testing.T) {
	_, err := New(context.Background(), errLoader{err: errors.New("permission denied")}, storage.NewMemory(), Options{Logger: zerolog.Nop()})
	assert.Error(t, err)
}

func TestNew_SkipsMalformedDocuments(t *testing.T) {
	sources := testSources()
	sources[types.CategoryProject] = append(sources[types.CategoryProject], content.Document{Name: "bad", Raw: []byte{0xff, 0xfe}})

	e, err := New(context.Background(), content.StaticLoader{Sources: sources}, storage.NewMemory(), Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Nil(t, e.Catalog().Section("bad (proj)"))
	assert.NotNil(t, e.Catalog().Section("tool (proj)"))
}

func TestTogglePoint_PersistsAcrossReload(t *testing.T) {
	store := storage.NewMemory()
	e := newEditor(t, store)

	included := e.TogglePoint(context.Background(), "acme (exp)-p1")
	assert.False(t, included)

	reloaded := newEditor(t, store)
	assert.False(t, reloaded.PointSelected("acme (exp)-p1"))
	assert.True(t, reloaded.PointSelected("acme (exp)-p0"))
}

func TestTogglePoint_SkillToken(t *testing.T) {
	e := newEditor(t, storage.NewMemory())

	e.TogglePoint(context.Background(), "langs (skl)-p0-skill-1")
	doc := e.Document()

	skills := doc.Groups[len(doc.Groups)-1]
	require.Equal(t, types.CategorySkills, skills.Category)
	assert.Equal(t, "Languages: Go, SQL", skills.Entries[0].Points[0].Text)
}

func TestViewState_ConsistentUnderToggles(t *testing.T) {
	e := newEditor(t, storage.NewMemory())
	ctx := context.Background()
	id := e.Catalog().Sections[0].Points[0].ID

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			e.TogglePoint(ctx, id)
		}
	}()

	for i := 0; i < 200; i++ {
		view, sel := e.ViewState()
		checked := 0
		for _, sv := range view.Sections {
			for _, p := range sv.Section.Points {
				if sel.Included(p.ID) {
					checked++
				}
			}
		}
		require.Equal(t, view.ActiveCount(), checked)
	}
	<-done
}

func TestTags_AreEphemeral(t *testing.T) {
	store := storage.NewMemory()
	e := newEditor(t, store)

	e.ToggleTag("Go")
	e.ToggleTag("Rust")
	assert.Equal(t, []string{"Go", "Rust"}, e.ActiveTags().Sorted())
	e.ToggleTag("Rust")
	assert.Equal(t, []string{"Go"}, e.ActiveTags().Sorted())

	view := e.View()
	assert.Len(t, view.Section("acme (exp)").Section.Points, 1)
	assert.Empty(t, view.Section("tool (proj)").Section.Points)

	assert.True(t, newEditor(t, store).ActiveTags().Empty())

	e.SetTags("Python", "Rust")
	assert.Equal(t, 2, e.ActiveTags().Len())
	e.ClearTags()
	assert.True(t, e.ActiveTags().Empty())
}

func TestAddPoint(t *testing.T) {
	store := storage.NewMemory()
	e := newEditor(t, store)
	ctx := context.Background()

	point, added, err := e.AddPoint(ctx, "tool (proj)", "  Added docs  ", "Docs, , Go ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Regexp(t, `^custom-[0-9a-f-]{36}$`, point.ID)
	assert.Equal(t, "Added docs", point.Text)
	assert.Equal(t, []string{"Docs", "Go"}, point.Tags)
	assert.True(t, e.PointSelected(point.ID))

	section := e.Catalog().Section("tool (proj)")
	require.NotNil(t, section)
	require.Len(t, section.Points, 2)
	assert.Equal(t, point.ID, section.Points[1].ID)

	reloaded := newEditor(t, store)
	got := reloaded.Catalog().Section("tool (proj)")
	require.Len(t, got.Points, 2)
	assert.Equal(t, point, got.Points[1])
	assert.True(t, reloaded.PointSelected(point.ID))
	assert.Len(t, reloaded.CustomPoints(), 1)
}

func TestAddPoint_WhitespaceIsNoop(t *testing.T) {
	e := newEditor(t, storage.NewMemory())

	_, added, err := e.AddPoint(context.Background(), "tool (proj)", " \t ", "Go")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, e.Catalog().Section("tool (proj)").Points, 1)
}

func TestAddPoint_UnknownSection(t *testing.T) {
	e := newEditor(t, storage.NewMemory())

	_, added, err := e.AddPoint(context.Background(), "nope (proj)", "Text", "")
	assert.ErrorIs(t, err, ErrSectionNotFound)
	assert.False(t, added)
}

func TestAddPoint_TogglesLikeSourcePoints(t *testing.T) {
	e := newEditor(t, storage.NewMemory())
	ctx := context.Background()

	point, _, err := e.AddPoint(ctx, "acme (exp)", "Mentored", "")
	require.NoError(t, err)
	e.TogglePoint(ctx, point.ID)
	assert.False(t, e.PointSelected(point.ID))
}

func TestRestore_DropsCustomPointsOfMissingSections(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.KeyCustomPoints,
		[]byte(`[{"section_id":"gone (exp)","id":"custom-1","text":"Old","tags":[]},{"section_id":"acme (exp)","id":"custom-2","text":"Kept","tags":["Go"]}]`)))

	e := newEditor(t, store)
	section := e.Catalog().Section("acme (exp)")
	require.Len(t, section.Points, 3)
	assert.Equal(t, "custom-2", section.Points[2].ID)
	assert.Len(t, e.CustomPoints(), 1)
}

func TestRestore_CorruptSnapshotsFallBack(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.KeySelectedPoints, []byte(`{not json`)))
	require.NoError(t, store.Set(ctx, storage.KeyLayoutSettings, []byte(`[1]`)))
	require.NoError(t, store.Set(ctx, storage.KeyCustomPoints, []byte(`[{"id":"x"}]`)))

	e := newEditor(t, store)
	assert.Equal(t, layout.Default(), e.Layout())
	assert.True(t, e.PointSelected("acme (exp)-p0"))
	assert.Len(t, e.Catalog().Section("acme (exp)").Points, 2)
}

func TestRestore_PartialLayout(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Set(context.Background(), storage.KeyLayoutSettings, []byte(`{"gapPoints":8,"paddingTopBottom":99}`)))

	got := newEditor(t, store).Layout()
	assert.Equal(t, 8.0, got.GapPoints)
	assert.Equal(t, 30.0, got.PaddingTopBottom)
	assert.Equal(t, layout.PageA4, got.PageSize)
}

func TestLayout_ClampAndPersist(t *testing.T) {
	store := storage.NewMemory()
	e := newEditor(t, store)
	ctx := context.Background()

	settings, err := e.UpdateLayout(ctx, layout.FieldGapPoints, 50)
	require.NoError(t, err)
	assert.Equal(t, 20.0, settings.GapPoints)

	_, err = e.UpdateLayout(ctx, "fontSize", 1)
	assert.ErrorIs(t, err, layout.ErrUnknownField)

	s := layout.Default().WithPageSize(layout.PageLetter)
	s.PaddingLeftRight = -4
	got := e.SetLayout(ctx, s)
	assert.Equal(t, 0.0, got.PaddingLeftRight)

	patched, err := e.PatchLayout(ctx, []byte(`{"gapSubsections":22}`))
	require.NoError(t, err)
	assert.Equal(t, 22.0, patched.GapSubsections)
	assert.Equal(t, layout.PageLetter, patched.PageSize)

	_, err = e.PatchLayout(ctx, []byte(`"A4"`))
	assert.ErrorIs(t, err, layout.ErrCorruptSnapshot)

	assert.Equal(t, patched, newEditor(t, store).Layout())
}

func TestReset(t *testing.T) {
	store := storage.NewMemory()
	e := newEditor(t, store)
	ctx := context.Background()

	e.TogglePoint(ctx, "acme (exp)-p0")
	e.ToggleTag("Go")
	_, err := e.UpdateLayout(ctx, layout.FieldGapPoints, 9)
	require.NoError(t, err)
	_, _, err = e.AddPoint(ctx, "acme (exp)", "Extra", "")
	require.NoError(t, err)

	assert.ErrorIs(t, e.Reset(ctx, false), ErrResetNotConfirmed)
	assert.False(t, e.PointSelected("acme (exp)-p0"))
	assert.Equal(t, 9.0, e.Layout().GapPoints)

	require.NoError(t, e.Reset(ctx, true))
	fresh := newEditor(t, storage.NewMemory())
	assert.Equal(t, fresh.Catalog(), e.Catalog())
	assert.True(t, e.Selection().Equal(fresh.Selection()))
	assert.Equal(t, fresh.Layout(), e.Layout())
	assert.True(t, e.ActiveTags().Empty())
	assert.Empty(t, e.CustomPoints())

	for _, key := range storage.Keys {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}
}

func TestPersistenceFailureKeepsMutation(t *testing.T) {
	e := newEditor(t, &failingStore{Memory: storage.NewMemory()})
	ctx := context.Background()

	assert.False(t, e.TogglePoint(ctx, "acme (exp)-p0"))
	assert.False(t, e.PointSelected("acme (exp)-p0"))

	_, added, err := e.AddPoint(ctx, "acme (exp)", "Still added", "")
	require.NoError(t, err)
	assert.True(t, added)

	require.NoError(t, e.Reset(ctx, true))
	assert.True(t, e.PointSelected("acme (exp)-p0"))
}

type blockingExporter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingExporter) Export(ctx context.Context, doc types.Document) ([]byte, error) {
	close(b.started)
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []byte("%PDF-" + doc.Contact.Name), nil
}

func TestExport_DoesNotHoldLock(t *testing.T) {
	e := newEditor(t, storage.NewMemory())
	exp := &blockingExporter{started: make(chan struct{}), release: make(chan struct{})}

	type result struct {
		pdf []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		pdf, err := e.Export(context.Background(), exp)
		done <- result{pdf, err}
	}()
	<-exp.started

	toggled := make(chan struct{})
	go func() {
		e.TogglePoint(context.Background(), "acme (exp)-p0")
		close(toggled)
	}()

	select {
	case <-toggled:
	case <-time.After(2 * time.Second):
		t.Fatal("mutation blocked while exporting")
	}

	close(exp.release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "%PDF-Jane Doe", string(res.pdf))
}

type failingExporter struct{ err error }

func (f failingExporter) Export(context.Context, types.Document) ([]byte, error) {
	return nil, f.err
}

func TestExport_Failure(t *testing.T) {
	e := newEditor(t, storage.NewMemory())
	ctx := context.Background()

	typed := &export.Error{Backend: export.BackendChrome, Message: "browser crashed"}
	_, err := e.Export(ctx, failingExporter{err: typed})
	assert.ErrorIs(t, err, typed)

	_, err = e.Export(ctx, failingExporter{err: errors.New("boom")})
	var exportErr *export.Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "exporter failed", exportErr.Message)

	assert.True(t, e.PointSelected("acme (exp)-p0"))
}

func TestDecodeCustomPoints(t *testing.T) {
	points, err := DecodeCustomPoints([]byte(`[{"section_id":"a (exp)","id":"custom-1","text":"T","tags":["Go"]}]`))
	require.NoError(t, err)
	assert.Equal(t, []CustomPoint{{SectionID: "a (exp)", ID: "custom-1", Text: "T", Tags: []string{"Go"}}}, points)

	_, err = DecodeCustomPoints([]byte(`[{"section_id":"a (exp)","id":"bad","text":"T","tags":[]}]`))
	assert.ErrorIs(t, err, ErrCorruptCustomPoints)

	_, err = DecodeCustomPoints([]byte(`[{"section_id":"a (exp)","id":"custom-1","text":"   ","tags":[]}]`))
	assert.ErrorIs(t, err, ErrCorruptCustomPoints)
}
