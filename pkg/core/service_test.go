package core_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lexicon/pkg/core"
	"github.com/aretw0/lexicon/pkg/glossary"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test fallback/errors.
type MockRepository struct {
	docs    map[string]core.Document
	saves   int
	reasons []string
	getErr  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		docs: make(map[string]core.Document),
	}
}

func (m *MockRepository) Save(ctx context.Context, doc core.Document) error {
	m.docs[doc.ID] = doc
	m.saves++
	if reason, ok := ctx.Value(core.ChangeReasonKey).(string); ok {
		m.reasons = append(m.reasons, reason)
	}
	return nil
}

func (m *MockRepository) Get(ctx context.Context, id string) (core.Document, error) {
	if m.getErr != nil {
		return core.Document{}, m.getErr
	}
	doc, ok := m.docs[id]
	if !ok {
		return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return doc, nil
}

func (m *MockRepository) List(ctx context.Context) ([]core.Document, error) {
	var docs []core.Document
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	// Sort for deterministic tests
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

// MockWatchRepo adds core.Watchable on top of MockRepository.
type MockWatchRepo struct {
	*MockRepository
	UpstreamCh chan core.Event
	pattern    string
}

func (m *MockWatchRepo) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	m.pattern = pattern
	return m.UpstreamCh, nil
}

type mockEditor struct {
	selection string
	replaced  []string
	err       error
}

func (e *mockEditor) Selection() string { return e.selection }

func (e *mockEditor) ReplaceSelection(ctx context.Context, text string) error {
	if e.err != nil {
		return e.err
	}
	e.replaced = append(e.replaced, text)
	e.selection = text
	return nil
}

type recorder struct {
	notices []string
}

func (r *recorder) Notify(msg string) { r.notices = append(r.notices, msg) }

func formatting(text string) core.Formatting {
	return core.Formatting{
		Text:       text,
		Term:       glossary.Style{Colour: "#FFFFFF", Bold: true},
		Definition: glossary.Style{Colour: "#FFFFFF"},
	}
}

func setupService(t *testing.T) (*core.Service, *MockRepository, *recorder) {
	t.Helper()
	repo := NewMockRepository()
	rec := &recorder{}
	return core.NewService(repo, core.WithNotifier(rec)), repo, rec
}

func TestService_EnsureDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Missing Document", func(t *testing.T) {
		svc, repo, _ := setupService(t)

		doc, err := svc.EnsureDocument(ctx)
		require.NoError(t, err)
		assert.Equal(t, glossary.DefaultDocument, doc.ID)
		assert.Equal(t, glossary.Seed(), doc.Content)
		assert.Equal(t, glossary.Seed(), repo.docs[glossary.DefaultDocument].Content)
		assert.Equal(t, []string{"seed Definitions"}, repo.reasons)
	})

	t.Run("Reseeds Empty Document", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.docs[glossary.DefaultDocument] = core.Document{ID: glossary.DefaultDocument}

		doc, err := svc.EnsureDocument(ctx)
		require.NoError(t, err)
		assert.Equal(t, glossary.Seed(), doc.Content)
	})

	t.Run("Idempotent", func(t *testing.T) {
		svc, repo, _ := setupService(t)

		first, err := svc.EnsureDocument(ctx)
		require.NoError(t, err)
		second, err := svc.EnsureDocument(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, repo.saves, "existing content must not be rewritten")
	})

	t.Run("Keeps Existing Content", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.docs[glossary.DefaultDocument] = core.Document{ID: glossary.DefaultDocument, Content: "# A\n---\n"}

		doc, err := svc.EnsureDocument(ctx)
		require.NoError(t, err)
		assert.Equal(t, "# A\n---\n", doc.Content)
		assert.Zero(t, repo.saves)
	})

	t.Run("Propagates Read Errors", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.getErr = errors.New("disk on fire")

		_, err := svc.EnsureDocument(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk on fire")
		assert.Zero(t, repo.saves)
	})

	t.Run("Custom Document Name", func(t *testing.T) {
		repo := NewMockRepository()
		svc := core.NewService(repo, core.WithDocument("Glossary"))

		_, err := svc.EnsureDocument(ctx)
		require.NoError(t, err)
		assert.Contains(t, repo.docs, "Glossary")
		assert.Equal(t, "Glossary", svc.Linker().Document)
	})
}

func TestService_Load(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()

	content := glossary.Insert(glossary.Seed(),
		glossary.BuildTermLine(glossary.Style{Colour: "#FFFFFF"}, "Cat"),
		glossary.BuildDefinitionLine(glossary.Style{Colour: "#FFFFFF"}, "A small feline", "Cat"),
		"Cat")
	repo.docs[glossary.DefaultDocument] = core.Document{ID: glossary.DefaultDocument, Content: content}

	svc.Index().Set("stale", "entry")
	require.NoError(t, svc.Load(ctx))

	assert.Equal(t, map[string]string{"Cat": "A small feline"}, svc.Index().Snapshot())
	def, ok := svc.Lookup("cat")
	assert.True(t, ok)
	assert.Equal(t, "A small feline", def)
}

func TestService_Define(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty Glossary", func(t *testing.T) {
		svc, repo, rec := setupService(t)
		ed := &mockEditor{selection: "Cat"}

		require.NoError(t, svc.Define(ctx, ed, formatting("A small feline")))

		entries := glossary.ParseEntries(repo.docs[glossary.DefaultDocument].Content)
		require.Len(t, entries, 1)
		assert.Equal(t, "C", entries[0].Letter())
		assert.Equal(t, "Cat", entries[0].Term)
		assert.Equal(t, "A small feline", entries[0].Definition)
		assert.Equal(t, "Cat", entries[0].Key)

		assert.Equal(t, []string{"[[Definitions#^Cat|Cat]]"}, ed.replaced)
		assert.Equal(t, []string{"Defined!"}, rec.notices)
		assert.Contains(t, repo.reasons, "define Cat")

		def, ok := svc.Lookup("Cat")
		assert.True(t, ok)
		assert.Equal(t, "A small feline", def)
	})

	t.Run("Lowercase Selection", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		ed := &mockEditor{selection: "apple"}

		require.NoError(t, svc.Define(ctx, ed, formatting("A fruit")))

		content := repo.docs[glossary.DefaultDocument].Content
		assert.Contains(t, content, ">Apple</span>")
		assert.Contains(t, content, "</span> ^Apple")
		assert.Equal(t, "[[Definitions#^Apple|apple]]", ed.selection)

		_, ok := svc.Index().Snapshot()["apple"]
		assert.True(t, ok, "index keeps the phrase as selected")
	})

	t.Run("Ordering", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		require.NoError(t, svc.Define(ctx, &mockEditor{selection: "Dog"}, formatting("Canine")))
		require.NoError(t, svc.Define(ctx, &mockEditor{selection: "Cow"}, formatting("Bovine")))
		require.NoError(t, svc.Define(ctx, &mockEditor{selection: "Cat"}, formatting("Feline")))

		content := repo.docs[glossary.DefaultDocument].Content
		assert.Less(t, strings.Index(content, ">Cat<"), strings.Index(content, ">Cow<"))
		assert.Equal(t, []string{"Cat", "Cow", "Dog"}, svc.Terms())
	})

	t.Run("Rejects Leading Digit", func(t *testing.T) {
		svc, repo, rec := setupService(t)
		ed := &mockEditor{selection: "123abc"}

		err := svc.Define(ctx, ed, formatting("numbers"))
		require.ErrorIs(t, err, core.ErrTermMustStartWithLetter)
		assert.ErrorIs(t, err, core.ErrInvalidSelection)
		assert.Equal(t, []string{"Term must start with an alphabetical character!"}, rec.notices)
		assert.Empty(t, repo.docs, "no document mutation")
		assert.Empty(t, ed.replaced)
	})

	t.Run("Rejects Punctuation", func(t *testing.T) {
		svc, repo, rec := setupService(t)

		err := svc.Define(ctx, &mockEditor{selection: "cat!"}, formatting("x"))
		require.ErrorIs(t, err, core.ErrTermNotAlphanumeric)
		assert.Equal(t, []string{"Term can only contain alphanumeric characters!"}, rec.notices)
		assert.Empty(t, repo.docs)
	})

	t.Run("Rejects Multi Line Definition", func(t *testing.T) {
		svc, repo, _ := setupService(t)

		err := svc.Define(ctx, &mockEditor{selection: "cat"}, formatting("line one\nline two"))
		require.ErrorIs(t, err, core.ErrInvalidDefinition)
		assert.Empty(t, repo.docs)
	})

	t.Run("Editor Failure Restores Glossary", func(t *testing.T) {
		svc, repo, rec := setupService(t)
		require.NoError(t, svc.Define(ctx, &mockEditor{selection: "Dog"}, formatting("Canine")))
		before := repo.docs[glossary.DefaultDocument].Content

		ed := &mockEditor{selection: "cat", err: errors.New("read-only buffer")}
		err := svc.Define(ctx, ed, formatting("Feline"))
		require.Error(t, err)
		assert.Equal(t, []string{"Defined!"}, rec.notices)

		content := repo.docs[glossary.DefaultDocument].Content
		assert.Equal(t, before, content, "entry without a link is rolled back")
		assert.Equal(t, glossary.Parse(content), svc.Index().Snapshot())
		assert.Contains(t, repo.reasons, "undo define cat")
	})
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trip", func(t *testing.T) {
		svc, repo, rec := setupService(t)
		ed := &mockEditor{selection: "sea lion"}

		require.NoError(t, svc.Define(ctx, ed, formatting("A large seal")))
		require.Equal(t, "[[Definitions#^SeaLion|sea lion]]", ed.selection)

		require.NoError(t, svc.Clear(ctx, ed))
		assert.Equal(t, "sea lion", ed.selection)
		assert.Equal(t, glossary.Seed(), repo.docs[glossary.DefaultDocument].Content)
		assert.Zero(t, svc.Index().Len())
		assert.Equal(t, []string{"Defined!", "Cleared definition!"}, rec.notices)
	})

	t.Run("Index Rebuilt From Document", func(t *testing.T) {
		svc, _, _ := setupService(t)
		ed := &mockEditor{selection: "apple"}
		require.NoError(t, svc.Define(ctx, ed, formatting("Fruit")))

		// After a reload the index key is the stored "Apple".
		require.NoError(t, svc.Load(ctx))
		require.NoError(t, svc.Clear(ctx, ed))
		assert.Zero(t, svc.Index().Len())
	})

	t.Run("Unknown Term Is Success", func(t *testing.T) {
		svc, repo, rec := setupService(t)
		_, err := svc.EnsureDocument(ctx)
		require.NoError(t, err)
		saves := repo.saves

		ed := &mockEditor{selection: "[[Definitions#^Ghost|ghost]]"}
		require.NoError(t, svc.Clear(ctx, ed))
		assert.Equal(t, saves, repo.saves, "nothing to write")
		assert.Equal(t, "ghost", ed.selection)
		assert.Equal(t, []string{"Cleared definition!"}, rec.notices)
	})

	t.Run("Reseeds Missing Document", func(t *testing.T) {
		svc, repo, _ := setupService(t)

		require.NoError(t, svc.Clear(ctx, &mockEditor{selection: "[[Definitions#^Cat|Cat]]"}))
		assert.Equal(t, glossary.Seed(), repo.docs[glossary.DefaultDocument].Content)
	})

	t.Run("Editor Failure Restores Glossary", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		ed := &mockEditor{selection: "sea lion"}
		require.NoError(t, svc.Define(ctx, ed, formatting("A large seal")))
		before := repo.docs[glossary.DefaultDocument].Content

		ed.err = errors.New("read-only buffer")
		require.Error(t, svc.Clear(ctx, ed))

		content := repo.docs[glossary.DefaultDocument].Content
		assert.Equal(t, before, content, "link keeps its entry")
		assert.Equal(t, glossary.Parse(content), svc.Index().Snapshot())
		def, ok := svc.Lookup("sea lion")
		assert.True(t, ok)
		assert.Equal(t, "A large seal", def)
	})

	t.Run("Rejects Plain Text", func(t *testing.T) {
		svc, repo, rec := setupService(t)

		err := svc.Clear(ctx, &mockEditor{selection: "Cat"})
		require.ErrorIs(t, err, core.ErrNotDefinitionLink)
		assert.Equal(t, []string{"Selection is not a defined term!"}, rec.notices)
		assert.Empty(t, repo.docs)
	})
}

func TestService_Watch_Unsupported(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Watch(context.Background())
	require.Error(t, err)
	assert.Equal(t, "repository does not support watching", err.Error())
}

func TestService_Watch_ReloadsIndex(t *testing.T) {
	repo := &MockWatchRepo{
		MockRepository: NewMockRepository(),
		UpstreamCh:     make(chan core.Event),
	}
	svc := core.NewService(repo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Load(ctx))
	require.Zero(t, svc.Index().Len())

	stream, err := svc.Watch(ctx)
	require.NoError(t, err)
	assert.Equal(t, glossary.DefaultDocument, repo.pattern)

	// Simulate a hand edit of the glossary.
	content := glossary.Insert(glossary.Seed(),
		glossary.BuildTermLine(glossary.Style{Colour: "#000000"}, "Owl"),
		glossary.BuildDefinitionLine(glossary.Style{Colour: "#000000"}, "A night bird", "Owl"),
		"Owl")
	repo.docs[glossary.DefaultDocument] = core.Document{ID: glossary.DefaultDocument, Content: content}
	repo.UpstreamCh <- core.Event{Type: core.EventModify, ID: glossary.DefaultDocument}

	select {
	case e := <-stream:
		assert.Equal(t, core.EventModify, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for event")
	}

	def, ok := svc.Lookup("Owl")
	assert.True(t, ok)
	assert.Equal(t, "A night bird", def)

	repo.UpstreamCh <- core.Event{Type: core.EventDelete, ID: glossary.DefaultDocument}
	select {
	case <-stream:
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for delete event")
	}
	assert.Zero(t, svc.Index().Len())
}

func TestService_State(t *testing.T) {
	svc, _, _ := setupService(t)
	svc.Index().Set("Cat", "Feline")

	state, ok := svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "Definitions", state.Document)
	assert.Equal(t, 1, state.Terms)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.Equal(t, "glossary-service", svc.ComponentType())
}

func TestNotice(t *testing.T) {
	assert.Empty(t, core.Notice(nil))
	assert.Equal(t, "Something went wrong: boom", core.Notice(errors.New("boom")))
}
