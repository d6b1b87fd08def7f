package editor_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lexicon/pkg/adapters/editor"
	"github.com/aretw0/lexicon/pkg/adapters/fs"
	"github.com/aretw0/lexicon/pkg/adapters/memory"
	"github.com/aretw0/lexicon/pkg/core"
	"github.com/aretw0/lexicon/pkg/glossary"
)

func TestBuffer(t *testing.T) {
	ctx := context.Background()
	b := editor.NewBuffer("the sea lion swims")
	assert.Equal(t, "the sea lion swims", b.Selection())

	require.NoError(t, b.SelectFirst("sea lion"))
	assert.Equal(t, "sea lion", b.Selection())

	require.NoError(t, b.ReplaceSelection(ctx, "[[Definitions#^SeaLion|sea lion]]"))
	assert.Equal(t, "the [[Definitions#^SeaLion|sea lion]] swims", b.Text)
	assert.Equal(t, "[[Definitions#^SeaLion|sea lion]]", b.Selection())

	assert.ErrorIs(t, b.SelectFirst("walrus"), editor.ErrNoMatch)
	assert.ErrorIs(t, b.SelectFirst(""), editor.ErrNoMatch)
	assert.Error(t, b.Select(5, 2))
	assert.Error(t, b.Select(0, len(b.Text)+1))
}

func TestFile_DefineAndClear(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	require.NoError(t, repo.Save(ctx, core.Document{ID: "notes", Content: "A cat sat. Another cat."}))

	var notices bytes.Buffer
	svc := core.NewService(repo, core.WithNotifier(editor.WriterNotifier{W: &notices}))

	f, err := editor.OpenFile(ctx, repo, "notes")
	require.NoError(t, err)
	assert.Equal(t, "notes", f.ID())
	require.NoError(t, f.SelectPhrase("cat"))

	require.NoError(t, svc.Define(ctx, f, core.Formatting{
		Text:       "A small feline",
		Term:       glossary.Style{Colour: "#FFFFFF", Bold: true},
		Definition: glossary.Style{Colour: "#FFFFFF"},
	}))

	saved, err := repo.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "A [[Definitions#^Cat|cat]] sat. Another cat.", saved.Content)

	g, err := editor.OpenFile(ctx, repo, "notes")
	require.NoError(t, err)
	assert.ErrorIs(t, g.SelectLink(svc.Linker(), "dog"), editor.ErrNoMatch)
	require.NoError(t, g.SelectLink(svc.Linker(), "CAT"))
	require.NoError(t, svc.Clear(ctx, g))

	saved, err = repo.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "A cat sat. Another cat.", saved.Content)
	assert.Equal(t, "Defined!\nCleared definition!\n", notices.String())

	_, err = editor.OpenFile(ctx, repo, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFile_LeavesRestOfNoteUntouched(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := fs.NewRepository(fs.Config{Path: dir, AutoInit: true, Gitless: true})
	require.NoError(t, repo.Initialize(ctx))

	raw := "---\n# keep me\ntags: [a, b]\ntitle: \"Zoo\"\n---\nA cat sat.\r\nNext line.\r\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zoo.md"), []byte(raw), 0644))

	svc := core.NewService(repo)
	f, err := editor.OpenFile(ctx, repo, "zoo")
	require.NoError(t, err)
	require.NoError(t, f.SelectPhrase("cat"))
	require.NoError(t, svc.Define(ctx, f, core.Formatting{Text: "A small feline"}))

	got, err := os.ReadFile(filepath.Join(dir, "zoo.md"))
	require.NoError(t, err)
	assert.Equal(t, "---\n# keep me\ntags: [a, b]\ntitle: \"Zoo\"\n---\nA [[Definitions#^Cat|cat]] sat.\r\nNext line.\r\n", string(got))
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := editor.LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	n.Notify("Defined!")
	assert.Contains(t, buf.String(), `message=Defined!`)

	// A zero value is silent.
	editor.LogNotifier{}.Notify("ignored")
	editor.WriterNotifier{}.Notify("ignored")
}
