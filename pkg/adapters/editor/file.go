package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/lexicon/pkg/core"
	"github.com/aretw0/lexicon/pkg/glossary"
)

// ErrNoMatch is returned when the text to select does not occur.
var ErrNoMatch = errors.New("no match in document")

// File edits a selection inside a document of a repository. Replacing the
// selection saves the document.
type File struct {
	repo core.Repository
	doc  core.Document
	buf  *Buffer
}

// OpenFile loads the document id from repo with an empty selection.
func OpenFile(ctx context.Context, repo core.Repository, id string) (*File, error) {
	doc, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &File{
		repo: repo,
		doc:  doc,
		buf:  &Buffer{Text: doc.Content},
	}, nil
}

// ID returns the ID of the edited document.
func (f *File) ID() string { return f.doc.ID }

// Content returns the current content of the document.
func (f *File) Content() string { return f.buf.Text }

// SelectPhrase selects the first occurrence of phrase.
func (f *File) SelectPhrase(phrase string) error {
	if err := f.buf.SelectFirst(phrase); err != nil {
		return fmt.Errorf("%s: %w", f.doc.ID, err)
	}
	return nil
}

// SelectLink selects the first link made by l whose phrase is phrase.
func (f *File) SelectLink(l *glossary.Linker, phrase string) error {
	start, end, ok := l.Find(f.buf.Text, phrase)
	if !ok {
		return fmt.Errorf("%s: %w: link for %q", f.doc.ID, ErrNoMatch, phrase)
	}
	return f.buf.Select(start, end)
}

// Selection implements core.Editor.
func (f *File) Selection() string {
	return f.buf.Selection()
}

// ReplaceSelection implements core.Editor.
func (f *File) ReplaceSelection(ctx context.Context, text string) error {
	if err := f.buf.ReplaceSelection(ctx, text); err != nil {
		return err
	}
	f.doc.Content = f.buf.Text
	if _, ok := ctx.Value(core.ChangeReasonKey).(string); !ok {
		ctx = context.WithValue(ctx, core.ChangeReasonKey, "link "+f.doc.ID)
	}
	return f.repo.Save(ctx, f.doc)
}

var _ core.Editor = (*File)(nil)
