package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/lexicon/pkg/core"
)

// Buffer is a text buffer with a selected byte range [Start, End).
type Buffer struct {
	Text       string
	Start, End int
}

// NewBuffer returns a buffer whose selection covers all of text.
func NewBuffer(text string) *Buffer {
	return &Buffer{Text: text, End: len(text)}
}

// Select sets the selection to [start, end).
func (b *Buffer) Select(start, end int) error {
	if start < 0 || end < start || end > len(b.Text) {
		return fmt.Errorf("selection [%d, %d) out of range for %d bytes", start, end, len(b.Text))
	}
	b.Start, b.End = start, end
	return nil
}

// SelectFirst selects the first occurrence of s.
func (b *Buffer) SelectFirst(s string) error {
	i := strings.Index(b.Text, s)
	if s == "" || i < 0 {
		return fmt.Errorf("%w: %q", ErrNoMatch, s)
	}
	b.Start, b.End = i, i+len(s)
	return nil
}

// Selection implements core.Editor.
func (b *Buffer) Selection() string {
	return b.Text[b.Start:b.End]
}

// ReplaceSelection implements core.Editor. The selection then covers the
// inserted text.
func (b *Buffer) ReplaceSelection(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.Text = b.Text[:b.Start] + text + b.Text[b.End:]
	b.End = b.Start + len(text)
	return nil
}

var _ core.Editor = (*Buffer)(nil)
