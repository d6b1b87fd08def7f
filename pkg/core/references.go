package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/lexicon/pkg/glossary"
)

// Reference is a link to the glossary found in another document.
type Reference struct {
	Document string `json:"document"`
	glossary.Link
}

// References scans the vault for links to the glossary. An empty pattern
// scans every document; otherwise the repository must be a Finder. A
// non-empty phrase keeps only the links whose phrase matches it, ignoring case.
func (s *Service) References(ctx context.Context, pattern, phrase string) ([]Reference, error) {
	var docs []Document
	var err error
	if pattern == "" {
		docs, err = s.repo.List(ctx)
	} else {
		f, ok := s.repo.(Finder)
		if !ok {
			return nil, errors.New("repository does not support patterns")
		}
		docs, err = f.ListMatching(ctx, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var refs []Reference
	for _, doc := range docs {
		if doc.ID == s.document {
			continue
		}
		for _, link := range s.linker.FindAll(doc.Content) {
			if phrase != "" && !strings.EqualFold(link.Phrase, phrase) {
				continue
			}
			refs = append(refs, Reference{Document: doc.ID, Link: link})
		}
	}
	return refs, nil
}

// Reset deletes the glossary and seeds a fresh one. Unless force is set it
// refuses while any document still links to the glossary, since those links
// would point at nothing.
func (s *Service) Reset(ctx context.Context, force bool) error {
	if !force {
		refs, err := s.References(ctx, "", "")
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return fmt.Errorf("%w: %d links", ErrGlossaryInUse, len(refs))
		}
	}

	delCtx := ctx
	if _, ok := ctx.Value(ChangeReasonKey).(string); !ok {
		delCtx = context.WithValue(ctx, ChangeReasonKey, "reset "+s.document)
	}
	if err := s.repo.Delete(delCtx, s.document); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete glossary: %w", err)
	}

	s.index.Replace(nil)
	if _, err := s.EnsureDocument(ctx); err != nil {
		return err
	}
	s.logger.Info("glossary reset", "document", s.document)
	s.notifier.Notify("Glossary reset!")
	return nil
}
