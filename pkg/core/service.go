package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/lexicon/pkg/glossary"
)

const defaultEventBuffer = 100

// Service manages the glossary document: it seeds it, keeps the term index
// in sync with it and runs the define/clear actions against an Editor.
type Service struct {
	repo            Repository
	document        string
	linker          *glossary.Linker
	index           *TermIndex
	notifier        Notifier
	logger          *slog.Logger
	eventBufferSize int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithDocument sets the ID of the glossary document. Defaults to "Definitions".
func WithDocument(id string) ServiceOption {
	return func(s *Service) {
		if id != "" {
			s.document = id
		}
	}
}

// WithNotifier sets where user-facing messages go.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIndex makes the service maintain idx instead of a private index.
func WithIndex(idx *TermIndex) ServiceOption {
	return func(s *Service) {
		if idx != nil {
			s.index = idx
		}
	}
}

// WithEventBuffer sets the size of the buffer between the repository watcher
// and Watch consumers. Zero means default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewService creates a new Service on top of repo.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		document:        glossary.DefaultDocument,
		index:           NewTermIndex(),
		notifier:        NotifierFunc(func(string) {}),
		logger:          slog.New(slog.DiscardHandler),
		eventBufferSize: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.linker = glossary.NewLinker(s.document)
	return s
}

// Document returns the ID of the glossary document.
func (s *Service) Document() string { return s.document }

// Index returns the term index owned by the service.
func (s *Service) Index() *TermIndex { return s.index }

// Linker returns the link format used for defined terms.
func (s *Service) Linker() *glossary.Linker { return s.linker }

// EnsureDocument returns the glossary document, creating it with one empty
// section per letter when it is missing and reseeding it when it is empty.
// It is safe to call before every mutation.
func (s *Service) EnsureDocument(ctx context.Context) (Document, error) {
	doc, err := s.repo.Get(ctx, s.document)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Document{}, fmt.Errorf("failed to read glossary: %w", err)
		}
		s.logger.Info("creating glossary", "document", s.document)
		doc = Document{ID: s.document}
	}
	if doc.Content != "" {
		return doc, nil
	}

	doc.ID = s.document
	doc.Content = glossary.Seed()
	if err := s.save(ctx, doc, "seed "+s.document); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Load ensures the glossary exists and rebuilds the index from it.
func (s *Service) Load(ctx context.Context) error {
	doc, err := s.EnsureDocument(ctx)
	if err != nil {
		return err
	}
	s.index.Replace(glossary.Parse(doc.Content))
	s.logger.Debug("glossary loaded", "document", s.document, "terms", s.index.Len())
	return nil
}

// Define adds the selected phrase to the glossary with the given formatting,
// then replaces the selection with a link to the new entry.
func (s *Service) Define(ctx context.Context, ed Editor, f Formatting) error {
	phrase := ed.Selection()
	if err := validateTerm(phrase); err != nil {
		s.notifier.Notify(Notice(err))
		return err
	}
	if strings.ContainsAny(f.Text, "\r\n<") {
		s.notifier.Notify(Notice(ErrInvalidDefinition))
		return ErrInvalidDefinition
	}

	doc, err := s.EnsureDocument(ctx)
	if err != nil {
		return err
	}

	key := glossary.NormalizeKey(phrase)
	s.checkCollision(doc.Content, phrase, key)

	prev := doc.Content
	doc.Content = glossary.Insert(doc.Content,
		glossary.BuildTermLine(f.Term, phrase),
		glossary.BuildDefinitionLine(f.Definition, f.Text, key),
		phrase)
	if err := s.save(ctx, doc, "define "+phrase); err != nil {
		return err
	}

	if err := ed.ReplaceSelection(ctx, s.linker.Format(key, phrase)); err != nil {
		s.restore(ctx, doc, prev, "undo define "+phrase)
		return fmt.Errorf("failed to link %q: %w", phrase, err)
	}

	s.index.Set(phrase, f.Text)
	s.logger.Info("term defined", "term", phrase, "key", key)
	s.notifier.Notify("Defined!")
	return nil
}

// Clear removes the entry behind the selected link from the glossary and
// puts the plain phrase back in place of the link. A link whose entry is
// already gone still counts as cleared.
func (s *Service) Clear(ctx context.Context, ed Editor) error {
	_, phrase, ok := s.linker.Parse(ed.Selection())
	if !ok {
		s.notifier.Notify(Notice(ErrNotDefinitionLink))
		return ErrNotDefinitionLink
	}

	doc, err := s.EnsureDocument(ctx)
	if err != nil {
		return err
	}

	prev := doc.Content
	doc.Content = glossary.Remove(doc.Content, phrase)
	changed := doc.Content != prev
	if changed {
		if err := s.save(ctx, doc, "clear "+phrase); err != nil {
			return err
		}
	} else {
		s.logger.Debug("term not in glossary", "term", phrase)
	}

	if err := ed.ReplaceSelection(ctx, phrase); err != nil {
		if changed {
			s.restore(ctx, doc, prev, "undo clear "+phrase)
		}
		return fmt.Errorf("failed to unlink %q: %w", phrase, err)
	}
	s.index.Delete(phrase)

	s.logger.Info("term cleared", "term", phrase)
	s.notifier.Notify("Cleared definition!")
	return nil
}

// Lookup returns the indexed definition of term.
func (s *Service) Lookup(term string) (string, bool) {
	return s.index.Get(term)
}

// Terms returns the indexed terms in alphabetical order.
func (s *Service) Terms() []string {
	return s.index.Terms()
}

// Entries reads the glossary and returns its entries in document order.
func (s *Service) Entries(ctx context.Context) ([]glossary.Entry, error) {
	doc, err := s.EnsureDocument(ctx)
	if err != nil {
		return nil, err
	}
	return glossary.ParseEntries(doc.Content), nil
}

// Watch rebuilds the index whenever the glossary changes in the repository,
// e.g. when it is edited by hand. The returned channel carries the events
// that triggered a reload and is closed when ctx is done.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}

	upstream, err := w.Watch(ctx, s.document)
	if err != nil {
		return nil, err
	}

	out := make(chan Event, s.eventBufferSize)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-upstream:
				if !ok {
					return nil
				}
				s.reload(ctx, e)
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("glossary watcher failed", "error", err)
	}))

	return out, nil
}

func (s *Service) reload(ctx context.Context, e Event) {
	if e.Type == EventDelete {
		s.index.Replace(nil)
		s.logger.Warn("glossary deleted", "document", s.document)
		return
	}

	doc, err := s.repo.Get(ctx, s.document)
	if err != nil {
		s.logger.Error("failed to reload glossary", "document", s.document, "error", err)
		return
	}
	s.index.Replace(glossary.Parse(doc.Content))
	s.logger.Debug("glossary reloaded", "event", e.String(), "terms", s.index.Len())
}

func (s *Service) save(ctx context.Context, doc Document, reason string) error {
	if _, ok := ctx.Value(ChangeReasonKey).(string); !ok {
		ctx = context.WithValue(ctx, ChangeReasonKey, reason)
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save glossary: %w", err)
	}
	return nil
}

// restore writes prev back after the editor refused the link change, so
// that no entry is left without its link and no link without its entry.
// If that write fails too, the index follows what is stored.
func (s *Service) restore(ctx context.Context, doc Document, prev, reason string) {
	stored := doc.Content
	doc.Content = prev
	if err := s.save(ctx, doc, reason); err != nil {
		s.logger.Error("failed to restore glossary", "document", s.document, "error", err)
	} else {
		stored = prev
	}
	s.index.Replace(glossary.Parse(stored))
}

// checkCollision logs when key is already used by another entry. Nothing is
// done about it: the new entry is still inserted.
func (s *Service) checkCollision(content, phrase, key string) {
	for _, e := range glossary.ParseEntries(content) {
		if e.Key == key {
			s.logger.Warn("anchor key already in use", "key", key, "term", phrase, "existing", e.Term)
			return
		}
	}
}

func validateTerm(phrase string) error {
	if glossary.ValidTerm(phrase) {
		return nil
	}
	if !glossary.StartsWithLetter(phrase) {
		return ErrTermMustStartWithLetter
	}
	return ErrTermNotAlphanumeric
}
