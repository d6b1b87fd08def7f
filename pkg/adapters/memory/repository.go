// Package memory provides an in-memory core.Repository. It backs dry runs
// and tests that do not need a vault on disk.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/lexicon/pkg/core"
)

// Repository keeps documents in a map. It implements core.Watchable: every
// Save and Delete is broadcast to the watchers whose pattern matches.
type Repository struct {
	mu       sync.RWMutex
	docs     map[string]core.Document
	watchers map[int]*watcher
	nextID   int
}

type watcher struct {
	pattern string
	ch      chan core.Event
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{
		docs:     make(map[string]core.Document),
		watchers: make(map[int]*watcher),
	}
}

// Initialize is a no-op.
func (r *Repository) Initialize(ctx context.Context) error {
	return nil
}

// Save stores a copy of doc.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document has no ID")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	_, existed := r.docs[doc.ID]
	doc.Metadata = maps.Clone(doc.Metadata)
	r.docs[doc.ID] = doc
	r.mu.Unlock()

	eType := core.EventCreate
	if existed {
		eType = core.EventModify
	}
	r.broadcast(core.Event{Type: eType, ID: doc.ID, Timestamp: time.Now().Unix()})
	return nil
}

// Get returns a copy of the stored document or core.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	doc.Metadata = maps.Clone(doc.Metadata)
	return doc, nil
}

// List returns all documents sorted by ID.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]core.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		doc.Metadata = maps.Clone(doc.Metadata)
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// ListMatching returns the documents whose ID matches a doublestar pattern,
// sorted by ID.
func (r *Repository) ListMatching(ctx context.Context, pattern string) ([]core.Document, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var docs []core.Document
	for _, doc := range all {
		if ok, _ := doublestar.Match(pattern, doc.ID); ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Delete removes a document.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.docs[id]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	delete(r.docs, id)
	r.mu.Unlock()

	r.broadcast(core.Event{Type: core.EventDelete, ID: id, Timestamp: time.Now().Unix()})
	return nil
}

// Watch implements core.Watchable. Events that arrive while the watcher's
// buffer is full are dropped.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	w := &watcher{pattern: pattern, ch: make(chan core.Event, 16)}

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.watchers[id] = w
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.watchers, id)
		close(w.ch)
		r.mu.Unlock()
	}()

	return w.ch, nil
}

func (r *Repository) broadcast(e core.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.watchers {
		if ok, _ := doublestar.Match(w.pattern, e.ID); !ok {
			continue
		}
		select {
		case w.ch <- e:
		default:
		}
	}
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Documents int `json:"documents"`
	Watchers  int `json:"watchers"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{Documents: len(r.docs), Watchers: len(r.watchers)}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory-repository"
}

var (
	_ core.Repository              = (*Repository)(nil)
	_ core.Watchable               = (*Repository)(nil)
	_ core.Finder                  = (*Repository)(nil)
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
