package core

import (
	"sort"
	"strings"
	"sync"
)

// TermIndex maps term phrases to definition text. It is a lookup cache over
// the glossary document, which stays the source of truth: Replace rebuilds
// it wholesale, Set and Delete keep it in step with single actions.
type TermIndex struct {
	mu    sync.RWMutex
	terms map[string]string
}

// NewTermIndex returns an empty index.
func NewTermIndex() *TermIndex {
	return &TermIndex{terms: make(map[string]string)}
}

// Replace discards the current contents and takes a copy of terms.
func (i *TermIndex) Replace(terms map[string]string) {
	next := make(map[string]string, len(terms))
	for k, v := range terms {
		next[k] = v
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.terms = next
}

// Set records the definition of term.
func (i *TermIndex) Set(term, definition string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.terms[term] = definition
}

// Get returns the definition of term. An exact match wins; otherwise the
// first case-insensitive match is used, since a term typed as "apple" is
// stored in the document as "Apple".
func (i *TermIndex) Get(term string) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if d, ok := i.terms[term]; ok {
		return d, true
	}
	for k, d := range i.terms {
		if strings.EqualFold(k, term) {
			return d, true
		}
	}
	return "", false
}

// Delete removes every key equal to term under case folding, mirroring the
// case-insensitive match used when the entry is removed from the document.
// It reports whether anything was removed.
func (i *TermIndex) Delete(term string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	removed := false
	for k := range i.terms {
		if strings.EqualFold(k, term) {
			delete(i.terms, k)
			removed = true
		}
	}
	return removed
}

// Len returns the number of indexed terms.
func (i *TermIndex) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.terms)
}

// Terms returns the indexed terms sorted case-insensitively.
func (i *TermIndex) Terms() []string {
	i.mu.RLock()
	out := make([]string, 0, len(i.terms))
	for k := range i.terms {
		out = append(out, k)
	}
	i.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool {
		return strings.ToLower(out[a]) < strings.ToLower(out[b])
	})
	return out
}

// Snapshot returns a copy of the index.
func (i *TermIndex) Snapshot() map[string]string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make(map[string]string, len(i.terms))
	for k, v := range i.terms {
		out[k] = v
	}
	return out
}
