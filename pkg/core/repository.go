package core

import "context"

// Repository defines the contract for storing and retrieving documents.
// It is the DocumentStore the glossary sits on; adhering to it keeps the
// core independent of the storage mechanism.
type Repository interface {
	// Save persists a document. It creates if not exists, or updates if it does.
	Save(ctx context.Context, doc Document) error

	// Get retrieves a document by its ID. Missing documents yield ErrNotFound.
	Get(ctx context.Context, id string) (Document, error)

	// List returns all available documents.
	List(ctx context.Context) ([]Document, error)

	// Delete removes a document by its ID.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (e.g., create directories, git init).
	Initialize(ctx context.Context) error
}

// Finder is implemented by repositories that can select documents by a
// doublestar pattern on their ID (e.g. "notes/**").
type Finder interface {
	ListMatching(ctx context.Context, pattern string) ([]Document, error)
}

// Watchable is implemented by repositories that can report changes made
// outside the service (a user editing the glossary by hand).
type Watchable interface {
	// Watch emits events for documents whose ID matches pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Editor is the editing surface a term is selected in.
type Editor interface {
	// Selection returns the currently selected text.
	Selection() string

	// ReplaceSelection swaps the selected text for text.
	ReplaceSelection(ctx context.Context, text string) error
}

// Notifier displays transient messages to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }
