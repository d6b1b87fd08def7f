package core

import "fmt"

// Metadata represents the flexible key-value pairs associated with a document.
type Metadata map[string]any

// Document is a named text file of the vault. The glossary is one of them;
// the documents terms get defined in are the others.
type Document struct {
	ID       string
	Content  string
	Metadata Metadata

	// Frontmatter is the metadata block exactly as it was read, delimiters
	// included. Stores that understand it write it back verbatim while
	// Metadata still matches it.
	Frontmatter string
}

// EventType represents the type of change in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the vault.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

type contextKey string

// ChangeReasonKey is the context key for passing the change reason (commit
// message) down to the repository during Save/Delete.
const ChangeReasonKey contextKey = "change_reason"
