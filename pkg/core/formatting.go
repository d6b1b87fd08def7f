package core

import "github.com/aretw0/lexicon/pkg/glossary"

// Formatting carries the definition text and the styles chosen for one
// Define call. Callers usually start from the persisted defaults and
// override per invocation.
type Formatting struct {
	Text       string
	Term       glossary.Style
	Definition glossary.Style
}
