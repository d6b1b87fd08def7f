package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrReadOnly is returned by write operations on a read-only repository.
	ErrReadOnly = errors.New("repository is in read-only mode")

	// ErrInvalidSelection groups every rejected editor selection.
	ErrInvalidSelection = errors.New("invalid selection")

	ErrTermMustStartWithLetter = fmt.Errorf("%w: term must start with an alphabetical character", ErrInvalidSelection)
	ErrTermNotAlphanumeric     = fmt.Errorf("%w: term can only contain alphanumeric characters", ErrInvalidSelection)
	ErrNotDefinitionLink       = fmt.Errorf("%w: selection is not a definition link", ErrInvalidSelection)

	// ErrGlossaryInUse is returned by Reset while documents still link to
	// the glossary.
	ErrGlossaryInUse = errors.New("glossary is still referenced")

	// ErrInvalidDefinition is returned when the definition text cannot be
	// stored on a single glossary line.
	ErrInvalidDefinition = errors.New("definition must be a single line without '<'")
)

// Notice returns the message shown to the user for err.
func Notice(err error) string {
	switch {
	case errors.Is(err, ErrTermMustStartWithLetter):
		return "Term must start with an alphabetical character!"
	case errors.Is(err, ErrTermNotAlphanumeric):
		return "Term can only contain alphanumeric characters!"
	case errors.Is(err, ErrNotDefinitionLink):
		return "Selection is not a defined term!"
	case errors.Is(err, ErrInvalidDefinition):
		return "Definition must fit on a single line!"
	case err == nil:
		return ""
	default:
		return "Something went wrong: " + err.Error()
	}
}
