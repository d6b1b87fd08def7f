package lexicon

import _ "embed"

// Version is the release of the library and of the lexicon binary.
//
//go:embed VERSION
var Version string
