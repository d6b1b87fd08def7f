// Package lexicon is the composition root of the glossary manager.
//
// It wires the glossary service (pkg/core) to a storage adapter
// (pkg/adapters/fs by default, optionally versioned with Git) using the
// functional options of internal/platform.
//
// A vault is a directory of markdown documents. One of them, the glossary
// ("Definitions.md" unless configured otherwise), holds 26 alphabetical
// sections of styled term/definition pairs. Defining a phrase inserts an
// entry at its sorted position and turns the phrase into a link to it;
// clearing the link removes the entry and restores the phrase.
//
// Usage:
//
//	svc, err := lexicon.New("./vault",
//		lexicon.WithAutoInit(true),
//		lexicon.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	if err := svc.Load(ctx); err != nil {
//		return err
//	}
//	def, ok := svc.Lookup("Sea Lion")
package lexicon
