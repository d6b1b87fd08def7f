package lexicon

import (
	"log/slog"

	"github.com/aretw0/lexicon/internal/platform"
	"github.com/aretw0/lexicon/pkg/core"
)

// --- Configuration ---

// Option defines a functional option for configuring lexicon.
type Option = platform.Option

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = platform.AdapterFS
	AdapterMemory = platform.AdapterMemory
)

// WithAutoInit enables automatic initialization of the vault (creates directory and git init).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables version control (Git).
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly rejects every write with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".lexicon").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithDocument sets the name of the glossary document.
func WithDocument(id string) Option {
	return platform.WithDocument(id)
}

// WithNotifier sets where user-facing notices go.
func WithNotifier(n core.Notifier) Option {
	return platform.WithNotifier(n)
}

// WithEventBuffer allows specifying the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a glossary service for the vault at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Utils ---

// FindVaultRoot looks upwards from startDir for a directory holding the
// system dir or a .git directory.
func FindVaultRoot(startDir, systemDir string) (string, error) {
	return platform.FindRoot(startDir, systemDir)
}
