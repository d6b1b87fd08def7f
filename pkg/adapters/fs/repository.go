package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/lexicon/pkg/core"
	"github.com/aretw0/lexicon/pkg/git"
)

// DocumentExt is the extension of every document the repository manages.
const DocumentExt = ".md"

// DefaultSystemDir holds settings and the lock file inside a vault.
const DefaultSystemDir = ".lexicon"

// Repository implements core.Repository on a directory of markdown files,
// optionally versioned with Git.
type Repository struct {
	Path   string
	git    *git.Client
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	AutoInit     bool
	Gitless      bool
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	SystemDir    string      // e.g. ".lexicon"
	ErrorHandler func(error) // Called for watcher failures that are otherwise only logged.
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		Path:   config.Path,
		git:    git.NewClient(config.Path, config.SystemDir+".lock", config.Logger),
		config: config,
	}
}

// Initialize performs the necessary setup for the repository (mkdir, git init).
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
	} else {
		if err := os.MkdirAll(filepath.Join(r.Path, r.config.SystemDir), 0755); err != nil {
			return fmt.Errorf("failed to create vault directory: %w", err)
		}
	}

	if r.config.Gitless || r.config.ReadOnly {
		return nil
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !r.git.IsRepo() {
		if !r.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", r.Path)
		}
		if err := r.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	mod, err := r.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}
	if mod && wasNewRepo {
		if err := r.git.Add(".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		if err := r.git.Commit(fmt.Sprintf("chore: ignore %s lock", r.config.SystemDir)); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}
	return nil
}

// ensureIgnore keeps the lock file out of version control. Settings inside
// the system dir stay tracked.
func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.Path, ".gitignore")
	ignoreEntry := r.config.SystemDir + ".lock"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	var buf bytes.Buffer
	buf.Write(content)
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(ignoreEntry + "\n")

	if err := writeFileAtomic(ignorePath, buf.Bytes(), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes a document atomically and, unless the vault is gitless,
// commits it. The commit message is read from core.ChangeReasonKey.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if doc.ID == "" {
		return fmt.Errorf("document has no ID")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	filename := r.filename(doc.ID)
	fullPath := filepath.Join(r.Path, filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if r.config.Gitless {
		if err := writeFileAtomic(fullPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.config.Logger.Debug("document saved", "id", doc.ID, "path", fullPath)
		return nil
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := r.git.Add(filename); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}

	clean, err := r.git.IsClean(filename)
	if err != nil {
		return fmt.Errorf("failed to git status: %w", err)
	}
	if clean {
		return nil
	}

	msg := "update " + doc.ID
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	r.config.Logger.Debug("document committed", "id", doc.ID, "message", msg)
	return nil
}

// Get reads a document. Missing files yield core.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	data, err := os.ReadFile(filepath.Join(r.Path, r.filename(id)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return core.Document{}, err
	}

	doc, err := parse(data)
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to parse document %s: %w", id, err)
	}
	doc.ID = strings.TrimSuffix(id, DocumentExt)
	return doc, nil
}

// List returns every document of the vault, skipping .git and the system dir.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	return r.ListMatching(ctx, "**")
}

// ListMatching returns the documents whose ID matches a doublestar pattern
// (e.g. "notes/**"), sorted by ID.
func (r *Repository) ListMatching(ctx context.Context, pattern string) ([]core.Document, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	var docs []core.Document
	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == r.config.SystemDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) != DocumentExt || strings.HasPrefix(d.Name(), TempFilePrefix) {
			return nil
		}

		id, err := r.resolveID(path)
		if err != nil {
			return err
		}
		if ok, _ := doublestar.Match(pattern, id); !ok {
			return nil
		}

		doc, err := r.Get(ctx, id)
		if err != nil {
			r.config.Logger.Debug("skipping unreadable document", "id", id, "error", err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Delete removes a document.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	filename := r.filename(id)
	fullPath := filepath.Join(r.Path, filename)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	if r.config.Gitless {
		if err := os.Remove(fullPath); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		return nil
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := r.git.Rm(filename); err != nil {
		return fmt.Errorf("failed to git rm: %w", err)
	}

	msg := "delete " + id
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

func (r *Repository) filename(id string) string {
	if filepath.Ext(id) == DocumentExt {
		return filepath.FromSlash(id)
	}
	return filepath.FromSlash(id + DocumentExt)
}

// resolveID maps an absolute file path back to a document ID.
func (r *Repository) resolveID(path string) (string, error) {
	rel, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path outside vault: %s", path)
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), DocumentExt), nil
}

var _ core.Finder = (*Repository)(nil)

// IsGitInstalled checks if git is available in the system path.
func IsGitInstalled() bool {
	return git.IsInstalled()
}

// --- Serialization Helpers (Private) ---

const frontmatterDelim = "---"

// parse splits optional YAML frontmatter from the body. Both are kept byte
// for byte: the raw block goes to Frontmatter and line endings are left
// alone. A glossary begins with "# A", so it never has any.
func parse(data []byte) (core.Document, error) {
	doc := core.Document{Metadata: make(core.Metadata)}

	first, pos := nextLine(data, 0)
	if !isDelim(first) {
		doc.Content = string(data)
		return doc, nil
	}

	for pos < len(data) {
		line, next := nextLine(data, pos)
		if isDelim(line) {
			if err := yaml.Unmarshal(data[len(first):pos], &doc.Metadata); err != nil {
				return core.Document{}, fmt.Errorf("failed to parse frontmatter: %w", err)
			}
			if doc.Metadata == nil {
				doc.Metadata = make(core.Metadata)
			}
			doc.Frontmatter = string(data[:next])
			doc.Content = string(data[next:])
			return doc, nil
		}
		pos = next
	}
	return core.Document{}, errors.New("frontmatter started but no closing delimiter found")
}

// nextLine returns the line starting at pos, line ending included, and the
// offset of the line after it.
func nextLine(data []byte, pos int) ([]byte, int) {
	if i := bytes.IndexByte(data[pos:], '\n'); i >= 0 {
		return data[pos : pos+i+1], pos + i + 1
	}
	return data[pos:], len(data)
}

func isDelim(line []byte) bool {
	return string(bytes.TrimRight(line, "\r\n")) == frontmatterDelim
}

func serialize(doc core.Document) ([]byte, error) {
	var buf bytes.Buffer
	switch {
	case doc.Frontmatter != "" && frontmatterMatches(doc):
		buf.WriteString(doc.Frontmatter)
	case len(doc.Metadata) > 0:
		buf.WriteString(frontmatterDelim + "\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(map[string]any(doc.Metadata)); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
		buf.WriteString(frontmatterDelim + "\n")
	}
	buf.WriteString(doc.Content)
	return buf.Bytes(), nil
}

// frontmatterMatches reports whether the raw block still describes
// doc.Metadata, i.e. nobody changed the metadata since it was read.
func frontmatterMatches(doc core.Document) bool {
	parsed, err := parse([]byte(doc.Frontmatter))
	if err != nil || parsed.Content != "" {
		return false
	}
	if len(parsed.Metadata) == 0 && len(doc.Metadata) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]any(parsed.Metadata), map[string]any(doc.Metadata))
}
