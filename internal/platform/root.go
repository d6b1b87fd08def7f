package platform

import (
	"errors"
	"path/filepath"

	"github.com/aretw0/lexicon/pkg/adapters/fs"
)

// ErrRootNotFound is returned when no vault marker is found up to the
// filesystem root.
var ErrRootNotFound = errors.New("root not found")

// FindRoot looks upwards from startDir for a vault root: a directory that
// holds the system dir (".lexicon" unless systemDir says otherwise) or a
// .git directory. It returns the absolute path of that directory.
func FindRoot(startDir, systemDir string) (string, error) {
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, systemDir) || hasFile(dir, ".git") {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}
