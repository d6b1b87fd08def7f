package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/lexicon/pkg/adapters/fs"
	"github.com/aretw0/lexicon/pkg/adapters/memory"
	"github.com/aretw0/lexicon/pkg/core"
)

// Init prepares the storage of a vault and returns it.
// The uri argument is adapter-specific: a directory for "fs", ignored by "memory".
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := parseOptions(opts)

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	switch o.adapter {
	case AdapterFS:
		repo = initFS(uri, o)
	case AdapterMemory:
		repo = memory.NewRepository()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// initFS builds the filesystem repository for path.
func initFS(path string, o *options) *fs.Repository {
	autoInit, _ := o.config["auto_init"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	gitless, explicit := o.config["gitless"].(bool)
	if !explicit {
		gitless = detectGitless(path, systemDir, autoInit)
		if gitless && o.logger != nil {
			o.logger.Debug("auto-detected gitless mode", "reason", ".git missing")
		}
	}

	return fs.NewRepository(fs.Config{
		Path:         path,
		AutoInit:     autoInit,
		Gitless:      gitless,
		MustExist:    mustExist || !autoInit,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		SystemDir:    systemDir,
		ErrorHandler: errorHandler,
	})
}

// detectGitless decides the versioning mode when it was not configured.
// An existing .git means versioned. Otherwise a fresh vault created with
// auto-init is versioned, while an existing gitless vault (system dir
// present) or a plain folder stays gitless.
func detectGitless(path, systemDir string, autoInit bool) bool {
	if hasFile(path, ".git") {
		return false
	}
	if !autoInit || hasFile(path, systemDir) {
		return true
	}
	return !fs.IsGitInstalled()
}

// SettingsPath returns where the settings of the vault at root are kept.
func SettingsPath(root, systemDir, name string) string {
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}
	return filepath.Join(root, systemDir, name)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
