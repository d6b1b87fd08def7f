package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lexicon"
	"github.com/aretw0/lexicon/internal/config"
	"github.com/aretw0/lexicon/internal/platform"
	"github.com/aretw0/lexicon/pkg/adapters/editor"
	"github.com/aretw0/lexicon/pkg/adapters/fs"
	"github.com/aretw0/lexicon/pkg/core"
)

// vault bundles what every command needs.
type vault struct {
	root     string
	repo     core.Repository
	service  *core.Service
	settings config.Settings
}

// resolveRoot returns --vault, else the nearest vault above the working
// directory, else the working directory itself.
func resolveRoot() (string, error) {
	if vaultPath != "" {
		return filepath.Abs(vaultPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, err := lexicon.FindVaultRoot(cwd, systemDir)
	if errors.Is(err, platform.ErrRootNotFound) {
		return cwd, nil
	}
	return root, err
}

func settingsPath(root string) string {
	return platform.SettingsPath(root, systemDir, config.FileName)
}

// openVault loads the settings and builds the service. Notices are printed
// on the command's output.
func openVault(ctx context.Context, cmd *cobra.Command, autoInit bool) (*vault, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault: %w", err)
	}

	settings, err := config.Load(settingsPath(root))
	if err != nil {
		return nil, err
	}

	opts := []lexicon.Option{
		lexicon.WithAutoInit(autoInit),
		lexicon.WithSystemDir(systemDir),
		lexicon.WithLogger(slog.Default()),
	}
	if gitless {
		opts = append(opts, lexicon.WithVersioning(false))
	}

	repo, err := lexicon.Init(root, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault %s: %w", root, err)
	}

	svc, err := lexicon.New(root, append(opts,
		lexicon.WithRepository(repo),
		lexicon.WithDocument(settings.Document),
		lexicon.WithNotifier(editor.WriterNotifier{W: cmd.OutOrStdout()}),
	)...)
	if err != nil {
		return nil, err
	}
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}

	return &vault{root: root, repo: repo, service: svc, settings: settings}, nil
}

// documentID maps a path given on the command line to a document ID of the
// vault. Paths are taken relative to the working directory first, then to
// the vault root.
func (v *vault) documentID(arg string) (string, error) {
	rel := arg
	if abs, err := filepath.Abs(arg); err == nil {
		if _, statErr := os.Stat(abs); filepath.IsAbs(arg) || statErr == nil {
			if rel, err = filepath.Rel(v.root, abs); err != nil {
				return "", err
			}
		}
	}
	id := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(rel)), fs.DocumentExt)
	if id == "." || id == ".." || strings.HasPrefix(id, "../") {
		return "", fmt.Errorf("%s is outside the vault", arg)
	}
	return id, nil
}

// exitForAction stops after a failed define or clear. Selection problems
// were already shown to the user as a notice.
func exitForAction(msg string, err error) {
	if errors.Is(err, core.ErrInvalidSelection) || errors.Is(err, core.ErrInvalidDefinition) {
		os.Exit(1)
	}
	fatal(msg, err)
}
