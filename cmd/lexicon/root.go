package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lexicon/pkg/adapters/fs"
)

var (
	verbose   bool
	vaultPath string
	gitless   bool
	systemDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Keep a glossary of the terms defined across a markdown vault",
	Long: `Lexicon maintains Definitions.md, a glossary split into 26 alphabetical
sections. Defining a phrase in a note adds a styled entry to the glossary and
turns the phrase into a link to it; clearing the link removes the entry.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Vault directory (default: nearest parent holding .lexicon or .git)")
	rootCmd.PersistentFlags().BoolVar(&gitless, "gitless", false, "Do not version the vault with git")
	rootCmd.PersistentFlags().StringVar(&systemDir, "system-dir", fs.DefaultSystemDir, "Name of the vault system directory")
}
