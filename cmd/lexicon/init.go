package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a lexicon vault",
	Long: `Create the system directory, the settings file and a glossary with one empty
section per letter. Unless --gitless is set, the vault is also a git repository.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v, err := openVault(context.Background(), cmd, true)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}

		path := settingsPath(v.root)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := v.settings.Save(path); err != nil {
				fatal("Failed to write settings", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized lexicon vault in", v.root)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
