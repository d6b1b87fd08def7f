package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lexicon"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lexicon",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lexicon version %s\n", strings.TrimSpace(lexicon.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
