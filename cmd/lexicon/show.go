package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the raw glossary document",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		v, err := openVault(ctx, cmd, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		doc, err := v.service.EnsureDocument(ctx)
		if err != nil {
			fatal("Failed to read glossary", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), doc.Content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
