package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/lexicon/pkg/adapters/editor"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear <file> <phrase>",
	Short: "Remove the definition behind a link",
	Long: `Find the first glossary link for <phrase> in <file>, remove its entry from the
glossary and put the plain phrase back in place of the link.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		v, err := openVault(ctx, cmd, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		id, err := v.documentID(args[0])
		if err != nil {
			fatal("Invalid file", err)
		}
		f, err := editor.OpenFile(ctx, v.repo, id)
		if err != nil {
			fatal("Failed to open note", err)
		}
		if err := f.SelectLink(v.service.Linker(), args[1]); err != nil {
			fatal("Failed to select link", err)
		}

		if err := v.service.Clear(ctx, f); err != nil {
			exitForAction("Failed to clear term", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
