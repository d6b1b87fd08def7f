package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	linksJSON bool
	linksGlob string
)

// linksCmd represents the links command
var linksCmd = &cobra.Command{
	Use:   "links [phrase]",
	Short: "List the notes that link to the glossary",
	Long: `Scan the vault for glossary links, optionally only those for [phrase] and only
in the notes whose path matches --glob (e.g. "journal/**").`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		v, err := openVault(ctx, cmd, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		var phrase string
		if len(args) == 1 {
			phrase = args[0]
		}
		refs, err := v.service.References(ctx, linksGlob, phrase)
		if err != nil {
			fatal("Failed to scan vault", err)
		}

		out := cmd.OutOrStdout()
		if linksJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(refs); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, r := range refs {
			fmt.Fprintf(out, "%s\t%s\t%s\n", r.Document, r.Key, r.Phrase)
		}
	},
}

func init() {
	rootCmd.AddCommand(linksCmd)
	linksCmd.Flags().BoolVar(&linksJSON, "json", false, "Output in JSON format")
	linksCmd.Flags().StringVar(&linksGlob, "glob", "", "Only scan notes matching this pattern")
}
