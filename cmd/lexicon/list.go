package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lexicon/pkg/glossary"
)

var (
	listJSON   bool
	listLetter string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the glossary entries",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		v, err := openVault(ctx, cmd, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		entries, err := v.service.Entries(ctx)
		if err != nil {
			fatal("Failed to read glossary", err)
		}
		entries = filterLetter(entries, listLetter)

		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(entries); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\t%s\n", e.Letter(), e.Term, e.Definition)
		}
	},
}

func filterLetter(entries []glossary.Entry, letter string) []glossary.Entry {
	if letter == "" {
		return entries
	}
	var out []glossary.Entry
	for _, e := range entries {
		if strings.EqualFold(e.Letter(), letter) {
			out = append(out, e)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listLetter, "letter", "", "Only list the section of this letter")
}
