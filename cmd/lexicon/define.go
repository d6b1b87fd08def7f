package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/lexicon/internal/config"
	"github.com/aretw0/lexicon/pkg/adapters/editor"
)

var definition string

// defineCmd represents the define command
var defineCmd = &cobra.Command{
	Use:   "define <file> <phrase>",
	Short: "Define a phrase of a note",
	Long: `Add <phrase> to the glossary with the definition given by --definition, then
replace its first occurrence in <file> with a link to the new entry.
Style flags override the vault settings for this entry only.`,
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
		if err := f.SelectPhrase(args[1]); err != nil {
			fatal("Failed to select phrase", err)
		}

		settings, err := applyStyleFlags(v.settings, cmd.Flags())
		if err != nil {
			fatal("Invalid style", err)
		}

		if err := v.service.Define(ctx, f, settings.Formatting(definition)); err != nil {
			exitForAction("Failed to define term", err)
		}
	},
}

// styleFlags maps flag names to setting keys.
var styleFlags = map[string]string{
	"term-colour":  "term_colour",
	"term-bold":    "term_bold",
	"term-italics": "term_italics",
	"defn-colour":  "defn_colour",
	"defn-bold":    "defn_bold",
	"defn-italics": "defn_italics",
}

// applyStyleFlags returns s with every style flag set on the command line
// applied on top.
func applyStyleFlags(s config.Settings, flags *pflag.FlagSet) (config.Settings, error) {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := styleFlags[f.Name]
		if !ok || err != nil {
			return
		}
		err = s.Set(key, f.Value.String())
	})
	return s, err
}

func init() {
	rootCmd.AddCommand(defineCmd)
	defineCmd.Flags().StringVarP(&definition, "definition", "d", "", "Definition text (single line)")
	defineCmd.Flags().String("term-colour", "", "Term colour, #RRGGBB (default: from settings)")
	defineCmd.Flags().Bool("term-bold", false, "Bold term (default: from settings)")
	defineCmd.Flags().Bool("term-italics", false, "Italic term (default: from settings)")
	defineCmd.Flags().String("defn-colour", "", "Definition colour, #RRGGBB (default: from settings)")
	defineCmd.Flags().Bool("defn-bold", false, "Bold definition (default: from settings)")
	defineCmd.Flags().Bool("defn-italics", false, "Italic definition (default: from settings)")
	defineCmd.MarkFlagRequired("definition")
}
