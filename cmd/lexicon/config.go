package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/lexicon/internal/config"
)

var configSet []string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or change the vault settings",
	Long: `Without flags, print the settings used for new entries. Each --set key=value
changes one setting (document, term_colour, term_bold, term_italics,
defn_colour, defn_bold, defn_italics) and saves the file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := resolveRoot()
		if err != nil {
			fatal("Failed to resolve vault", err)
		}
		path := settingsPath(root)

		settings, err := config.Load(path)
		if err != nil {
			fatal("Failed to load settings", err)
		}

		if len(configSet) > 0 {
			settings, err = applySettings(settings, configSet)
			if err != nil {
				fatal("Invalid setting", err)
			}
			if err := settings.Save(path); err != nil {
				fatal("Failed to save settings", err)
			}
		}

		out, err := yaml.Marshal(settings)
		if err != nil {
			fatal("Failed to encode settings", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	},
}

func applySettings(s config.Settings, pairs []string) (config.Settings, error) {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return s, fmt.Errorf("expected key=value, got %q", pair)
		}
		if err := s.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return s, err
		}
	}
	return s, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringArrayVar(&configSet, "set", nil, "Set a value (key=value), repeatable")
}
