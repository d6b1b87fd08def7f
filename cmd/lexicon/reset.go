package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lexicon/pkg/core"
)

var resetForce bool

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the glossary and start from empty sections",
	Long: `Delete the glossary document and seed a new one. Refused while notes still
link to the glossary, unless --force is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		v, err := openVault(ctx, cmd, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		if err := v.service.Reset(ctx, resetForce); err != nil {
			if errors.Is(err, core.ErrGlossaryInUse) {
				fmt.Fprintf(os.Stderr, "%v (see `lexicon links`, or use --force)\n", err)
				os.Exit(1)
			}
			fatal("Failed to reset glossary", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Reset even if notes link to the glossary")
}
