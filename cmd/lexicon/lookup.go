package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Print the definition of a term",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := openVault(context.Background(), cmd, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		def, ok := v.service.Lookup(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "%q is not defined\n", args[0])
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), def)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
