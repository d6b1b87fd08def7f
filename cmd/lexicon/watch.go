package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/lexicon/pkg/adapters/lifecycle"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the term index whenever the glossary changes",
	Long: `Watch the glossary document and rebuild the term index on every change made
outside lexicon, e.g. when Definitions.md is edited by hand. Stops on Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		v, err := openVault(ctx, cmd, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		events, err := v.service.Watch(ctx)
		if err != nil {
			fatal("Failed to watch glossary", err)
		}

		src := lifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (%d terms)\n", v.service.Document(), len(v.service.Terms()))
		for e := range src.Events() {
			slog.Debug("glossary event", "event", e.String())
			fmt.Fprintf(out, "%s: %d terms\n", e, len(v.service.Terms()))
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
