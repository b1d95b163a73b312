package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lupin/internal/watch"
)

// runWatched reruns once after every change under path until interrupted.
// Diagnostics of a run never stop the loop.
func runWatched(ctx context.Context, cmd *cobra.Command, path string, s *settings, once func(context.Context, *settings) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errOut := cmd.ErrOrStderr()
	return watch.Run(ctx, path, watch.Options{
		OnError: func(err error) {
			fmt.Fprintf(errOut, "watch: %v\n", err)
		},
	}, func(ctx context.Context, changed []string) {
		if len(changed) > 0 && !s.quiet {
			fmt.Fprintf(errOut, "-- %d file(s) changed, rerunning\n", len(changed))
		}
		if err := once(ctx, s); err != nil && !errors.Is(err, errReported) {
			fmt.Fprintf(errOut, "lupin: %v\n", err)
		}
	})
}
