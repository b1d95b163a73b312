package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lupin/internal/driver"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the on-disk token cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the token cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, func(ctx context.Context, s *settings) error {
				dir, err := s.manifest.CacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Drop every cached token stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, func(ctx context.Context, s *settings) error {
				dir, err := s.manifest.CacheDir()
				if err != nil {
					return err
				}
				cache, err := driver.OpenTokenCache(dir)
				if err != nil {
					return fmt.Errorf("failed to open token cache: %w", err)
				}
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("failed to clean token cache: %w", err)
				}
				if !s.quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "token cache cleared: %s\n", cache.Dir())
				}
				return nil
			})
		},
	})
	return cmd
}
