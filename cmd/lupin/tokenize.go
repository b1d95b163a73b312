package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lupin/internal/diag"
	"lupin/internal/diagfmt"
	"lupin/internal/driver"
	"lupin/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.lp|directory>",
		Short: "Tokenize a lupin source file or directory",
		Long:  `Tokenize breaks a lupin source file, or every *.lp file in a directory, into tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	cmd.Flags().Int("max-token-len", 0, "maximum byte length of one token (0=unlimited)")
	cmd.Flags().Bool("cache", false, "reuse tokens from the on-disk cache")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("progress", false, "show live progress for directory processing")
	cmd.Flags().Bool("watch", false, "rerun whenever sources change")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	watching, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}

	once := func(ctx context.Context, s *settings) error {
		opts, err := s.driverOptions()
		if err != nil {
			return err
		}
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

		if !st.IsDir() {
			res, err := driver.Tokenize(ctx, path, opts)
			if err != nil {
				return fmt.Errorf("tokenization failed: %w", err)
			}
			s.printDiagnostics(errOut, res.Bag, res.FileSet)
			switch format {
			case "json":
				err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
			case "yaml":
				err = diagfmt.FormatTokensYAML(out, res.Tokens, res.FileSet)
			default:
				err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
			}
			if err != nil {
				return err
			}
			return exitStatus(res.Bag)
		}

		var (
			fs      *source.FileSet
			results []driver.TokenizeDirResult
		)
		err = runDir(ctx, s, "tokenize "+path, errOut, func(events chan<- driver.FileEvent) error {
			opts.Events = events
			var err error
			fs, results, err = driver.TokenizeDir(ctx, path, opts)
			return err
		})
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		bags := make([]*diag.Bag, 0, len(results))
		for _, r := range results {
			s.printDiagnostics(errOut, r.Bag, fs)
			bags = append(bags, r.Bag)
		}

		if format != "pretty" {
			output := make(map[string][]diagfmt.TokenOutput, len(results))
			for _, r := range results {
				output[relPath(path, r.Path)] = diagfmt.BuildTokensOutput(r.Tokens, fs)
			}
			if err := encodeDocument(out, format, output); err != nil {
				return err
			}
			return exitStatus(bags...)
		}

		for idx, r := range results {
			if !s.quiet {
				fmt.Fprintf(out, "== %s ==\n", relPath(path, r.Path))
			}
			if err := diagfmt.FormatTokensPretty(out, r.Tokens, fs); err != nil {
				return err
			}
			if !s.quiet && idx < len(results)-1 {
				fmt.Fprintln(out)
			}
		}
		return exitStatus(bags...)
	}
	return runPipeline(cmd, func(ctx context.Context, s *settings) error {
		if watching {
			return runWatched(ctx, cmd, path, s, once)
		}
		return once(ctx, s)
	})
}

// encodeDocument пишет v как один JSON- или YAML-документ
func encodeDocument(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// exitStatus returns errReported when any bag holds an error.
func exitStatus(bags ...*diag.Bag) error {
	for _, b := range bags {
		if b != nil && b.HasErrors() {
			return errReported
		}
	}
	return nil
}
