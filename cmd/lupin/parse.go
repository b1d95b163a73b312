package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lupin/internal/diag"
	"lupin/internal/diagfmt"
	"lupin/internal/driver"
	"lupin/internal/parser"
	"lupin/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.lp|directory>",
		Short: "Parse a lupin source file or directory and print the syntax tree",
		Long:  `Parse reads one statement from a lupin source file, or from every *.lp file in a directory, and prints its syntax tree`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	cmd.Flags().String("entry", "statement", "grammar rule to start from (statement|assignment|funcdef)")
	cmd.Flags().Int("max-depth", parser.DefaultMaxDepth, "maximum expression nesting depth; each '(' and each '+' operand counts")
	cmd.Flags().Bool("spans", false, "print line:col ranges in the pretty tree")
	cmd.Flags().Int("max-token-len", 0, "maximum byte length of one token (0=unlimited)")
	cmd.Flags().Bool("cache", false, "reuse tokens from the on-disk cache")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("progress", false, "show live progress for directory processing")
	cmd.Flags().Bool("watch", false, "rerun whenever sources change")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
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
	spans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
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

		treeFS := func(fs *source.FileSet) *source.FileSet {
			if spans {
				return fs
			}
			return nil
		}

		if !st.IsDir() {
			res, err := driver.Parse(ctx, path, opts)
			if err != nil {
				return fmt.Errorf("parsing failed: %w", err)
			}
			s.printDiagnostics(errOut, res.Bag, res.FileSet)
			if res.Root != nil {
				switch format {
				case "json":
					err = diagfmt.FormatTreeJSON(out, res.Root)
				case "yaml":
					err = diagfmt.FormatTreeYAML(out, res.Root)
				default:
					err = diagfmt.FormatTreePretty(out, res.Root, treeFS(res.FileSet))
				}
				if err != nil {
					return err
				}
			}
			return exitStatus(res.Bag)
		}

		var (
			fs      *source.FileSet
			results []driver.ParseDirResult
		)
		err = runDir(ctx, s, "parse "+path, errOut, func(events chan<- driver.FileEvent) error {
			opts.Events = events
			var err error
			fs, results, err = driver.ParseDir(ctx, path, opts)
			return err
		})
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		bags := make([]*diag.Bag, 0, len(results))
		for _, r := range results {
			s.printDiagnostics(errOut, r.Bag, fs)
			bags = append(bags, r.Bag)
		}

		if format != "pretty" {
			// null для файлов, которые не распарсились
			output := make(map[string]*diagfmt.TreeNode, len(results))
			for _, r := range results {
				var node *diagfmt.TreeNode
				if r.Root != nil {
					node = diagfmt.BuildTree(r.Root)
				}
				output[relPath(path, r.Path)] = node
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
			if r.Root != nil {
				if err := diagfmt.FormatTreePretty(out, r.Root, treeFS(fs)); err != nil {
					return err
				}
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
