package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"lupin/internal/config"
	"lupin/internal/diag"
	"lupin/internal/diagfmt"
	"lupin/internal/driver"
	"lupin/internal/observ"
	"lupin/internal/prof"
	"lupin/internal/source"
	"lupin/internal/trace"
	"lupin/internal/version"
)

// errReported means errors were already printed as diagnostics; main
// only has to set the exit status.
var errReported = errors.New("errors reported")

// settings is lupin.toml with command-line flags applied on top.
type settings struct {
	manifest *config.Manifest
	cfg      config.Config
	color    bool
	quiet    bool
	timings  bool
	jobs     int
	progress bool
	timer    *observ.Timer
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	m, _, err := config.Discover(".")
	if err != nil {
		return nil, err
	}
	cfg := m.Config
	flags := cmd.Flags()

	overrideString(flags, "color", &cfg.Diagnostics.Color)
	overrideString(flags, "diagnostics-format", &cfg.Diagnostics.Format)
	overrideInt(flags, "max-diagnostics", &cfg.Diagnostics.Max)
	overrideString(flags, "trace", &cfg.Trace.Level)
	overrideString(flags, "trace-mode", &cfg.Trace.Mode)
	overrideString(flags, "trace-format", &cfg.Trace.Format)
	overrideString(flags, "trace-output", &cfg.Trace.Output)
	overrideString(flags, "entry", &cfg.Parser.Entry)
	overrideInt(flags, "max-depth", &cfg.Parser.MaxDepth)
	overrideInt(flags, "max-token-len", &cfg.Lexer.MaxTokenLen)
	if f := flags.Lookup("cache"); f != nil && f.Changed {
		cfg.Cache.Enabled, _ = flags.GetBool("cache")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CheckVersion(version.Version); err != nil {
		return nil, err
	}
	m.Config = cfg

	s := &settings{
		manifest: m,
		cfg:      cfg,
		color:    useColor(cfg.Diagnostics.Color, os.Stderr),
		timer:    observ.NewTimer(),
	}
	s.quiet, _ = flags.GetBool("quiet")
	s.timings, _ = flags.GetBool("timings")
	if flags.Lookup("jobs") != nil {
		s.jobs, _ = flags.GetInt("jobs")
	}
	if flags.Lookup("progress") != nil {
		s.progress, _ = flags.GetBool("progress")
	}
	return s, nil
}

func overrideString(flags *pflag.FlagSet, name string, dst *string) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		*dst = f.Value.String()
	}
}

func overrideInt(flags *pflag.FlagSet, name string, dst *int) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		if v, err := flags.GetInt(name); err == nil {
			*dst = v
		}
	}
}

func profConfig(flags *pflag.FlagSet) prof.Config {
	var cfg prof.Config
	overrideString(flags, "cpuprofile", &cfg.CPU)
	overrideString(flags, "memprofile", &cfg.Mem)
	overrideString(flags, "runtime-trace", &cfg.Trace)
	return cfg
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return f != nil && os.Getenv("NO_COLOR") == "" && isTerminal(f)
	}
}

func (s *settings) driverOptions() (driver.Options, error) {
	popts, err := s.cfg.ParserOptions()
	if err != nil {
		return driver.Options{}, err
	}
	maxTokenLen, err := s.cfg.MaxTokenLen()
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{
		MaxDiagnostics: s.cfg.Diagnostics.Max,
		MaxTokenLen:    maxTokenLen,
		Parser:         popts,
		Jobs:           s.jobs,
		Timer:          s.timer,
	}
	if s.cfg.Cache.Enabled {
		dir, err := s.manifest.CacheDir()
		if err != nil {
			return driver.Options{}, err
		}
		if opts.Cache, err = driver.OpenTokenCache(dir); err != nil {
			return driver.Options{}, fmt.Errorf("failed to open token cache: %w", err)
		}
	}
	return opts, nil
}

func (s *settings) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Dedup()
	bag.Sort()
	switch s.cfg.Diagnostics.Format {
	case "short":
		fmt.Fprintln(w, diag.FormatShort(bag.Items(), fs, true))
	case "json":
		if err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
			fmt.Fprintf(w, "lupin: failed to encode diagnostics: %v\n", err)
		}
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   s.cfg.Diagnostics.Context,
			ShowNotes: true,
		})
	}
}

// runPipeline loads settings, installs the tracer and runs fn under one
// driver-scope span named after the command.
func runPipeline(cmd *cobra.Command, fn func(ctx context.Context, s *settings) error) (err error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, finish, err := setupTracing(ctx, s.cfg.Trace, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { finish(err != nil) }()

	session, err := prof.Start(profConfig(cmd.Flags()))
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "prof: %v\n", stopErr)
		}
	}()

	// run связывает события одного запуска в общем trace-файле
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, cmd.Name(), 0).
		WithExtra("run", uuid.NewString())
	err = fn(trace.WithSpan(ctx, span), s)
	status := "ok"
	if err != nil {
		status = err.Error()
	}
	span.End(status)

	if s.timings {
		printTimings(cmd.ErrOrStderr(), s.timer)
	}
	return err
}
