// Package config loads lupin.toml, the per-project settings file.
//
//	[lupin]
//	requires = ">= 0.1"      # semver constraint on the CLI version
//
//	[lexer]
//	max_token_len = 0        # bytes per token, 0 = unbounded
//
//	[parser]
//	entry = "statement"      # statement | assignment | funcdef
//	max_depth = 256          # nested parens and binary operators both count
//
//	[diagnostics]
//	max = 100                # 0 = unbounded
//	color = "auto"           # auto | on | off
//	context = 0              # extra source lines around the caret
//	format = "pretty"        # pretty | short | json
//
//	[cache]
//	enabled = false
//	dir = ""                 # default: $XDG_CACHE_HOME/lupin
//
//	[trace]
//	level = "off"            # off | phase | detail | debug
//	mode = "stream"          # stream | ring (dump on failure) | both
//	format = "auto"          # auto | text | ndjson
//	output = "-"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"lupin/internal/parser"
	"lupin/internal/trace"
)

// FileName is the name searched for by Find.
const FileName = "lupin.toml"

type Config struct {
	Lupin       LupinConfig       `toml:"lupin"`
	Lexer       LexerConfig       `toml:"lexer"`
	Parser      ParserConfig      `toml:"parser"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Cache       CacheConfig       `toml:"cache"`
	Trace       TraceConfig       `toml:"trace"`
}

type LupinConfig struct {
	Requires string `toml:"requires"`
}

type LexerConfig struct {
	MaxTokenLen int `toml:"max_token_len"`
}

type ParserConfig struct {
	Entry    string `toml:"entry"`
	MaxDepth int    `toml:"max_depth"`
}

type DiagnosticsConfig struct {
	Max     int    `toml:"max"`
	Color   string `toml:"color"`
	Context int    `toml:"context"`
	Format  string `toml:"format"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// Default returns the settings used when no lupin.toml exists.
func Default() Config {
	return Config{
		Parser:      ParserConfig{Entry: "statement", MaxDepth: parser.DefaultMaxDepth},
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto", Format: "pretty"},
		Trace:       TraceConfig{Level: "off", Mode: "stream", Format: "auto", Output: "-"},
	}
}

// Manifest is a loaded lupin.toml and the directory it lives in.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir looking for lupin.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover finds and loads the nearest lupin.toml. When none exists it
// returns a manifest holding Default() and ok == false.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Default()}, false, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// Load decodes path over Default() and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Lupin.Requires != "" {
		if _, err := semver.NewConstraint(c.Lupin.Requires); err != nil {
			return fmt.Errorf("[lupin].requires: %w", err)
		}
	}
	if _, err := safecast.Conv[uint32](c.Lexer.MaxTokenLen); err != nil {
		return fmt.Errorf("[lexer].max_token_len must be in 0..%d, got %d", uint32(1<<32-1), c.Lexer.MaxTokenLen)
	}
	if _, err := parser.ParseEntry(c.Parser.Entry); err != nil {
		return fmt.Errorf("[parser].entry: %w", err)
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("[parser].max_depth must be >= 0, got %d", c.Parser.MaxDepth)
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must be >= 0, got %d", c.Diagnostics.Max)
	}
	if c.Diagnostics.Context < 0 {
		return fmt.Errorf("[diagnostics].context must be >= 0, got %d", c.Diagnostics.Context)
	}
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[diagnostics].color must be auto|on|off, got %q", c.Diagnostics.Color)
	}
	switch c.Diagnostics.Format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("[diagnostics].format must be pretty|short|json, got %q", c.Diagnostics.Format)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	return nil
}

// CheckVersion reports whether the CLI version current satisfies
// [lupin].requires. Pre-release tags of current are ignored, so 0.2.0-dev
// satisfies ">= 0.2".
func (c Config) CheckVersion(current string) error {
	if c.Lupin.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Lupin.Requires)
	if err != nil {
		return fmt.Errorf("[lupin].requires: %w", err)
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("invalid lupin version %q: %w", current, err)
	}
	core, err := v.SetPrerelease("")
	if err != nil {
		return err
	}
	if !constraint.Check(&core) {
		return fmt.Errorf("lupin %s does not satisfy [lupin].requires %q", current, c.Lupin.Requires)
	}
	return nil
}

// ParserOptions converts the [parser] table to parser.Options.
func (c Config) ParserOptions() (parser.Options, error) {
	entry, err := parser.ParseEntry(c.Parser.Entry)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{Entry: entry, MaxDepth: c.Parser.MaxDepth}, nil
}

// MaxTokenLen returns [lexer].max_token_len in the lexer's unit; 0 means
// unbounded.
func (c Config) MaxTokenLen() (uint32, error) {
	n, err := safecast.Conv[uint32](c.Lexer.MaxTokenLen)
	if err != nil {
		return 0, fmt.Errorf("[lexer].max_token_len: %w", err)
	}
	return n, nil
}

// CacheDir resolves the cache directory: [cache].dir relative to the
// manifest root, else $XDG_CACHE_HOME/lupin, else the user cache dir.
func (m *Manifest) CacheDir() (string, error) {
	if dir := m.Config.Cache.Dir; dir != "" {
		if !filepath.IsAbs(dir) && m.Root != "" {
			dir = filepath.Join(m.Root, dir)
		}
		return dir, nil
	}
	if x := os.Getenv("XDG_CACHE_HOME"); x != "" {
		return filepath.Join(x, "lupin"), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("no cache directory: %w", err)
	}
	return filepath.Join(base, "lupin"), nil
}
