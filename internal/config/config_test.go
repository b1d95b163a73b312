package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lupin/internal/parser"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[lexer]
max_token_len = 64

[parser]
entry = "funcdef"
max_depth = 32

[diagnostics]
color = "off"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	opts, err := m.Config.ParserOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Entry != parser.EntryFuncDef || opts.MaxDepth != 32 {
		t.Fatalf("unexpected parser options %+v", opts)
	}
	if n, err := m.Config.MaxTokenLen(); err != nil || n != 64 {
		t.Fatalf("MaxTokenLen = %d, %v; want 64", n, err)
	}
	// значения, которых нет в файле, берутся из Default()
	if m.Config.Diagnostics.Max != 100 || m.Config.Diagnostics.Color != "off" {
		t.Fatalf("unexpected diagnostics %+v", m.Config.Diagnostics)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	m, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Skip("a lupin.toml exists above the temp dir")
	}
	if m.Config != Default() {
		t.Fatalf("expected defaults, got %+v", m.Config)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"bad entry", "[parser]\nentry = \"module\"", "[parser].entry"},
		{"negative depth", "[parser]\nmax_depth = -1", "max_depth"},
		{"negative token len", "[lexer]\nmax_token_len = -1", "[lexer].max_token_len"},
		{"huge token len", "[lexer]\nmax_token_len = 4294967296", "[lexer].max_token_len"},
		{"bad color", "[diagnostics]\ncolor = \"rainbow\"", "color"},
		{"bad format", "[diagnostics]\nformat = \"xml\"", "[diagnostics].format"},
		{"bad level", "[trace]\nlevel = \"loud\"", "[trace].level"},
		{"bad mode", "[trace]\nmode = \"disk\"", "[trace].mode"},
		{"unknown key", "[parser]\nentri = \"x\"", "unknown keys"},
		{"syntax", "[parser\n", "failed to parse TOML"},
		{"bad constraint", "[lupin]\nrequires = \"newest\"", "[lupin].requires"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	m := &Manifest{Root: "/proj", Config: Default()}
	m.Config.Cache.Dir = ".cache"
	if dir, _ := m.CacheDir(); dir != filepath.Join("/proj", ".cache") {
		t.Fatalf("relative dir = %q", dir)
	}

	m.Config.Cache.Dir = ""
	t.Setenv("XDG_CACHE_HOME", "/xdg")
	if dir, _ := m.CacheDir(); dir != filepath.Join("/xdg", "lupin") {
		t.Fatalf("xdg dir = %q", dir)
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		requires, current string
		ok                bool
	}{
		{"", "0.1.0-dev", true},
		{">= 0.1", "0.1.0-dev", true},
		{"^0.1.0", "0.1.5", true},
		{">= 0.2", "0.1.0", false},
		{"~1.2", "1.3.0", false},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Lupin.Requires = tt.requires
		err := cfg.CheckVersion(tt.current)
		if (err == nil) != tt.ok {
			t.Errorf("requires %q, current %q: err = %v, want ok=%v", tt.requires, tt.current, err, tt.ok)
		}
	}

	cfg := Default()
	cfg.Lupin.Requires = ">= 0.1"
	if err := cfg.CheckVersion("not-a-version"); err == nil {
		t.Error("expected error for an unparsable CLI version")
	}
}
