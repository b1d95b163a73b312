package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lupin/internal/diag"
	"lupin/internal/lexer"
	"lupin/internal/source"
	"lupin/internal/token"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	cache, err := OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.lp", []byte(`bool ok = 0x1F + .5 + "s\"q" + true`)))
	want := lexer.TokenizeAll(file, lexer.Options{})

	if err := cache.Store(file, 0, want); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, ok, err := cache.Lookup(file, 0)
	if err != nil || !ok {
		t.Fatalf("Lookup: ok=%v err=%v", ok, err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTokenCacheMissOnOtherContent(t *testing.T) {
	cache, err := OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("a.lp", []byte("int x = 1")))
	b := fs.Get(fs.AddVirtual("a.lp", []byte("int x = 2")))
	if err := cache.Store(a, 0, lexer.TokenizeAll(a, lexer.Options{})); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Lookup(b, 0); ok || err != nil {
		t.Fatalf("changed content must miss: ok=%v err=%v", ok, err)
	}
}

func TestTokenCacheRejectsUnknown(t *testing.T) {
	cache, err := OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.lp", []byte("@")))
	if err := cache.Store(file, 0, lexer.TokenizeAll(file, lexer.Options{})); err == nil {
		t.Fatal("expected error for Unknown token")
	}
}

func TestTokenCacheNilIsMiss(t *testing.T) {
	var cache *TokenCache
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.lp", []byte("int x = 1")))
	if err := cache.Store(file, 0, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Lookup(file, 0); ok || err != nil {
		t.Fatalf("nil cache: ok=%v err=%v", ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
}

func TestTokenCacheCorruptPayload(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenTokenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.lp", []byte("int x = 1")))
	p := cache.pathFor(file.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1, 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Lookup(file, 0); ok || err == nil {
		t.Fatalf("corrupt payload: ok=%v err=%v", ok, err)
	}
}

func TestTokenizeUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenTokenCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "a.lp", "int x = 1")
	opts := Options{Cache: cache}

	first, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags: first=%v second=%v", first.Cached, second.Cached)
	}
	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token counts differ: %d vs %d", len(first.Tokens), len(second.Tokens))
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	third, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Fatal("DropAll must empty the cache")
	}
}

func TestTokenizeDoesNotCacheBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenTokenCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "bad.lp", `int x = "open`)
	opts := Options{Cache: cache}
	for range 2 {
		res, err := Tokenize(context.Background(), path, opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.Cached {
			t.Fatal("a file with Unknown tokens must not come from the cache")
		}
		if !hasCode(res.Bag, diag.LexUnterminatedString) {
			t.Fatalf("expected %s, got %+v", diag.LexUnterminatedString.ID(), res.Bag.Items())
		}
		if res.Tokens[len(res.Tokens)-2].Kind != token.Unknown {
			t.Fatalf("expected Unknown before EOF, got %+v", res.Tokens)
		}
	}
}

func TestTokenCacheKeyedByTokenLimit(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenTokenCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "a.lp", "i32 averyveryverylongname = 1")

	warm, err := Tokenize(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if warm.Cached || warm.Bag.HasErrors() {
		t.Fatalf("warm run: cached=%v diags=%+v", warm.Cached, warm.Bag.Items())
	}

	limited, err := Tokenize(context.Background(), path, Options{Cache: cache, MaxTokenLen: 5})
	if err != nil {
		t.Fatal(err)
	}
	if limited.Cached {
		t.Fatal("a stream lexed without a limit must not satisfy a limited run")
	}
	if !hasCode(limited.Bag, diag.LexTokenTooLong) {
		t.Fatalf("expected %s, got %+v", diag.LexTokenTooLong.ID(), limited.Bag.Items())
	}

	again, err := Tokenize(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !again.Cached {
		t.Fatal("the unlimited entry must still hit")
	}
}
