package driver

import (
	"context"
	"fmt"

	"lupin/internal/diag"
	"lupin/internal/lexer"
	"lupin/internal/source"
	"lupin/internal/token"
	"lupin/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	// Cached is set when Tokens came from the token cache.
	Cached bool
}

// Tokenize loads path and lexes it. Lexical errors end up in Bag; the
// returned error is reserved for failures to read the file.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	opts = opts.withDefaults()

	fs := source.NewFileSet()
	fileID, err := loadFile(opts, fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	toks, cached := tokenizeFile(ctx, file, bag, opts)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Bag:     bag,
		Cached:  cached,
	}, nil
}

func loadFile(opts Options, fs *source.FileSet, path string) (source.FileID, error) {
	var id source.FileID
	err := opts.Timer.Time("load", func() error {
		var err error
		id, err = fs.Load(path)
		return err
	})
	return id, err
}

// tokenizeFile lexes file, consulting the cache first. Only token streams
// without Unknown tokens are cached, so a hit never hides a diagnostic.
func tokenizeFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) ([]token.Token, bool) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", trace.CurrentSpan(ctx)).
		WithExtra("file", file.Path)
	idx := opts.Timer.Begin("lex")

	toks, hit, err := opts.Cache.Lookup(file, opts.MaxTokenLen)
	if err != nil {
		bag.Add(cacheDiagnostic(file, "read", err))
	}
	if hit {
		opts.Timer.End(idx, "cached")
		span.End(fmt.Sprintf("%d tokens (cached)", len(toks)))
		return toks, true
	}

	toks = lexer.TokenizeAll(file, lexer.Options{
		Reporter:    diag.BagReporter{Bag: bag},
		MaxTokenLen: opts.MaxTokenLen,
	})
	if lexer.FirstUnknown(toks) == nil {
		if err := opts.Cache.Store(file, opts.MaxTokenLen, toks); err != nil {
			bag.Add(cacheDiagnostic(file, "write", err))
		}
	}

	opts.Timer.End(idx, "")
	span.End(fmt.Sprintf("%d tokens", len(toks)))
	return toks, false
}

func cacheDiagnostic(file *source.File, op string, err error) diag.Diagnostic {
	return diag.New(diag.SevWarning, diag.IOCacheError,
		source.Span{File: file.ID},
		fmt.Sprintf("token cache %s failed: %v", op, err))
}

func loadDiagnostic(path string, err error) diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, source.Span{},
		fmt.Sprintf("failed to load %s: %v", path, err))
}
