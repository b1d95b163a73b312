package driver

import (
	"context"

	"lupin/internal/ast"
	"lupin/internal/diag"
	"lupin/internal/lexer"
	"lupin/internal/parser"
	"lupin/internal/source"
	"lupin/internal/token"
	"lupin/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	// Root is nil when lexing or parsing failed; Bag says why.
	Root *ast.Root
	Bag  *diag.Bag
}

// Parse loads, lexes and parses path as one entry rule.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	opts = opts.withDefaults()

	fs := source.NewFileSet()
	fileID, err := loadFile(opts, fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	toks, root := parseFile(ctx, file, bag, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Root:    root,
		Bag:     bag,
	}, nil
}

func parseFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) ([]token.Token, *ast.Root) {
	toks, _ := tokenizeFile(ctx, file, bag, opts)
	// лексер уже отчитался о неизвестных токенах, парсер не запускаем
	if lexer.FirstUnknown(toks) != nil {
		return toks, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse", trace.CurrentSpan(ctx)).
		WithExtra("file", file.Path).
		WithExtra("entry", opts.Parser.Entry.String())

	popts := opts.Parser
	popts.Tracer = tracer
	popts.ParentSpan = span.ID()

	var root *ast.Root
	err := opts.Timer.Time("parse", func() error {
		var err error
		root, err = parser.ParseTokens(toks, popts)
		return err
	})
	if err != nil {
		d, _ := diag.FromError(err)
		bag.Add(d)
		span.End("failed")
		return toks, nil
	}
	span.End("")
	return toks, root
}
