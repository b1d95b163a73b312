// Package parser turns a token sequence into an ast.Root.
//
// The grammar is recursive descent with one function per rule. The first
// mismatch aborts the parse; there is no recovery and no partial tree.
package parser

import (
	"fmt"
	"strings"

	"lupin/internal/ast"
	"lupin/internal/lexer"
	"lupin/internal/source"
	"lupin/internal/token"
	"lupin/internal/trace"
)

// DefaultMaxDepth bounds expression nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 256

// Entry selects the root grammar rule.
type Entry uint8

const (
	// EntryStatement picks Assignment or FuncDef by looking at the third token.
	EntryStatement Entry = iota
	EntryAssignment
	EntryFuncDef
)

func (e Entry) String() string {
	switch e {
	case EntryAssignment:
		return "assignment"
	case EntryFuncDef:
		return "funcdef"
	default:
		return "statement"
	}
}

// ParseEntry converts a config or flag value to an Entry.
func ParseEntry(s string) (Entry, error) {
	switch strings.ToLower(s) {
	case "", "statement", "stmt":
		return EntryStatement, nil
	case "assignment", "assign":
		return EntryAssignment, nil
	case "funcdef", "fn", "function":
		return EntryFuncDef, nil
	default:
		return EntryStatement, fmt.Errorf("invalid entry rule: %q (expected: statement|assignment|funcdef)", s)
	}
}

type Options struct {
	Entry Entry
	// MaxDepth limits nested expressions, counting parens and '+' chain
	// operands alike; 0 means DefaultMaxDepth.
	MaxDepth int
	// Tracer receives one span per grammar rule at trace.LevelDebug.
	Tracer trace.Tracer
	// ParentSpan is the trace span the rule spans hang under.
	ParentSpan uint64
}

// Parser — состояние парсера на один вызов
type Parser struct {
	cur      *cursor
	opts     Options
	maxDepth int
	depth    int      // текущая вложенность выражений
	spans    []uint64 // стек открытых trace-спанов правил
}

// Parse tokenizes and parses src as one anonymous source file.
func Parse(src string, opts Options) (*ast.Root, error) {
	fs := source.NewFileSet()
	return ParseFile(fs.Get(fs.AddVirtual("<input>", []byte(src))), opts)
}

// ParseFile tokenizes file and parses it. An Unknown token fails the
// pipeline with *lexer.UnknownTokenError before parsing starts.
func ParseFile(file *source.File, opts Options) (*ast.Root, error) {
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		return nil, err
	}
	return parse(toks, opts)
}

// ParseTokens parses an already tokenized input. A missing trailing EOF is
// appended; a slice containing Unknown is rejected.
func ParseTokens(toks []token.Token, opts Options) (*ast.Root, error) {
	if err := lexer.FirstUnknown(toks); err != nil {
		return nil, err
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var eof token.Token
		if len(toks) == 0 {
			eof = token.NewEOF(0, 0)
		} else {
			last := toks[len(toks)-1].Span
			eof = token.NewEOF(last.File, last.End)
		}
		toks = append(toks[:len(toks):len(toks)], eof)
	}
	return parse(toks, opts)
}

func parse(toks []token.Token, opts Options) (*ast.Root, error) {
	p := newParser(toks, opts)
	stmt, err := p.parseEntry()
	if err != nil {
		return nil, err
	}
	// одна инструкция на вход: всё после неё — ошибка
	if _, err := p.expectKind(token.EOF); err != nil {
		return nil, err
	}
	return &ast.Root{Stmt: stmt}, nil
}

func newParser(toks []token.Token, opts Options) *Parser {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{
		cur:      newCursor(toks),
		opts:     opts,
		maxDepth: maxDepth,
	}
}

func (p *Parser) parseEntry() (ast.Stmt, error) {
	switch p.opts.Entry {
	case EntryAssignment:
		return p.parseAssignment()
	case EntryFuncDef:
		return p.parseFuncDef()
	default:
		return p.parseStatement()
	}
}
