package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"lupin/internal/source"
	"lupin/internal/token"
)

type SpanJSON struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
}

type TokenOutput struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Detail  string   `json:"detail,omitempty" yaml:"detail,omitempty"`
	Text    string   `json:"text,omitempty" yaml:"text,omitempty"`
	Span    SpanJSON `json:"span" yaml:"span,flow"`
	Line    uint32   `json:"line,omitempty" yaml:"line,omitempty"`
	Col     uint32   `json:"col,omitempty" yaml:"col,omitempty"`
	Keyword bool     `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

// tokenDetail: symbol name, keyword/type tag or literal kind with radix.
func tokenDetail(tok token.Token) string {
	switch tok.Kind {
	case token.Symbol:
		return tok.Symbol().String()
	case token.Literal:
		lit := tok.Literal()
		if lit.Radix != token.NoRadix {
			return lit.Kind.String() + "/" + lit.Radix.String()
		}
		return lit.Kind.String()
	case token.Identifier:
		if kw := tok.Keyword(); kw.IsBuiltinType() {
			return "type"
		} else if kw != token.NoKeyword {
			return "keyword"
		}
	}
	return ""
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		kind := tok.Kind.String()
		if d := tokenDetail(tok); d != "" {
			kind += "(" + d + ")"
		}
		if _, err := fmt.Fprintf(w, "%3d: %-24s", i+1, kind); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput converts tokens to their JSON shape; fs may be nil,
// in which case line/col are omitted.
func BuildTokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		to := TokenOutput{
			Kind:    tok.Kind.String(),
			Detail:  tokenDetail(tok),
			Text:    tok.Text,
			Span:    SpanJSON{Start: tok.Span.Start, End: tok.Span.End},
			Keyword: tok.IsKeyword(),
		}
		if fs != nil {
			start, _ := fs.Resolve(tok.Span)
			to.Line, to.Col = start.Line, start.Col
		}
		out = append(out, to)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTokensOutput(tokens, fs))
}

// FormatTokensYAML выводит токены как YAML-последовательность
func FormatTokensYAML(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildTokensOutput(tokens, fs)); err != nil {
		return err
	}
	return enc.Close()
}
