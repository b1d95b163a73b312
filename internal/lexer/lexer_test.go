package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"lupin/internal/diag"
	"lupin/internal/lexer"
	"lupin/internal/source"
	"lupin/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func makeFile(input string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.lp", []byte(input)))
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	reporter := &testReporter{}
	return lexer.New(makeFile(input), lexer.Options{Reporter: reporter}), reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.Describe())
	}
	return strings.Join(parts, ", ")
}

func expectSingleLiteral(t *testing.T, input string, kind token.LiteralKind, radix token.Radix) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	toks := collectAllTokens(lx)
	if len(toks) != 2 {
		t.Fatalf("%q: expected literal + EOF, got %s", input, tokensToString(toks))
	}
	tok := toks[0]
	if tok.Kind != token.Literal {
		t.Fatalf("%q: expected literal, got %s", input, tok.Describe())
	}
	lit := tok.Literal()
	if lit.Kind != kind || lit.Radix != radix {
		t.Fatalf("%q: got %s/%s, want %s/%s", input, lit.Kind, lit.Radix, kind, radix)
	}
	if tok.Text != input || lit.Text != input {
		t.Fatalf("%q: text mismatch: token %q literal %q", input, tok.Text, lit.Text)
	}
}

func TestIntegerLiterals(t *testing.T) {
	cases := []struct {
		in    string
		radix token.Radix
	}{
		{"0", token.Decimal},
		{"42", token.Decimal},
		{"1_000_000", token.Decimal},
		{"7_", token.Decimal},
		{"0b1010", token.Binary},
		{"0B1_0", token.Binary},
		{"0b_", token.Binary},
		{"0xFF", token.Hexadecimal},
		{"0Xdead_beef", token.Hexadecimal},
	}
	for _, c := range cases {
		expectSingleLiteral(t, c.in, token.IntLit, c.radix)
	}
}

func TestFloatLiterals(t *testing.T) {
	for _, in := range []string{"1.", "24_.", "3_49.", "5.6", "7_8.9", ".0", "._1", ".0_12"} {
		expectSingleLiteral(t, in, token.FloatLit, token.NoRadix)
	}
}

func TestRadixPrefixWithoutDigits(t *testing.T) {
	// "0b2" не бинарное число: 0 и идентификатор b2
	lx, _ := makeTestLexer("0b2")
	toks := collectAllTokens(lx)
	want := `integer literal "0", identifier "b2", end of input`
	if got := tokensToString(toks); got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestDotWithoutDigitsIsSymbol(t *testing.T) {
	lx, _ := makeTestLexer("a . _b")
	toks := collectAllTokens(lx)
	want := `identifier "a", symbol ".", identifier "_b", end of input`
	if got := tokensToString(toks); got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestStringLiterals(t *testing.T) {
	for _, in := range []string{`""`, `"hello"`, `"tab\there"`, `"quote\"inside"`, `"back\\slash"`, `"uniA"`, "\"multi\nline\""} {
		expectSingleLiteral(t, in, token.StringLit, token.NoRadix)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer(`x = "open`)
	toks := collectAllTokens(lx)
	if len(toks) != 4 {
		t.Fatalf("unexpected tokens: %s", tokensToString(toks))
	}
	if toks[2].Kind != token.Unknown || toks[2].Text != `"open` {
		t.Fatalf("expected unknown string run, got %s", toks[2].Describe())
	}
	if codes := rep.codes(); len(codes) != 1 || codes[0] != diag.LexUnterminatedString {
		t.Fatalf("unexpected diagnostics: %v", codes)
	}
}

func TestBoolKeywordsAndIdentifiers(t *testing.T) {
	lx, _ := makeTestLexer("true false if i32 trueish _x9")
	toks := collectAllTokens(lx)
	want := `boolean literal "true", boolean literal "false", keyword "if", type "i32", identifier "trueish", identifier "_x9", end of input`
	if got := tokensToString(toks); got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
	if !toks[2].IsKeyword() || toks[2].Keyword() != token.KwIf {
		t.Fatalf("if should carry its keyword tag")
	}
	if !toks[3].Keyword().IsBuiltinType() {
		t.Fatalf("i32 should be a builtin type")
	}
	if toks[4].IsKeyword() {
		t.Fatalf("trueish is a plain identifier")
	}
}

func TestSymbolsLongestMatch(t *testing.T) {
	lx, rep := makeTestLexer(":= :: => == != >= <= = > < , . + - * / ( ) { } [ ]")
	toks := collectAllTokens(lx)
	want := []token.Sym{
		token.ColonAssign, token.TwoColons, token.FatArrow, token.EqEq, token.BangEq,
		token.GtEq, token.LtEq, token.Assign, token.Gt, token.Lt, token.Comma,
		token.Dot, token.Plus, token.Minus, token.Star, token.Slash,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
	}
	if len(toks) != len(want)+1 {
		t.Fatalf("unexpected tokens: %s", tokensToString(toks))
	}
	for i, s := range want {
		if !toks[i].IsSymbol(s) {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Describe(), s)
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes())
	}
}

func TestAdjacentSymbols(t *testing.T) {
	lx, _ := makeTestLexer("foo::(a,)")
	toks := collectAllTokens(lx)
	want := `identifier "foo", symbol "::", symbol "(", identifier "a", symbol ",", symbol ")", end of input`
	if got := tokensToString(toks); got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestUnknownRuns(t *testing.T) {
	cases := []struct {
		in, text string
	}{
		{"a && b", "&&"},
		{"a : b", ":"},
		{"a ! b", "!"},
		{"a @#$b", "@#$"},
	}
	for _, c := range cases {
		lx, rep := makeTestLexer(c.in)
		toks := collectAllTokens(lx)
		if len(toks) != 4 {
			t.Fatalf("%q: unexpected tokens %s", c.in, tokensToString(toks))
		}
		if toks[1].Kind != token.Unknown || toks[1].Text != c.text {
			t.Errorf("%q: got %s, want unknown %q", c.in, toks[1].Describe(), c.text)
		}
		if codes := rep.codes(); len(codes) != 1 || codes[0] != diag.LexUnknownChar {
			t.Errorf("%q: unexpected diagnostics %v", c.in, codes)
		}
	}
}

func TestWhitespaceOnly(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n \f"} {
		lx, _ := makeTestLexer(in)
		toks := collectAllTokens(lx)
		if len(toks) != 1 {
			t.Fatalf("%q: expected only EOF, got %s", in, tokensToString(toks))
		}
		eof := toks[0]
		if !eof.Span.Empty() || int(eof.Span.Start) != len(in) {
			t.Fatalf("%q: EOF span %s should be empty at end of input", in, eof.Span)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF after end, got %s", tok.Describe())
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek: %s", p.Describe())
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek: %s", n.Describe())
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second next: %s", n.Describe())
	}
}

func TestSpansMonotonicAndCoverText(t *testing.T) {
	input := "i32 foobar = (1 + (hello + (world)) + (((((woahhhh)))) + 567))"
	file := makeFile(input)
	toks := lexer.TokenizeAll(file, lexer.Options{})
	var prevEnd uint32
	for _, tok := range toks {
		if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
			t.Fatalf("span %s overlaps previous end %d", tok.Span, prevEnd)
		}
		if tok.Kind != token.EOF && file.Slice(tok.Span) != tok.Text {
			t.Fatalf("span %s covers %q, token text %q", tok.Span, file.Slice(tok.Span), tok.Text)
		}
		prevEnd = tok.Span.End
	}
}

func TestTokenizeFailsOnFirstUnknown(t *testing.T) {
	file := makeFile("a & b $ c")
	_, err := lexer.Tokenize(file, lexer.Options{})
	var unk *lexer.UnknownTokenError
	if !errors.As(err, &unk) {
		t.Fatalf("expected UnknownTokenError, got %v", err)
	}
	if unk.Text != "&" || unk.Span.Start != 2 {
		t.Fatalf("unexpected error %+v", unk)
	}
	d, ok := diag.FromError(err)
	if !ok || d.Code != diag.LexUnknownChar {
		t.Fatalf("expected diagnosable error, got %+v", d)
	}

	all := lexer.TokenizeAll(file, lexer.Options{})
	if err := lexer.FirstUnknown(all); err == nil {
		t.Fatalf("FirstUnknown should find the unknown token")
	}
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	toks, err := lexer.Tokenize(makeFile("i32 x = 1"), lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	eofs := 0
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			eofs++
		}
	}
	if eofs != 1 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("expected exactly one trailing EOF: %s", tokensToString(toks))
	}
}
