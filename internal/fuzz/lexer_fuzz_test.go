package fuzztests

import (
	"testing"

	"lupin/internal/diag"
	"lupin/internal/lexer"
	"lupin/internal/source"
	"lupin/internal/testkit"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.lp", input))

		bag := diag.NewBag(64)
		toks := lexer.TokenizeAll(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckTokenInvariants(toks, file); err != nil {
			t.Fatalf("token invariants: %v", err)
		}

		// Tokenize и TokenizeAll должны согласованно решать про Unknown
		_, err := lexer.Tokenize(file, lexer.Options{})
		if (err != nil) != (lexer.FirstUnknown(toks) != nil) {
			t.Fatalf("Tokenize error %v disagrees with TokenizeAll", err)
		}
		if (err != nil) != bag.HasErrors() {
			t.Fatalf("reported diagnostics disagree with Tokenize error %v", err)
		}
	})
}
