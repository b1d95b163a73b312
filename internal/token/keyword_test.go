package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Keyword{
		"if":     KwIf,
		"elif":   KwElif,
		"loop":   KwLoop,
		"return": KwReturn,
		"i32":    TyI32,
		"usize":  TyUsize,
		"bool":   TyBool,
		"var":    TyVar,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
		if got.String() != lexeme {
			t.Fatalf("%v.String() = %q, want %q", got, got.String(), lexeme)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// регистр важен, а префиксы и расширения — обычные имена
	notKw := []string{"If", "I32", "i16", "i320", "iff", "true", "false", "foobar"}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestIsBuiltinType(t *testing.T) {
	if !TyI32.IsBuiltinType() || !TyVar.IsBuiltinType() {
		t.Error("builtin types not recognised")
	}
	if KwReturn.IsBuiltinType() || NoKeyword.IsBuiltinType() {
		t.Error("control keywords are not types")
	}
}

func TestKeywordCanonical(t *testing.T) {
	tok := NewIdent(sourceSpan(0, 6), "return")
	if !tok.IsKeyword() || tok.Canonical() != "return" {
		t.Errorf("keyword token canonical = %q", tok.Canonical())
	}
	plain := NewIdent(sourceSpan(0, 3), "abc")
	if plain.IsKeyword() || plain.Keyword() != NoKeyword {
		t.Error("plain identifier tagged as keyword")
	}
}
