package token

// Keyword tags identifier tokens that spell a reserved word.
type Keyword uint8

const (
	NoKeyword Keyword = iota
	KwIf
	KwElse
	KwElif
	KwMatch
	KwWhile
	KwFor
	KwIn
	KwLoop
	KwBreak
	KwReturn

	// builtin type names
	TyI32
	TyI64
	TyU32
	TyU64
	TyF32
	TyF64
	TyIsize
	TyUsize
	TyBool
	TyStr
	TyChar
	TyVar
)

var keywords = map[string]Keyword{
	"if":     KwIf,
	"else":   KwElse,
	"elif":   KwElif,
	"match":  KwMatch,
	"while":  KwWhile,
	"for":    KwFor,
	"in":     KwIn,
	"loop":   KwLoop,
	"break":  KwBreak,
	"return": KwReturn,

	"i32":   TyI32,
	"i64":   TyI64,
	"u32":   TyU32,
	"u64":   TyU64,
	"f32":   TyF32,
	"f64":   TyF64,
	"isize": TyIsize,
	"usize": TyUsize,
	"bool":  TyBool,
	"str":   TyStr,
	"char":  TyChar,
	"var":   TyVar,
}

var keywordSpellings = func() map[Keyword]string {
	out := make(map[Keyword]string, len(keywords))
	for text, kw := range keywords {
		out[kw] = text
	}
	return out
}()

// LookupKeyword returns the keyword spelled by ident.
// Keywords are case-sensitive: only the lowercase forms are recognised.
func LookupKeyword(ident string) (Keyword, bool) {
	k, ok := keywords[ident]
	return k, ok
}

func (k Keyword) String() string {
	return keywordSpellings[k]
}

// IsBuiltinType reports whether k names one of the builtin types.
func (k Keyword) IsBuiltinType() bool {
	return k >= TyI32 && k <= TyVar
}
