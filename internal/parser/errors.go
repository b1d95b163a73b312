package parser

import (
	"fmt"
	"strings"

	"lupin/internal/diag"
	"lupin/internal/source"
	"lupin/internal/token"
)

// Expectation describes what the parser required where a token failed to
// match: ExpectKinds, ExpectSymbols, ExpectNode or ExpectBinaryOp.
type Expectation interface {
	fmt.Stringer
	code() diag.Code
}

// ExpectKinds lists the acceptable token kinds.
type ExpectKinds []token.Kind

// ExpectSymbols lists the acceptable symbols.
type ExpectSymbols []token.Sym

// ExpectNode names the grammar rule whose first token did not match.
// First lists the token kinds that may start it.
type ExpectNode struct {
	Name  string
	First []token.Kind
}

// ExpectBinaryOp is reported when a binary operator was required. The
// statement grammar only probes for operators, so it never produces one.
type ExpectBinaryOp struct{}

func (e ExpectKinds) String() string {
	parts := make([]string, 0, len(e))
	for _, k := range e {
		parts = append(parts, k.String())
	}
	return joinAlternatives(parts)
}

func (e ExpectSymbols) String() string {
	parts := make([]string, 0, len(e))
	for _, s := range e {
		parts = append(parts, "'"+s.String()+"'")
	}
	return joinAlternatives(parts)
}

func (e ExpectNode) String() string {
	if len(e.First) == 0 {
		return e.Name
	}
	return e.Name + " (" + ExpectKinds(e.First).String() + ")"
}

func (ExpectBinaryOp) String() string { return "binary operator" }

func (ExpectKinds) code() diag.Code    { return diag.SynUnexpectedToken }
func (ExpectSymbols) code() diag.Code  { return diag.SynExpectSymbol }
func (ExpectNode) code() diag.Code     { return diag.SynExpectNode }
func (ExpectBinaryOp) code() diag.Code { return diag.SynExpectBinaryOp }

func joinAlternatives(parts []string) string {
	switch len(parts) {
	case 0:
		return "nothing"
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
	}
}

// ParseError is the first mismatch met by the parser.
type ParseError struct {
	Found       token.Token
	Expectation Expectation
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Found.Span, e.Expectation, e.Found.Describe())
}

// Span returns the span of the offending token.
func (e *ParseError) Span() source.Span { return e.Found.Span }

// Diagnostic implements diag.Diagnosable.
func (e *ParseError) Diagnostic() diag.Diagnostic {
	if isEOFOnly(e.Expectation) {
		return diag.NewError(diag.SynTrailingInput, e.Found.Span,
			fmt.Sprintf("unexpected %s after the end of the statement", e.Found.Describe()))
	}
	code := diag.SynUnexpectedToken
	if e.Expectation != nil {
		code = e.Expectation.code()
	}
	return diag.NewError(code, e.Found.Span, fmt.Sprintf("expected %s, found %s", e.Expectation, e.Found.Describe()))
}

func isEOFOnly(e Expectation) bool {
	kinds, ok := e.(ExpectKinds)
	return ok && len(kinds) == 1 && kinds[0] == token.EOF
}

// DepthError is returned when expressions nest deeper than Options.MaxDepth.
// Every parenthesis and every operand of a '+' chain adds one level.
type DepthError struct {
	Limit int
	Found token.Token
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%s: expression nesting exceeds the limit of %d", e.Found.Span, e.Limit)
}

// Diagnostic implements diag.Diagnosable.
func (e *DepthError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SynNestingTooDeep, e.Found.Span,
		fmt.Sprintf("expression nesting exceeds the limit of %d", e.Limit)).
		WithNote(e.Found.Span, "each '(' and each '+' operand counts as one level; raise [parser] max_depth or --max-depth to accept deeper input")
}
