// Package token defines the lexical vocabulary of the lupin front end.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Kind always agrees with the payload: Symbol() is only valid on Symbol
//     tokens, Literal() on Literal tokens, Name() and Keyword() on Identifier
//     tokens. Asking for the wrong variant panics.
//   - Keywords and builtin type names are Identifier tokens carrying a
//     non-zero Keyword tag, so every identifier-shaped grammar position
//     accepts them structurally.
//   - Literal text is kept verbatim: underscores are not stripped and string
//     escapes are not decoded.
package token
