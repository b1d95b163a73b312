// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the tokenizer and the parser.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting layers.
//   - Convert terminal pipeline errors into diagnostics (FromError).
//
// # Scope
//
// Package diag does not render anything to a terminal; pretty output lives
// in internal/diagfmt. The only textual form produced here is the stable
// one-line-per-entry short format (FormatShort) used by tests and `--diagnostics-format short`.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable string ID (LEX1001, ...).
//   - Message – short human oriented text.
//   - Primary – the source.Span of the offending token.
//   - Notes – optional secondary spans/messages.
//
// The parser stops at the first error, so a parse produces at most one error
// diagnostic; the lexer may report several Unknown tokens before the driver
// turns the first of them into the terminal error.
package diag
