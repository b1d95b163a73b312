// Package trace records begin/end spans for lupin's pipeline stages.
//
// Tracers are passed down explicitly (parser.Options.Tracer) or through a
// context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// Verbosity is a Level; each event carries a Scope, and a tracer drops events
// whose scope is finer than its level allows:
//
//   - LevelPhase: driver and pass boundaries (lex, parse)
//   - LevelDetail: plus per-file work
//   - LevelDebug: plus one span per grammar rule
package trace
