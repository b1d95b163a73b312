// Package driver runs the lex and parse passes over files and directories
// and collects their diagnostics.
package driver

import (
	"lupin/internal/observ"
	"lupin/internal/parser"
)

// SourceExt is the extension of lupin source files picked up by the *Dir runners.
const SourceExt = ".lp"

type Options struct {
	// MaxDiagnostics ограничивает размер Bag на один файл; 0 — без лимита.
	MaxDiagnostics int
	// MaxTokenLen is passed to the lexer; 0 means unlimited.
	MaxTokenLen uint32
	Parser      parser.Options
	// Jobs limits the worker count of the *Dir runners; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache may be nil: tokens are then always lexed from source.
	Cache *TokenCache
	// Events, when set, receives per-file progress of the *Dir runners.
	// The runners never close it.
	Events chan<- FileEvent
	// Timer receives load/lex/parse phases; nil gets a private timer.
	Timer *observ.Timer
}

func (o Options) withDefaults() Options {
	if o.Timer == nil {
		o.Timer = observ.NewTimer()
	}
	return o
}
