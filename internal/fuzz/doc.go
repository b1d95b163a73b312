// Package fuzztests houses Go fuzz harnesses for the lupin pipeline
// (source -> lexer -> parser). They guard against panics and check the
// token and tree span invariants from internal/testkit on arbitrary input.
//
// Запуск: go test ./internal/fuzz -fuzz=FuzzParser
package fuzztests
