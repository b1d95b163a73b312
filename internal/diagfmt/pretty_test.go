package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lupin/internal/diag"
	"lupin/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("str x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.lp", content)

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 8, End: 28}, "unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.lp"},
		{"relative", PathModeRelative, "src/test.lp:1:9"},
		{"basename", PathModeBasename, "test.lp:1:9"},
		{"auto uses base dir", PathModeAuto, "src/test.lp:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "unterminated string literal"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
		})
	}
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.lp", []byte("i32 a 1\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynExpectSymbol, source.Span{File: id, Start: 6, End: 7}, "expected '='"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	want := "a.lp:1:7: ERROR SYN2003: expected '='\n" +
		"1 | i32 a 1\n" +
		"  |       ^\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyCaretWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// "名前" занимает 4 колонки на экране, но 6 байт
	id := fs.AddVirtual("w.lp", []byte("名前 @@"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 7, End: 9}, "unknown token \"@@\""))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 || lines[2] != "  |      ^~" {
		t.Fatalf("caret line misaligned: %q", lines)
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.lp", []byte("one\ntwo\nthree\n"))
	d := diag.NewError(diag.SynNestingTooDeep, source.Span{File: id, Start: 4, End: 7}, "too deep").
		WithNote(source.Span{File: id, Start: 8, End: 13}, "raise max_depth")
	bag := diag.NewBag(0)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	out := buf.String()
	for _, want := range []string{"1 | one", "2 | two", "3 | three", "note: c.lp:3:1: raise max_depth"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("j.lp", []byte("a\nb $"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 4, End: 5}, "unknown"))
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "second"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 {
		t.Fatalf("Max should truncate output, got %d", out.Count)
	}
	loc := out.Diagnostics[0].Location
	if out.Diagnostics[0].Code != "LEX1001" || loc.StartLine != 2 || loc.StartCol != 3 {
		t.Fatalf("unexpected diagnostic %+v", out.Diagnostics[0])
	}
}
