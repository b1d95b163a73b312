package diag

import (
	"testing"

	"lupin/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/testdata/sample.lp", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		NewError(SynUnexpectedToken, source.Span{File: file, Start: 2, End: 3}, "second").
			WithNote(source.Span{File: file, Start: 0, End: 1}, "note line"),
		New(SevWarning, LexUnknownChar, source.Span{File: file, Start: 0, End: 1}, "first line\r\nwrapped"),
	}

	tests := []struct {
		name      string
		withNotes bool
		want      string
	}{
		{
			name:      "with notes",
			withNotes: true,
			want: "note SYN2001 testdata/sample.lp:1:1 note line\n" +
				"warning LEX1001 testdata/sample.lp:1:1 first line wrapped\n" +
				"error SYN2001 testdata/sample.lp:2:1 second",
		},
		{
			name: "without notes",
			want: "warning LEX1001 testdata/sample.lp:1:1 first line wrapped\n" +
				"error SYN2001 testdata/sample.lp:2:1 second",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatShort(diags, fs, tt.withNotes); got != tt.want {
				t.Fatalf("want:\n%s\n\ngot:\n%s", tt.want, got)
			}
		})
	}
	if got := FormatShort(nil, fs, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "info", SevWarning: "warning", SevError: "error", Severity(9): "unknown"} {
		if got := sev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sev, got, want)
		}
	}
}
