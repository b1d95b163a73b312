package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"lupin/internal/source"
)

// shortLine is one rendered row of the short format.
type shortLine struct {
	path      string
	line, col uint32
	sev       string
	code      string
	msg       string
}

func (l shortLine) compare(o shortLine) int {
	return cmp.Or(
		cmp.Compare(l.path, o.path),
		cmp.Compare(l.line, o.line),
		cmp.Compare(l.col, o.col),
		cmp.Compare(l.sev, o.sev),
		cmp.Compare(l.code, o.code),
		cmp.Compare(l.msg, o.msg),
	)
}

// FormatShort renders diagnostics one per line, sorted by position:
//
//	error SYN2002 main.lp:1:5 expected type, found symbol "("
//
// Notes become their own "note" rows when withNotes is set. The output has
// no trailing newline and is stable across runs, so tests compare it as is.
func FormatShort(diags []Diagnostic, fs *source.FileSet, withNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	row := func(sev string, code Code, sp source.Span, msg string) shortLine {
		start, _ := fs.Resolve(sp)
		return shortLine{
			path: fs.DisplayPath(sp.File),
			line: start.Line,
			col:  start.Col,
			sev:  sev,
			code: code.ID(),
			msg:  oneLine(msg),
		}
	}

	lines := make([]shortLine, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, row(d.Severity.String(), d.Code, d.Primary, d.Message))
		if !withNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, row("note", d.Code, n.Span, n.Msg))
		}
	}
	slices.SortStableFunc(lines, shortLine.compare)

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
	}
	return b.String()
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.NewReplacer("\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
