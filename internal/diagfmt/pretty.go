package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lupin/internal/diag"
	"lupin/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	path, gutter, caret   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и, при ShowNotes,
// заметки в том же формате.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.String())), d.Code.ID(), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", formatPath(fs, f.ID, opts.PathMode), start.Line, start.Col),
		pal.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.String())),
		d.Code.ID(),
		d.Message,
	)
	writeSnippet(w, f, fs, d.Primary, opts.Context, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s: %s\n",
			pal.note.Sprint("note:"),
			pal.path.Sprintf("%s:%d:%d", formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col),
			n.Msg,
		)
	}
}

// writeSnippet prints the primary line (plus context lines) with a caret
// underline. Column math uses display width so wide runes line up.
func writeSnippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, context int, pal palette) {
	start, end := fs.Resolve(sp)
	lastLine := lineCount(f)

	from := int(start.Line) - context
	if from < 1 {
		from = 1
	}
	to := int(start.Line) + context
	if to > lastLine {
		to = lastLine
	}
	gutterWidth := len(fmt.Sprint(to))

	for ln := from; ln <= to; ln++ {
		line := expandTabs(f.GetLine(uint32(ln))) //nolint:gosec // ln is within [1, lastLine]
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line)
		if ln != int(start.Line) {
			continue
		}

		raw := f.GetLine(start.Line)
		prefix := byteClamp(raw, int(start.Col)-1)
		underlined := ""
		if end.Line == start.Line {
			underlined = byteClamp(raw, int(end.Col)-1)[len(prefix):]
		} else {
			underlined = raw[len(prefix):]
		}
		pad := runewidth.StringWidth(expandTabs(prefix))
		width := runewidth.StringWidth(expandTabs(underlined))
		if width < 1 {
			width = 1
		}
		mark := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(mark))
	}
}

func lineCount(f *source.File) int {
	return len(f.LineIdx) + 1
}

func byteClamp(s string, n int) string {
	if n < 0 {
		return ""
	}
	if n > len(s) {
		return s
	}
	return s[:n]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
