package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/source"
)

type palette struct {
	sev   map[diag.Severity]*color.Color
	path  *color.Color
	code  *color.Color
	gut   *color.Color
	caret map[diag.Severity]*color.Color
	note  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		path: color.New(color.Bold),
		code: color.New(color.Faint),
		gut:  color.New(color.FgBlue),
		caret: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed),
			diag.SevWarning: color.New(color.FgYellow),
			diag.SevInfo:    color.New(color.FgCyan),
		},
		note: color.New(color.FgGreen),
	}
	all := []*color.Color{p.path, p.code, p.gut, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range p.caret {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатается
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строка исходника с подчёркиванием ^~~~ под Span и заметки.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	loc := "<unknown>"
	if validSpan(fs, d.Primary) {
		loc = location(fs, d.Primary, opts.PathMode)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprint(loc),
		p.sev[d.Severity].Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	if validSpan(fs, d.Primary) {
		excerpt(w, fs, d.Primary, opts.Context, p, p.caret[d.Severity])
	}
	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if !validSpan(fs, n.Span) {
			fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), n.Msg)
			continue
		}
		fmt.Fprintf(w, "  %s: %s: %s\n", p.note.Sprint("note"), location(fs, n.Span, opts.PathMode), n.Msg)
		excerpt(w, fs, n.Span, 0, p, p.note)
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", DisplayPath(fs, fs.Get(span.File), mode), start.Line, start.Col)
}

// excerpt prints the context lines, the first line of span and an underline.
// Multi-line spans are underlined to the end of their first line.
func excerpt(w io.Writer, fs *source.FileSet, span source.Span, context int8, p palette, caret *color.Color) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	gutter := len(fmt.Sprint(start.Line))

	first := start.Line
	if context > 0 {
		first = max(1, start.Line-uint32(context))
	}
	for n := first; n < start.Line; n++ {
		fmt.Fprintf(w, "%s %s\n", p.gut.Sprintf("%*d |", gutter, n), expandTabs(f.GetLine(n)))
	}
	if line == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", p.gut.Sprintf("%*d |", gutter, start.Line), expandTabs(line))

	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	pad := displayWidth(line[:col])
	width := max(1, displayWidth(line[:stop])-pad)
	mark := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gut.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", pad), caret.Sprint(mark))
}

// expandTabs replaces tabs with spaces up to the next tabstop.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for {
		i := strings.IndexByte(s, '\t')
		if i < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		col += runewidth.StringWidth(s[:i])
		sb.WriteString(s[:i])
		tab := TabstopWidth - col%TabstopWidth
		sb.WriteString(strings.Repeat(" ", tab))
		col += tab
		s = s[i+1:]
	}
}

// displayWidth is the terminal width of s after tab expansion.
func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}
