package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"twig/internal/diag"
	"twig/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника и каретку под колонкой маркера.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "%s\n", p.note.Sprintf("... %d more diagnostic(s) not shown (limit %d)", n, bag.Cap()))
	}
}

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	loc := displayPath(d.Label, fs, opts.PathMode)
	if d.HasMarker {
		if loc != "" {
			loc += ":"
		}
		loc += d.Marker.String()
	}
	if loc != "" {
		loc += ": "
	}
	fmt.Fprintf(w, "%s%s %s: %s\n", loc, p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)

	f := sourceFile(d.Label, fs)
	if f == nil || !d.HasMarker || d.Marker.Line == 0 {
		return
	}

	first := int(d.Marker.Line) - int(opts.Context)
	if first < 1 {
		first = 1
	}
	width := len(fmt.Sprint(d.Marker.Line))
	for ln := first; ln <= int(d.Marker.Line); ln++ {
		// #nosec G115 -- ln is bounded by Marker.Line
		line := f.GetLine(uint32(ln))
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), line)
	}
	line := f.GetLine(d.Marker.Line)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), caretPadding(line, d.Marker.Column), p.caret.Sprint("^"))
}

// caretPadding повторяет табы строки и добивает пробелами по ширине символов,
// чтобы каретка встала под колонкой col (1-based, в кодпоинтах).
func caretPadding(line string, col uint32) string {
	var sb strings.Builder
	i := uint32(1)
	for _, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		i++
	}
	return sb.String()
}
