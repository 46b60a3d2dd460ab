package driver

import (
	"path/filepath"
	"slices"
	"strings"

	"twig/internal/trace"
)

// DefaultExtensions lists the template suffixes picked up by TokenizeDir.
var DefaultExtensions = []string{".twig"}

// Options configures a tokenize run.
type Options struct {
	// MaxDiagnostics limits every per-file Bag.
	MaxDiagnostics int
	// NormalizeNFC rewrites loaded files into Unicode normal form C.
	NormalizeNFC bool
	// Expr lexes every input as a bare expression fragment.
	Expr bool
	// Extensions filters directory walks; empty means DefaultExtensions.
	Extensions []string
	// Jobs caps the number of files lexed in parallel; <= 0 means GOMAXPROCS.
	Jobs int
	// Tracer receives driver and file spans. Nil means trace.Nop.
	Tracer trace.Tracer
	// Progress receives per-file events; may be nil.
	Progress ProgressSink
	// Cache stores lexed results keyed by file content; may be nil.
	Cache *TokenCache

	dirSpan *trace.Span // file spans of TokenizeDir nest under it
}

func (o *Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

func (o *Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}

// matches reports whether path carries one of the configured extensions.
func (o *Options) matches(path string) bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(exts, func(e string) bool {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		return e == ext
	})
}
