package driver

import (
	"fmt"

	"twig/internal/diag"
	"twig/internal/lexer"
	"twig/internal/source"
	"twig/internal/token"
	"twig/internal/trace"
)

// TokenizeResult holds the outcome of lexing one source.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Cached  bool
}

// Tokenize loads path and lexes it.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs, file, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(fs, file, opts), nil
}

// Load reads path into a fresh FileSet using the load options of opts.
func Load(path string, opts Options) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	fileID, err := fs.LoadWith(path, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return fs, fs.Get(fileID), nil
}

// TokenizeFile lexes a file that is already part of fs.
func TokenizeFile(fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	res := lexFile(file, &opts)
	res.FileSet = fs
	return res
}

// TokenizeSource lexes an in-memory source registered under name.
func TokenizeSource(name, src string, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(src)))
	res := lexFile(file, &opts)
	res.FileSet = fs
	return res
}

// lexFile runs one lexer session over file and collects its diagnostics
// into a fresh Bag. Duplicate reports are filtered before the Bag limit applies.
func lexFile(file *source.File, opts *Options) *TokenizeResult {
	tracer := opts.tracer()
	var span *trace.Span
	if opts.dirSpan != nil {
		span = opts.dirSpan.Child(trace.ScopeFile, "lex")
	} else {
		span = trace.Begin(tracer, trace.ScopeFile, "lex")
	}
	span.ForFile(file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	if cached, ok := opts.Cache.lookup(file, opts.Expr); ok {
		for _, d := range cached.Diagnostics {
			reporter.Report(d.Code, d.Severity, d.Label, markerPtr(d), d.Message)
		}
		span.Attr("cache", "hit").End(fmt.Sprintf("%d tokens", len(cached.Tokens)))
		return &TokenizeResult{File: file, Tokens: cached.Tokens, Bag: bag, Cached: true}
	}

	lx := lexer.New(file, lexer.Options{Reporter: reporter, Tracer: tracer})
	var res lexer.Result
	if opts.Expr {
		res = lx.RunExpression()
	} else {
		res = lx.Run()
	}
	opts.Cache.store(file, opts.Expr, res)

	span.End(fmt.Sprintf("%d tokens, %d diagnostics", len(res.Tokens), len(res.Diagnostics)))
	return &TokenizeResult{File: file, Tokens: res.Tokens, Bag: bag}
}

func markerPtr(d diag.Diagnostic) *source.Marker {
	if !d.HasMarker {
		return nil
	}
	m := d.Marker
	return &m
}

func statusFor(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}
