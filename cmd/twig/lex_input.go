package main

import (
	"context"
	"fmt"

	"twig/internal/diag"
	"twig/internal/diagfmt"
	"twig/internal/driver"
	"twig/internal/observ"
	"twig/internal/source"
)

// exprLabel labels diagnostics of --expr arguments.
const exprLabel = "<expr>"

// lexOutcome is what tokenize and check share: per-file tokens plus one
// merged Bag over a FileSet that can resolve every label.
type lexOutcome struct {
	kind  inputKind
	files []diagfmt.FileTokens
	bag   *diag.Bag
	fs    *source.FileSet
}

// lexInput runs the load and lex phases for arg.
func lexInput(ctx context.Context, arg string, opts driver.Options, useTUI bool, timer *observ.Timer) (*lexOutcome, error) {
	kind, err := classifyInput(arg, opts.Expr)
	if err != nil {
		return nil, err
	}
	out := &lexOutcome{kind: kind}

	switch kind {
	case inputExpr:
		err = timer.Measure(observ.PhaseLex, func() error {
			res := driver.TokenizeSource(exprLabel, arg, opts)
			out.files = []diagfmt.FileTokens{{Path: exprLabel, Tokens: res.Tokens}}
			out.bag, out.fs = res.Bag, res.FileSet
			return nil
		})

	case inputFile:
		var file *source.File
		err = timer.Measure(observ.PhaseLoad, func() error {
			var loadErr error
			out.fs, file, loadErr = driver.Load(arg, opts)
			return loadErr
		})
		if err != nil {
			return nil, err
		}
		err = timer.Measure(observ.PhaseLex, func() error {
			res := driver.TokenizeFile(out.fs, file, opts)
			out.files = []diagfmt.FileTokens{{Path: displayLabel(file.Path), Tokens: res.Tokens}}
			out.bag = res.Bag
			return nil
		})

	case inputDir:
		err = timer.Measure(observ.PhaseLex, func() error {
			var (
				results []driver.TokenizeDirResult
				lexErr  error
			)
			if useTUI {
				out.fs, results, lexErr = runDirWithUI(ctx, "tokenize "+arg, arg, opts)
			} else {
				out.fs, results, lexErr = driver.TokenizeDir(ctx, arg, opts)
			}
			if lexErr != nil {
				return lexErr
			}
			for _, r := range results {
				out.files = append(out.files, diagfmt.FileTokens{Path: displayLabel(r.Path), Tokens: r.Tokens})
			}
			out.bag = driver.MergeBags(results, 0)
			return nil
		})
	}
	if err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}
	return out, nil
}
