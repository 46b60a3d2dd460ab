package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"twig/internal/driver"
	"twig/internal/trace"
)

// addLexFlags registers flags shared by tokenize and check.
func addLexFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("expr", false, "lex the argument itself as an expression fragment")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().StringSlice("ext", nil, "template extensions for directory walks (default from twig.toml)")
	cmd.Flags().Bool("nfc", false, "normalize sources to Unicode NFC before lexing")
	cmd.Flags().Bool("cache", false, "reuse lexer results from the on-disk cache")
	cmd.Flags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/twig)")
}

// driverOptions merges twig.toml with the command's lex flags.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg := current.cfg
	opts := driver.Options{
		MaxDiagnostics: cfg.Lex.MaxDiagnostics,
		NormalizeNFC:   cfg.Lex.NormalizeNFC,
		Extensions:     cfg.Lex.Extensions,
		Jobs:           cfg.Lex.Jobs,
		Tracer:         trace.FromContext(cmd.Context()),
		Progress:       lexCounter,
	}

	flags := cmd.Flags()
	var err error
	if opts.Expr, err = flags.GetBool("expr"); err != nil {
		return opts, fmt.Errorf("failed to get expr flag: %w", err)
	}
	if flags.Changed("jobs") {
		if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("ext") {
		if opts.Extensions, err = flags.GetStringSlice("ext"); err != nil {
			return opts, fmt.Errorf("failed to get ext flag: %w", err)
		}
	}
	if flags.Changed("nfc") {
		opts.NormalizeNFC, _ = flags.GetBool("nfc")
	}

	useCache := cfg.Cache.Enabled
	if flags.Changed("cache") {
		useCache, _ = flags.GetBool("cache")
	}
	if useCache {
		dir := cfg.Cache.Dir
		if flags.Changed("cache-dir") {
			dir, _ = flags.GetString("cache-dir")
		}
		if opts.Cache, err = driver.OpenTokenCache(dir, "twig"); err != nil {
			return opts, fmt.Errorf("failed to open token cache: %w", err)
		}
	}
	return opts, nil
}

// inputKind classifies the command argument.
type inputKind uint8

const (
	inputFile inputKind = iota
	inputDir
	inputExpr
)

func classifyInput(arg string, expr bool) (inputKind, error) {
	if expr {
		return inputExpr, nil
	}
	st, err := os.Stat(arg)
	if err != nil {
		return inputFile, fmt.Errorf("failed to stat %s: %w", arg, err)
	}
	if st.IsDir() {
		return inputDir, nil
	}
	return inputFile, nil
}

// displayLabel shortens paths under the working directory.
func displayLabel(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || rel == ".." || filepath.IsAbs(rel) || len(rel) >= 2 && rel[:2] == ".." {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
