package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"twig/internal/diagfmt"
	"twig/internal/observ"
	"twig/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.twig|directory|expression>",
	Short: "Tokenize a template file or directory",
	Long: `Tokenize breaks templates into tokens and prints them together with
lexical diagnostics. With --expr the argument is lexed as a bare expression.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "", "output format (pretty|json|msgpack, default from twig.toml)")
	tokenizeCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	addLexFlags(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = current.cfg.Output.Format
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeDriver, "tokenize")
	timer := observ.NewTimer()
	res, err := lexInput(cmd.Context(), args[0], opts, shouldUseTUI(mode, format), timer)
	if err != nil {
		span.End("error")
		return err
	}

	// Выводим диагностику в stderr, если есть
	if res.bag.Len() > 0 {
		res.bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), res.bag, res.fs, diagfmt.PrettyOpts{
			Color:   current.useColor(os.Stderr),
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	single := res.kind != inputDir
	err = timer.Measure(observ.PhaseRender, func() error {
		switch {
		case single && format == "pretty":
			return diagfmt.FormatTokensPretty(out, res.files[0].Tokens)
		case single && format == "json":
			return diagfmt.FormatTokensJSON(out, res.files[0].Tokens)
		case single:
			return diagfmt.FormatTokensMsgpack(out, res.files[0].Tokens)
		case format == "pretty":
			return diagfmt.FormatFilesPretty(out, res.files)
		case format == "json":
			return diagfmt.FormatFilesJSON(out, res.files)
		default:
			return diagfmt.FormatFilesMsgpack(out, res.files)
		}
	})
	span.End(fmt.Sprintf("%d files, %d diagnostics", len(res.files), res.bag.Len()))
	if err != nil {
		return err
	}

	printTimings(cmd.ErrOrStderr(), timer)
	return nil
}
