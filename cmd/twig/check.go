package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"twig/internal/diag"
	"twig/internal/diagfmt"
	"twig/internal/driver"
	"twig/internal/observ"
	"twig/internal/trace"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.twig|directory]",
	Short: "Report lexical diagnostics for templates",
	Long: `Check lexes templates and prints only diagnostics. The exit status is 1
when any error was reported. Without an argument the current directory is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	addLexFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	pathMode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeDriver, "check")
	timer := observ.NewTimer()
	res, err := lexInput(cmd.Context(), target, opts, false, timer)
	if err != nil {
		span.End("error")
		return err
	}

	bag := res.bag
	bag.Sort()
	bag.Dedup()

	out := cmd.OutOrStdout()
	err = timer.Measure(observ.PhaseRender, func() error {
		switch format {
		case "json":
			if current.timings {
				driver.AppendTimings(bag, "", timer.Report())
			}
			return diagfmt.JSON(out, bag, res.fs, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         diagfmt.ParsePathMode(pathMode),
			})
		case "short":
			if s := diag.FormatShortDiagnostics(bag.Items(), res.fs.BaseDir()); s != "" {
				_, err := fmt.Fprintln(out, s)
				return err
			}
			return nil
		default:
			diagfmt.Pretty(out, bag, res.fs, diagfmt.PrettyOpts{
				Color:    current.useColor(os.Stdout),
				Context:  2,
				PathMode: diagfmt.ParsePathMode(pathMode),
			})
			return nil
		}
	})
	span.End(fmt.Sprintf("%d diagnostics", bag.Len()))
	if err != nil {
		return err
	}

	if format != "json" {
		printSummary(cmd, bag, len(res.files))
		printTimings(cmd.ErrOrStderr(), timer)
	}

	if bag.HasErrors() {
		// диагностики уже напечатаны, usage не нужен
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}

func printSummary(cmd *cobra.Command, bag *diag.Bag, files int) {
	if current.quiet {
		return
	}
	var errs, warns int
	for _, d := range bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			errs++
		case d.Severity == diag.SevWarning:
			warns++
		}
	}
	msg := fmt.Sprintf("%d error(s), %d warning(s) in %d file(s)", errs, warns, files)
	if n := bag.Dropped(); n > 0 {
		msg += fmt.Sprintf(", %d not shown", n)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
}
