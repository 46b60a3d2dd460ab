package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"twig/internal/driver"
	"twig/internal/source"
	"twig/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runDirWithUI lexes dir while a Bubble Tea progress view renders on stderr.
func runDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	files, err := driver.ListTemplates(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.MultiSink(opts.Progress, driver.ChannelSink{Ch: events})
		fs, results, err := driver.TokenizeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c): дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
