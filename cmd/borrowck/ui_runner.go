package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"borrowck/internal/driver"
	"borrowck/internal/ui"
)

type checkOutcome struct {
	results []*driver.Result
	err     error
}

// runCheckWithUI checks paths while a Bubble Tea program renders
// progress. The program exits once the event channel is closed.
func runCheckWithUI(ctx context.Context, title string, paths []string, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.CheckFiles(ctx, paths, &opts)
		outcomeCh <- checkOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the checker from blocking on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
