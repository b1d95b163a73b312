package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lupin/internal/driver"
	"lupin/internal/ui"
)

// dirRunner runs one directory pass, sending progress to events when it is not nil.
type dirRunner func(events chan<- driver.FileEvent) error

// runDir runs fn, drawing a live progress view on errOut when enabled.
func runDir(ctx context.Context, s *settings, title string, errOut io.Writer, fn dirRunner) error {
	if !s.progress || s.quiet {
		return fn(nil)
	}

	events := make(chan driver.FileEvent, 64)
	prog := tea.NewProgram(ui.NewProgressModel(title, events),
		tea.WithOutput(errOut),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)
	uiDone := make(chan error, 1)
	go func() {
		_, err := prog.Run()
		uiDone <- err
		// программа могла выйти раньше, не блокируем воркеров
		for range events {
		}
	}()

	err := fn(events)
	close(events)
	if uiErr := <-uiDone; uiErr != nil && err == nil {
		err = uiErr
	}
	return err
}
