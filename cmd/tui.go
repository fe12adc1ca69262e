package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"topspot/internal/shared"
	"topspot/internal/ui"
)

// TUI launches the interactive terminal UI for browsing top items.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/topspot-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if err := r.open(); err != nil {
		return err
	}

	if !r.session.LoggedIn() {
		return fmt.Errorf("%w: run 'topspot auth login' first", shared.ErrNotAuthenticated)
	}

	model := ui.NewModel(ctx, r.spotify)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
