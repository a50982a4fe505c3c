package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tasktube/internal/shared"
	"github.com/desertthunder/tasktube/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal browser for the video collection.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.buildEngine(ctx)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		r.writePlain("Not authenticated. Run 'tasktube auth login' to connect your Google account.\n")
		return nil
	}
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tasktube-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return model.Err()
}
