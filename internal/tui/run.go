package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, loader Loader, opts ...Option) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(
		New(ctx, loader, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard error: %w", err)
	}

	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
