package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcanaland/turkokards/internal/logger"
	"github.com/arcanaland/turkokards/internal/session"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, s *session.Session, opts Options) error {
	m := initialModel(ctx, s, opts, logger.Component(opts.Logger, "ui"))
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	// the model closes the session on quit; this covers interrupts
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}
