package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type gameManager interface {
	gameUseCase
	GetGame(ctx context.Context) (*entity.Game, error)
	Subscribe(ctx context.Context) (<-chan *entity.Game, error)
}

// Run - shows the game in the terminal until the user quits or ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, game gameManager, opts ...tea.ProgramOption) error {
	log := logger.With("component", "tui", "method", "Run")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, err := game.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to game: %w", err)
	}

	initial, err := game.GetGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	log.Info("terminal view started", "gameID", initial.ID)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)

	if _, err = tea.NewProgram(NewModel(ctx, game, initial, updates), opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("terminal view stopped", "reason", ctx.Err())

			return nil
		}

		return fmt.Errorf("failed to run terminal view: %w", err)
	}

	log.Info("terminal view closed")

	return nil
}
