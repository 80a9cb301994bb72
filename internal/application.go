package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/rest"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/tui"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/websocket"
)

// RunPlay - runs the game in the terminal. With serve set the browser view runs alongside it.
func RunPlay(ctx context.Context, logger *slog.Logger, conf *config.Config, serve bool) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	manager := newGameManager(logger, conf)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		manager.Run(ctx)
		return nil
	})

	if serve {
		group.Go(func() error {
			return startHTTP(ctx, logger, conf, manager)
		})
	}

	group.Go(func() error {
		// quitting the terminal view stops everything else
		defer cancel()

		return tui.Run(ctx, logger, manager)
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("play failed: %w", err)
	}

	log.Info("Application stopped")

	return nil
}

// RunServe - runs the browser view and JSON API until ctx is canceled.
func RunServe(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	manager := newGameManager(logger, conf)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		manager.Run(ctx)
		return nil
	})

	group.Go(func() error {
		return startHTTP(ctx, logger, conf, manager)
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("serve failed: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func startHTTP(ctx context.Context, logger *slog.Logger, conf *config.Config, manager *usecase.GameManager) error {
	wsServer := websocket.New(logger, manager)
	httpServer := rest.New(logger, manager, wsServer)

	logger.Info("Starting HTTP server", "component", "app", "port", conf.HTTPPort)

	if err := httpServer.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func newGameManager(logger *slog.Logger, conf *config.Config) *usecase.GameManager {
	nameX, nameO := conf.Players.X, conf.Players.O
	if conf.Players.RandomNames {
		nameX, nameO = pkg.GeneratePlayerName(), pkg.GeneratePlayerName()
	}

	controller := tictactoe.NewGameController(
		pkg.GenerateGameID(),
		entity.NewRegistry(nameX, nameO),
		tictactoe.Rules{
			AllowEmptyNames:       conf.Rules.AllowEmptyNames,
			LockNamesWhenFinished: conf.Rules.LockNamesWhenFinished,
		},
	)

	return usecase.NewGameManager(logger, controller)
}

// LogOutput - where logs go while the terminal view owns stdout. The closer must be called on exit.
func LogOutput(conf *config.Config) (io.Writer, func() error, error) {
	if conf.LogFile == "" {
		return io.Discard, func() error { return nil }, nil
	}

	file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, file.Close, nil
}
