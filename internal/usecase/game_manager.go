package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type gameController interface {
	SelectSquare(pos entity.Position) error
	RenameSymbol(symbol entity.Symbol, name string) error
	Restart()
	Snapshot() *entity.Game
}

type result struct {
	game *entity.Game
	err  error
}

type command struct {
	name   string
	apply  func(controller gameController) error
	mutate bool
	reply  chan result
}

type subscriber chan *entity.Game

// GameManager is the only goroutine touching the game controller. Views talk to it
// through its methods, which block until the command has been applied.
type GameManager struct {
	logger     *slog.Logger
	controller gameController

	commands chan command
	done     chan struct{}

	// owned by the Run goroutine
	subscribers map[subscriber]struct{}
}

func NewGameManager(logger *slog.Logger, controller gameController) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		controller:  controller,
		commands:    make(chan command),
		done:        make(chan struct{}),
		subscribers: make(map[subscriber]struct{}),
	}
}

// Run - processes commands one at a time until ctx is canceled. It must be called once.
func (that *GameManager) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	defer func() {
		close(that.done)

		for sub := range that.subscribers {
			delete(that.subscribers, sub)
			close(sub)
		}

		log.Info("game manager stopped")
	}()

	log.Info("game manager started")

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-that.commands:
			that.handle(cmd)
		}
	}
}

func (that *GameManager) handle(cmd command) {
	log := that.logger.With("method", cmd.name)

	if err := cmd.apply(that.controller); err != nil {
		log.Warn("command rejected", "error", err)
		cmd.reply <- result{err: err}

		return
	}

	game := that.controller.Snapshot()
	cmd.reply <- result{game: game}

	if !cmd.mutate {
		return
	}

	log.Debug("game updated", "moves", len(game.Moves), "status", game.Status)

	if game.IsFinished() && cmd.name == "SelectSquare" {
		log.Info("game finished", "gameID", game.ID, "status", game.Status, "winner", game.WinnerName)
	}

	that.publish(game)
}

// publish - hands the snapshot to every subscriber, replacing one it has not read yet.
func (that *GameManager) publish(game *entity.Game) {
	for sub := range that.subscribers {
		select {
		case <-sub:
		default:
		}

		sub <- game
	}
}

func (that *GameManager) exec(ctx context.Context, cmd command) (*entity.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to submit %s: %w", cmd.name, err)
	}

	cmd.reply = make(chan result, 1)

	select {
	case that.commands <- cmd:
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to submit %s: %w", cmd.name, ctx.Err())
	case <-that.done:
		return nil, apperror.ErrManagerStopped
	}

	select {
	case res := <-cmd.reply:
		return res.game, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to wait for %s: %w", cmd.name, ctx.Err())
	case <-that.done:
		return nil, apperror.ErrManagerStopped
	}
}

// SelectSquare - places the active player's symbol on the cell.
func (that *GameManager) SelectSquare(ctx context.Context, pos entity.Position) (*entity.Game, error) {
	game, err := that.exec(ctx, command{
		name:   "SelectSquare",
		mutate: true,
		apply: func(controller gameController) error {
			return controller.SelectSquare(pos)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select square: %w", err)
	}

	return game, nil
}

func (that *GameManager) RenameSymbol(ctx context.Context, symbol entity.Symbol, name string) (*entity.Game, error) {
	game, err := that.exec(ctx, command{
		name:   "RenameSymbol",
		mutate: true,
		apply: func(controller gameController) error {
			return controller.RenameSymbol(symbol, name)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename player: %w", err)
	}

	return game, nil
}

func (that *GameManager) Restart(ctx context.Context) (*entity.Game, error) {
	game, err := that.exec(ctx, command{
		name:   "Restart",
		mutate: true,
		apply: func(controller gameController) error {
			controller.Restart()
			that.logger.Info("game restarted")

			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	return game, nil
}

// GetGame - returns the current snapshot.
func (that *GameManager) GetGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.exec(ctx, command{
		name: "GetGame",
		apply: func(gameController) error {
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// Subscribe - returns a channel receiving a snapshot after every change. The channel is
// closed once ctx is done or the manager stops. Slow readers only see the latest snapshot.
func (that *GameManager) Subscribe(ctx context.Context) (<-chan *entity.Game, error) {
	sub := make(subscriber, 1)

	_, err := that.exec(ctx, command{
		name: "Subscribe",
		apply: func(gameController) error {
			that.subscribers[sub] = struct{}{}

			return nil
		},
	})
	if err != nil {
		// the command may have been applied before ctx ended
		that.unsubscribe(sub)

		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	go func() {
		select {
		case <-ctx.Done():
		case <-that.done:
			return
		}

		that.unsubscribe(sub)
	}()

	return sub, nil
}

// unsubscribe - runs on its own context since the subscriber's one is already done.
func (that *GameManager) unsubscribe(sub subscriber) {
	_, _ = that.exec(context.Background(), command{
		name: "Unsubscribe",
		apply: func(gameController) error {
			if _, ok := that.subscribers[sub]; ok {
				delete(that.subscribers, sub)
				close(sub)
			}

			return nil
		},
	})
}
