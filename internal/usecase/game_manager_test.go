package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const waitTimeout = 2 * time.Second

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startManager(t *testing.T) (context.Context, *GameManager, context.CancelFunc) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	controller := tictactoe.NewGameController("game-1", entity.NewRegistry(entity.DefaultNameX, entity.DefaultNameO), tictactoe.Rules{})
	manager := NewGameManager(logger, controller)

	runCtx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		manager.Run(runCtx)
	}()

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	ctx, ctxCancel := context.WithTimeout(context.Background(), waitTimeout)
	t.Cleanup(ctxCancel)

	return ctx, manager, cancel
}

func receive(t *testing.T, updates <-chan *entity.Game) *entity.Game {
	t.Helper()

	select {
	case game, ok := <-updates:
		require.True(t, ok, "updates channel closed")
		return game
	case <-time.After(waitTimeout):
		t.Fatal("no update received")
		return nil
	}
}

func TestGameManager_Commands(t *testing.T) {
	t.Run("Plays a game through to a win", func(t *testing.T) {
		ctx, manager, _ := startManager(t)

		// Given: (0,0)X (1,0)O (0,1)X (1,1)O
		for _, pos := range []entity.Position{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}} {
			_, err := manager.SelectSquare(ctx, pos)
			require.NoError(t, err)
		}

		// When: X completes the top row
		game, err := manager.SelectSquare(ctx, entity.Position{Row: 0, Col: 2})

		// Then: X wins
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWonByX, game.Status)
		assert.Equal(t, "Player 1", game.WinnerName)
	})

	t.Run("Rejected commands leave the game untouched", func(t *testing.T) {
		ctx, manager, _ := startManager(t)

		_, err := manager.SelectSquare(ctx, entity.Position{Row: 1, Col: 1})
		require.NoError(t, err)
		before, err := manager.GetGame(ctx)
		require.NoError(t, err)

		_, err = manager.SelectSquare(ctx, entity.Position{Row: 1, Col: 1})
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		_, err = manager.RenameSymbol(ctx, entity.SymbolX, "")
		require.ErrorIs(t, err, apperror.ErrEmptyName)

		after, err := manager.GetGame(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("game changed after rejected commands (-before +after):\n%s", diff)
		}
	})

	t.Run("Restart keeps names", func(t *testing.T) {
		ctx, manager, _ := startManager(t)

		_, err := manager.RenameSymbol(ctx, entity.SymbolX, "Alice")
		require.NoError(t, err)
		_, err = manager.SelectSquare(ctx, entity.Position{Row: 2, Col: 2})
		require.NoError(t, err)

		game, err := manager.Restart(ctx)

		require.NoError(t, err)
		assert.Empty(t, game.Moves)
		assert.Equal(t, "Alice", game.PlayerName(entity.SymbolX))
	})

	t.Run("Commands fail once the manager stopped", func(t *testing.T) {
		ctx, manager, stop := startManager(t)

		stop()

		assert.Eventually(t, func() bool {
			_, err := manager.GetGame(ctx)
			return err != nil
		}, waitTimeout, 10*time.Millisecond)

		_, err := manager.SelectSquare(ctx, entity.Position{Row: 0, Col: 0})
		assert.ErrorIs(t, err, apperror.ErrManagerStopped)
	})

	t.Run("Commands honour the caller context", func(t *testing.T) {
		_, manager, _ := startManager(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := manager.GetGame(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGameManager_Subscribe(t *testing.T) {
	t.Run("Subscribers receive every accepted change", func(t *testing.T) {
		ctx, manager, _ := startManager(t)

		// Given: a subscriber
		subCtx, unsubscribe := context.WithCancel(ctx)
		defer unsubscribe()
		updates, err := manager.Subscribe(subCtx)
		require.NoError(t, err)

		// When: a move is made
		_, err = manager.SelectSquare(ctx, entity.Position{Row: 0, Col: 0})
		require.NoError(t, err)

		// Then: the subscriber sees it
		game := receive(t, updates)
		assert.Len(t, game.Moves, 1)

		// When: a rename follows
		_, err = manager.RenameSymbol(ctx, entity.SymbolO, "Bob")
		require.NoError(t, err)

		// Then: the subscriber sees the new name
		game = receive(t, updates)
		assert.Equal(t, "Bob", game.PlayerName(entity.SymbolO))
	})

	t.Run("Slow subscribers get the latest snapshot", func(t *testing.T) {
		ctx, manager, _ := startManager(t)

		subCtx, unsubscribe := context.WithCancel(ctx)
		defer unsubscribe()
		updates, err := manager.Subscribe(subCtx)
		require.NoError(t, err)

		for _, pos := range []entity.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}} {
			_, err = manager.SelectSquare(ctx, pos)
			require.NoError(t, err)
		}

		// the last move is published once the next command is taken
		_, err = manager.GetGame(ctx)
		require.NoError(t, err)

		game := receive(t, updates)
		assert.Len(t, game.Moves, 3)
	})

	t.Run("Channel closes when the subscription context ends", func(t *testing.T) {
		ctx, manager, _ := startManager(t)

		subCtx, unsubscribe := context.WithCancel(ctx)
		updates, err := manager.Subscribe(subCtx)
		require.NoError(t, err)

		unsubscribe()

		select {
		case _, ok := <-updates:
			assert.False(t, ok)
		case <-time.After(waitTimeout):
			t.Fatal("subscription was not closed")
		}
	})

	t.Run("Channel closes when the manager stops", func(t *testing.T) {
		ctx, manager, stop := startManager(t)

		updates, err := manager.Subscribe(ctx)
		require.NoError(t, err)

		stop()

		select {
		case _, ok := <-updates:
			assert.False(t, ok)
		case <-time.After(waitTimeout):
			t.Fatal("subscription was not closed")
		}
	})

	t.Run("A subscription abandoned while waiting for the reply is removed", func(t *testing.T) {
		// Given: a controller that stalls the reply to the subscribe command
		subCtx, cancelSub := context.WithCancel(context.Background())
		controller := &stallingController{
			gameController: tictactoe.NewGameController("game-1", entity.NewRegistry(entity.DefaultNameX, entity.DefaultNameO), tictactoe.Rules{}),
			onSnapshot: func() {
				cancelSub()
				time.Sleep(50 * time.Millisecond)
			},
		}
		manager := NewGameManager(slog.New(slog.NewJSONHandler(io.Discard, nil)), controller)

		runCtx, stop := context.WithCancel(context.Background())
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			manager.Run(runCtx)
		}()
		defer func() {
			stop()
			wg.Wait()
		}()

		// When: the caller gives up before the reply arrives
		_, err := manager.Subscribe(subCtx)

		// Then: no subscriber is left behind
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, subscriberCount(t, manager))
	})
}

type stallingController struct {
	gameController

	once       sync.Once
	onSnapshot func()
}

func (that *stallingController) Snapshot() *entity.Game {
	that.once.Do(that.onSnapshot)

	return that.gameController.Snapshot()
}

func subscriberCount(t *testing.T, manager *GameManager) int {
	t.Helper()

	var count int
	_, err := manager.exec(context.Background(), command{
		name: "CountSubscribers",
		apply: func(gameController) error {
			count = len(manager.subscribers)
			return nil
		},
	})
	require.NoError(t, err)

	return count
}
