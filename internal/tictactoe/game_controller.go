package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type Rules struct {
	AllowEmptyNames       bool
	LockNamesWhenFinished bool
}

// GameController owns the move log and the player registry of one game. It is not safe
// for concurrent use; usecase.GameManager serializes access to it.
type GameController struct {
	id       string
	rules    Rules
	moves    entity.MoveLog
	registry *entity.Registry
}

func NewGameController(id string, registry *entity.Registry, rules Rules) *GameController {
	return &GameController{
		id:       id,
		rules:    rules,
		registry: registry,
	}
}

// SelectSquare - records a move for the active player. A rejected move leaves the state untouched.
func (that *GameController) SelectSquare(pos entity.Position) error {
	if err := that.validateMove(pos); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.moves = that.moves.Prepend(entity.Move{
		Position: pos,
		Player:   entity.ActivePlayer(that.moves),
	})

	return nil
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(pos entity.Position) error {
	if err := pos.Validate(); err != nil {
		return err
	}

	if entity.DetermineStatus(that.moves).IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.moves.Occupied(pos) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, pos.Row, pos.Col)
	}

	return nil
}

// RenameSymbol - changes the display name of a player. Moves are not affected.
func (that *GameController) RenameSymbol(symbol entity.Symbol, name string) error {
	if !symbol.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownSymbol, symbol)
	}

	name = strings.TrimSpace(name)
	if name == "" && !that.rules.AllowEmptyNames {
		return apperror.ErrEmptyName
	}

	if that.rules.LockNamesWhenFinished && entity.DetermineStatus(that.moves).IsFinished() {
		return apperror.ErrNamesLocked
	}

	if err := that.registry.Rename(symbol, name); err != nil {
		return fmt.Errorf("failed to rename player: %w", err)
	}

	return nil
}

// Restart - clears the move log. Player names are kept.
func (that *GameController) Restart() {
	that.moves = nil
}

// Snapshot - derives the current board, turn and result from the move log.
func (that *GameController) Snapshot() *entity.Game {
	board := entity.ProjectBoard(that.moves)
	winner, line := entity.DetermineWinner(board)
	status := entity.DetermineStatus(that.moves)

	game := &entity.Game{
		ID:          that.id,
		Board:       board,
		Moves:       append(entity.MoveLog{}, that.moves...),
		Players:     that.registry.Players(),
		Winner:      winner,
		WinningLine: line,
		Draw:        entity.IsDraw(that.moves),
		Status:      status,
	}

	if winner != entity.EmptyCell {
		game.WinnerName = that.registry.Name(winner)
	}

	if !status.IsFinished() {
		game.Turn = entity.ActivePlayer(that.moves)
	}

	return game
}
