package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Validate - checks that the position lies on the board.
func (that Position) Validate() error {
	if that.Row < 0 || that.Row >= BoardSize || that.Col < 0 || that.Col >= BoardSize {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, that.Row, that.Col)
	}

	return nil
}

// Index - flat board index, row by row.
func (that Position) Index() int {
	return that.Row*BoardSize + that.Col
}

func PositionFromIndex(index int) Position {
	return Position{Row: index / BoardSize, Col: index % BoardSize}
}

// Move is a single placement; it is never changed after creation.
type Move struct {
	Position Position `json:"position"`
	Player   Symbol   `json:"player"`
}

// MoveLog holds recorded moves, newest first.
type MoveLog []Move

// Prepend - returns a new log with the move in front. The receiver is not modified.
func (that MoveLog) Prepend(move Move) MoveLog {
	next := make(MoveLog, 0, len(that)+1)
	next = append(next, move)

	return append(next, that...)
}

// Occupied - reports whether any recorded move sits on the position.
func (that MoveLog) Occupied(pos Position) bool {
	for _, move := range that {
		if move.Position == pos {
			return true
		}
	}

	return false
}

// Chronological - returns a copy of the log, oldest move first.
func (that MoveLog) Chronological() []Move {
	moves := make([]Move, len(that))
	for i, move := range that {
		moves[len(that)-1-i] = move
	}

	return moves
}
