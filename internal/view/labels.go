// Package view holds the wording shared by the terminal and browser views.
package view

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Banner - turn, winner or draw line shown above the board.
func Banner(game *entity.Game) string {
	switch {
	case game.Winner != entity.EmptyCell:
		return fmt.Sprintf("%s won!", displayName(game.WinnerName, game.Winner))
	case game.Draw:
		return "It's a draw!"
	default:
		return fmt.Sprintf("%s's turn (%s)", displayName(game.PlayerName(game.Turn), game.Turn), game.Turn)
	}
}

// CellLabel - accessible description of a cell, one-based for people.
func CellLabel(game *entity.Game, pos entity.Position) string {
	content := "empty"
	if symbol := game.Board.At(pos); symbol != entity.EmptyCell {
		content = symbol.String()
	}

	return fmt.Sprintf("Row %d, column %d, %s", pos.Row+1, pos.Col+1, content)
}

// MoveLabel - one line of the move list; number counts from the first move.
func MoveLabel(number int, move entity.Move) string {
	return fmt.Sprintf("#%d %s (row %d, col %d)", number, move.Player, move.Position.Row+1, move.Position.Col+1)
}

func displayName(name string, symbol entity.Symbol) string {
	if name == "" {
		return "Player " + symbol.String()
	}

	return name
}
