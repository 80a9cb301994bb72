package entity

// Game is a read-only view of one game at a point in time, handed to the views.
type Game struct {
	ID          string     `json:"id"`
	Board       Board      `json:"board"`
	Moves       MoveLog    `json:"moves"`
	Players     []Player   `json:"players"`
	Turn        Symbol     `json:"player_turn,omitempty"`
	Winner      Symbol     `json:"winner,omitempty"`
	WinnerName  string     `json:"winner_name,omitempty"`
	WinningLine []Position `json:"winning_line,omitempty"`
	Draw        bool       `json:"draw"`
	Status      Status     `json:"status"`
}

func (that *Game) IsFinished() bool {
	return that.Status.IsFinished()
}

// PlayerName - display name for the symbol, empty when unknown.
func (that *Game) PlayerName(symbol Symbol) string {
	for _, player := range that.Players {
		if player.Symbol == symbol {
			return player.Name
		}
	}

	return ""
}

// CanSelect - reports whether a selection of the position would be accepted.
func (that *Game) CanSelect(pos Position) bool {
	if that.IsFinished() || pos.Validate() != nil {
		return false
	}

	return that.Board.At(pos) == EmptyCell
}

// OnWinningLine - reports whether the position belongs to the winning line.
func (that *Game) OnWinningLine(pos Position) bool {
	for _, p := range that.WinningLine {
		if p == pos {
			return true
		}
	}

	return false
}
