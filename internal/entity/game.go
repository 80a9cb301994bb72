package entity

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWonByX     Status = "won_x"
	StatusWonByO     Status = "won_o"
	StatusDraw       Status = "draw"
)

// WinCombos are the eight winning lines as flat cell indices. Order matters: the first
// complete line wins.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [BoardSize][BoardSize]Symbol

func (that Board) At(pos Position) Symbol {
	return that[pos.Row][pos.Col]
}

func (that Board) cell(index int) Symbol {
	return that.At(PositionFromIndex(index))
}

// Filled - number of non-empty cells.
func (that Board) Filled() int {
	filled := 0
	for _, row := range that {
		for _, cell := range row {
			if cell != EmptyCell {
				filled++
			}
		}
	}

	return filled
}

// ProjectBoard - folds the move log into a grid. The board has no state of its own.
func ProjectBoard(log MoveLog) Board {
	var board Board
	for _, move := range log {
		board[move.Position.Row][move.Position.Col] = move.Player
	}

	return board
}

// ActivePlayer - X on an even move count, O on an odd one.
func ActivePlayer(log MoveLog) Symbol {
	if len(log)%2 == 0 {
		return SymbolX
	}

	return SymbolO
}

// DetermineWinner - returns the symbol holding the first complete line together with
// that line, or EmptyCell when no line is complete.
func DetermineWinner(board Board) (Symbol, []Position) {
	for _, combo := range WinCombos {
		a, b, c := board.cell(combo[0]), board.cell(combo[1]), board.cell(combo[2])
		if a != EmptyCell && a == b && b == c {
			return a, []Position{
				PositionFromIndex(combo[0]),
				PositionFromIndex(combo[1]),
				PositionFromIndex(combo[2]),
			}
		}
	}

	return EmptyCell, nil
}

// IsDraw - the board is full and nobody won.
func IsDraw(log MoveLog) bool {
	if len(log) != CellCount {
		return false
	}

	winner, _ := DetermineWinner(ProjectBoard(log))

	return winner == EmptyCell
}

func DetermineStatus(log MoveLog) Status {
	winner, _ := DetermineWinner(ProjectBoard(log))

	switch {
	case winner == SymbolX:
		return StatusWonByX
	case winner == SymbolO:
		return StatusWonByO
	case len(log) == CellCount:
		return StatusDraw
	default:
		return StatusInProgress
	}
}

func (that Status) IsFinished() bool {
	return that != StatusInProgress
}
