package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLog - turns chronological positions into a newest-first log with alternating players.
func buildLog(positions ...Position) MoveLog {
	var log MoveLog
	for _, pos := range positions {
		log = log.Prepend(Move{Position: pos, Player: ActivePlayer(log)})
	}

	return log
}

func TestPosition_Validate(t *testing.T) {
	t.Run("Accepts every cell on the board", func(t *testing.T) {
		for index := 0; index < CellCount; index++ {
			// Given: a position built from a board index
			pos := PositionFromIndex(index)

			// Then: it is valid and maps back to the same index
			require.NoError(t, pos.Validate())
			assert.Equal(t, index, pos.Index())
		}
	})

	t.Run("Rejects out of range coordinates", func(t *testing.T) {
		for _, pos := range []Position{{Row: -1, Col: 0}, {Row: 0, Col: 3}, {Row: 3, Col: 3}, {Row: 1, Col: -2}} {
			// When: validating a position outside the grid
			err := pos.Validate()

			// Then: ErrInvalidCell is returned
			assert.ErrorIs(t, err, apperror.ErrInvalidCell)
		}
	})
}

func TestMoveLog(t *testing.T) {
	t.Run("Prepend keeps newest move first and leaves the original intact", func(t *testing.T) {
		// Given: a log with one move
		first := Move{Position: Position{Row: 0, Col: 0}, Player: SymbolX}
		log := MoveLog{first}

		// When: a second move is prepended
		second := Move{Position: Position{Row: 1, Col: 1}, Player: SymbolO}
		next := log.Prepend(second)

		// Then: the new log is newest first and the old one is unchanged
		assert.Equal(t, MoveLog{second, first}, next)
		assert.Equal(t, MoveLog{first}, log)
	})

	t.Run("Chronological reverses the order", func(t *testing.T) {
		// Given: three moves
		log := buildLog(Position{0, 0}, Position{1, 1}, Position{2, 2})

		// When: reading them chronologically
		moves := log.Chronological()

		// Then: the oldest move comes first
		require.Len(t, moves, 3)
		assert.Equal(t, Position{0, 0}, moves[0].Position)
		assert.Equal(t, SymbolX, moves[0].Player)
		assert.Equal(t, Position{2, 2}, moves[2].Position)
	})

	t.Run("Occupied reports recorded positions", func(t *testing.T) {
		log := buildLog(Position{2, 1})

		assert.True(t, log.Occupied(Position{2, 1}))
		assert.False(t, log.Occupied(Position{1, 2}))
	})
}

func TestActivePlayer(t *testing.T) {
	t.Run("Alternates with move count parity", func(t *testing.T) {
		// Given: a log growing one move at a time
		var log MoveLog
		for index := 0; index < CellCount; index++ {
			// Then: parity decides whose turn it is
			if len(log)%2 == 0 {
				assert.Equal(t, SymbolX, ActivePlayer(log))
			} else {
				assert.Equal(t, SymbolO, ActivePlayer(log))
			}

			log = log.Prepend(Move{Position: PositionFromIndex(index), Player: ActivePlayer(log)})
		}
	})
}

func TestProjectBoard(t *testing.T) {
	t.Run("Board holds exactly one cell per move", func(t *testing.T) {
		positions := []Position{{0, 0}, {1, 0}, {0, 1}, {2, 2}, {1, 2}}
		for n := 0; n < len(positions)+1; n++ {
			// Given: the first n moves
			log := buildLog(positions[:n]...)

			// When: projecting the board
			board := ProjectBoard(log)

			// Then: the filled cell count equals the log length
			assert.Equal(t, len(log), board.Filled())
		}
	})

	t.Run("Cells carry the symbol of the move placed there", func(t *testing.T) {
		board := ProjectBoard(buildLog(Position{0, 0}, Position{1, 1}))

		assert.Equal(t, SymbolX, board.At(Position{0, 0}))
		assert.Equal(t, SymbolO, board.At(Position{1, 1}))
		assert.Equal(t, EmptyCell, board.At(Position{2, 2}))
	})
}

func TestDetermineWinner(t *testing.T) {
	t.Run("No winner with fewer than three moves", func(t *testing.T) {
		for _, log := range []MoveLog{
			nil,
			buildLog(Position{0, 0}),
			buildLog(Position{0, 0}, Position{0, 1}),
		} {
			winner, line := DetermineWinner(ProjectBoard(log))

			assert.Equal(t, EmptyCell, winner)
			assert.Nil(t, line)
		}
	})

	t.Run("Returns X for a completed top row", func(t *testing.T) {
		// Given: (0,0)X (1,0)O (0,1)X (1,1)O (0,2)X
		log := buildLog(Position{0, 0}, Position{1, 0}, Position{0, 1}, Position{1, 1}, Position{0, 2})

		// When: determining the winner
		winner, line := DetermineWinner(ProjectBoard(log))

		// Then: X wins on the top row
		assert.Equal(t, SymbolX, winner)
		assert.Equal(t, []Position{{0, 0}, {0, 1}, {0, 2}}, line)
	})

	t.Run("Returns O for a completed column", func(t *testing.T) {
		board := Board{
			{SymbolX, SymbolO, SymbolX},
			{EmptyCell, SymbolO, SymbolX},
			{EmptyCell, SymbolO, EmptyCell},
		}

		winner, line := DetermineWinner(board)

		assert.Equal(t, SymbolO, winner)
		assert.Equal(t, []Position{{0, 1}, {1, 1}, {2, 1}}, line)
	})

	t.Run("Detects the anti-diagonal", func(t *testing.T) {
		board := Board{
			{SymbolO, SymbolO, SymbolX},
			{EmptyCell, SymbolX, EmptyCell},
			{SymbolX, EmptyCell, EmptyCell},
		}

		winner, line := DetermineWinner(board)

		assert.Equal(t, SymbolX, winner)
		assert.Equal(t, []Position{{0, 2}, {1, 1}, {2, 0}}, line)
	})

	t.Run("First line in table order wins", func(t *testing.T) {
		// Given: a board with both a full row and a full diagonal for X
		board := Board{
			{SymbolX, SymbolX, SymbolX},
			{SymbolO, SymbolX, SymbolO},
			{SymbolO, SymbolO, SymbolX},
		}

		// When: determining the winner
		_, line := DetermineWinner(board)

		// Then: the row, which comes first in the table, is reported
		assert.Equal(t, []Position{{0, 0}, {0, 1}, {0, 2}}, line)
	})
}

func TestDrawAndStatus(t *testing.T) {
	// X O X / X O O / O X X filled without any line.
	drawLog := buildLog(
		Position{0, 0}, Position{0, 1}, Position{0, 2},
		Position{1, 1}, Position{1, 0}, Position{1, 2},
		Position{2, 1}, Position{2, 0}, Position{2, 2},
	)

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		require.Len(t, drawLog, CellCount)

		winner, _ := DetermineWinner(ProjectBoard(drawLog))

		assert.Equal(t, EmptyCell, winner)
		assert.True(t, IsDraw(drawLog))
		assert.Equal(t, StatusDraw, DetermineStatus(drawLog))
		assert.True(t, DetermineStatus(drawLog).IsFinished())
	})

	t.Run("Win on the ninth move is not a draw", func(t *testing.T) {
		// X O X / O X O / O X X, the last X completes the main diagonal
		log := buildLog(
			Position{0, 0}, Position{0, 1}, Position{0, 2},
			Position{1, 0}, Position{1, 1}, Position{1, 2},
			Position{2, 1}, Position{2, 0}, Position{2, 2},
		)

		assert.False(t, IsDraw(log))
		assert.Equal(t, StatusWonByX, DetermineStatus(log))
	})

	t.Run("Partial board is in progress", func(t *testing.T) {
		log := buildLog(Position{0, 0}, Position{1, 1})

		assert.False(t, IsDraw(log))
		assert.Equal(t, StatusInProgress, DetermineStatus(log))
		assert.False(t, DetermineStatus(log).IsFinished())
	})

	t.Run("O win is reported", func(t *testing.T) {
		log := buildLog(Position{0, 0}, Position{1, 0}, Position{0, 1}, Position{1, 1}, Position{2, 2}, Position{1, 2})

		assert.Equal(t, StatusWonByO, DetermineStatus(log))
	})
}

func TestRegistry(t *testing.T) {
	t.Run("Rename replaces the stored name", func(t *testing.T) {
		registry := NewRegistry(DefaultNameX, DefaultNameO)

		require.NoError(t, registry.Rename(SymbolO, "Grace"))

		assert.Equal(t, "Grace", registry.Name(SymbolO))
		assert.Equal(t, DefaultNameX, registry.Name(SymbolX))
		assert.Equal(t, []Player{{Symbol: SymbolX, Name: DefaultNameX}, {Symbol: SymbolO, Name: "Grace"}}, registry.Players())
	})

	t.Run("Rename rejects unknown symbols", func(t *testing.T) {
		registry := NewRegistry(DefaultNameX, DefaultNameO)

		err := registry.Rename(Symbol("Z"), "Nobody")

		assert.ErrorIs(t, err, apperror.ErrUnknownSymbol)
		assert.Equal(t, "", registry.Name(Symbol("Z")))
	})
}

func TestParseSymbol(t *testing.T) {
	assert.Equal(t, SymbolX, ParseSymbol("x"))
	assert.Equal(t, SymbolO, ParseSymbol(" O "))
	assert.False(t, ParseSymbol("z").IsValid())
	assert.Equal(t, EmptyCell, ParseSymbol(""))
}
