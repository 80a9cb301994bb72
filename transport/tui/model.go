// Package tui is the terminal view of the game. It renders snapshots and turns key presses
// into game manager commands.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const maxNameLen = 32

type gameUseCase interface {
	SelectSquare(ctx context.Context, pos entity.Position) (*entity.Game, error)
	RenameSymbol(ctx context.Context, symbol entity.Symbol, name string) (*entity.Game, error)
	Restart(ctx context.Context) (*entity.Game, error)
}

// updateMsg carries a snapshot pushed by the subscription.
type updateMsg struct {
	game *entity.Game
}

// resultMsg carries the outcome of a command sent by this view. Accepted changes reach the
// screen only through the subscription.
type resultMsg struct {
	err error
}

// closedMsg is sent once the subscription ends.
type closedMsg struct{}

// Model is the bubbletea model of the terminal view.
type Model struct {
	ctx     context.Context
	game    gameUseCase
	updates <-chan *entity.Game

	state  *entity.Game
	cursor entity.Position
	err    error

	// editing is the symbol whose name is being edited, empty otherwise
	editing entity.Symbol
	input   textinput.Model

	styles styles
}

// NewModel creates the view for the initial snapshot. Further snapshots are read from updates.
func NewModel(ctx context.Context, game gameUseCase, initial *entity.Game, updates <-chan *entity.Game) Model {
	input := textinput.New()
	input.Placeholder = "player name"
	input.CharLimit = maxNameLen
	input.Width = maxNameLen
	input.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctx:     ctx,
		game:    game,
		updates: updates,
		state:   initial,
		cursor:  entity.Position{Row: 1, Col: 1},
		input:   input,
		styles:  defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func waitForUpdate(updates <-chan *entity.Game) tea.Cmd {
	return func() tea.Msg {
		game, ok := <-updates
		if !ok {
			return closedMsg{}
		}

		return updateMsg{game: game}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.state = msg.game

		return m, waitForUpdate(m.updates)
	case resultMsg:
		if isStopped(msg.err) {
			return m, tea.Quit
		}

		m.err = msg.err

		return m, nil
	case closedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if m.editing != entity.EmptyCell {
			return m.updateEditing(msg)
		}

		return m.updateBoard(msg)
	}

	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor.Row = clamp(m.cursor.Row - 1)
	case "down", "j":
		m.cursor.Row = clamp(m.cursor.Row + 1)
	case "left", "h":
		m.cursor.Col = clamp(m.cursor.Col - 1)
	case "right", "l":
		m.cursor.Col = clamp(m.cursor.Col + 1)
	case "enter", " ":
		return m.selectCell()
	case "1":
		return m.startEditing(entity.SymbolX)
	case "2":
		return m.startEditing(entity.SymbolO)
	case "r":
		return m, m.restart()
	}

	return m, nil
}

// selectCell - disabled cells are refused here without asking the manager.
func (m Model) selectCell() (tea.Model, tea.Cmd) {
	if !m.state.CanSelect(m.cursor) {
		if m.state.IsFinished() {
			m.err = apperror.ErrGameFinished
		} else {
			m.err = apperror.ErrCellOccupied
		}

		return m, nil
	}

	pos := m.cursor

	return m, func() tea.Msg {
		_, err := m.game.SelectSquare(m.ctx, pos)

		return resultMsg{err: err}
	}
}

func (m Model) startEditing(symbol entity.Symbol) (tea.Model, tea.Cmd) {
	m.editing = symbol
	m.err = nil
	m.input.SetValue(m.state.PlayerName(symbol))
	m.input.CursorEnd()

	return m, m.input.Focus()
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.stopEditing()

		return m, nil
	case "enter":
		symbol, name := m.editing, m.input.Value()
		m.stopEditing()

		return m, func() tea.Msg {
			_, err := m.game.RenameSymbol(m.ctx, symbol, name)

			return resultMsg{err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = entity.EmptyCell
	m.input.Blur()
	m.input.Reset()
}

func (m Model) restart() tea.Cmd {
	return func() tea.Msg {
		_, err := m.game.Restart(m.ctx)

		return resultMsg{err: err}
	}
}

// Game - the snapshot currently on screen.
func (m Model) Game() *entity.Game {
	return m.state
}

// Err - the last rejected action, nil when the last one went through.
func (m Model) Err() error {
	return m.err
}

func clamp(v int) int {
	return max(0, min(entity.BoardSize-1, v))
}

func isStopped(err error) bool {
	return errors.Is(err, apperror.ErrManagerStopped) || errors.Is(err, context.Canceled)
}
