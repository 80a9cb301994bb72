package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/view"
)

const (
	boardHelp   = "arrows/hjkl move • enter select • 1/2 rename • r restart • q quit"
	editingHelp = "enter save • esc cancel"
)

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Tic-Tac-Toe"))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderPlayers())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Banner.Render(view.Banner(m.state)))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), m.renderMoves()))
	sb.WriteString("\n")

	if m.editing != entity.EmptyCell {
		sb.WriteString("\nName for " + m.editing.String() + ": " + m.input.View())
	}

	if m.err != nil {
		sb.WriteString("\n" + m.styles.Error.Render(m.err.Error()))
	}

	help := boardHelp
	if m.editing != entity.EmptyCell {
		help = editingHelp
	}

	sb.WriteString("\n" + m.styles.Help.Render(help) + "\n")

	return sb.String()
}

func (m Model) renderPlayers() string {
	panels := make([]string, 0, len(entity.Symbols))

	for i, symbol := range entity.Symbols {
		style := m.styles.Panel
		if !m.state.IsFinished() && m.state.Turn == symbol {
			style = m.styles.ActivePanel
		}

		key := string(rune('1' + i))
		panels = append(panels, style.Render(symbol.String()+"  "+m.state.PlayerName(symbol)+"\n["+key+"] rename"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (m Model) renderBoard() string {
	rows := make([]string, 0, entity.BoardSize)

	for row := 0; row < entity.BoardSize; row++ {
		cells := make([]string, 0, entity.BoardSize)

		for col := 0; col < entity.BoardSize; col++ {
			cells = append(cells, m.renderCell(entity.Position{Row: row, Col: col}))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(pos entity.Position) string {
	var style lipgloss.Style

	switch {
	case m.state.OnWinningLine(pos):
		style = m.styles.Winning
	case !m.state.CanSelect(pos):
		style = m.styles.Disabled
	default:
		style = m.styles.Cell
	}

	if pos == m.cursor && m.editing == entity.EmptyCell {
		style = style.BorderForeground(accent)
	}

	content := m.state.Board.At(pos).String()
	if content == "" {
		content = "·"
	}

	return style.Render(content)
}

func (m Model) renderMoves() string {
	moves := m.state.Moves.Chronological()
	if len(moves) == 0 {
		return m.styles.Moves.Render("No moves yet")
	}

	lines := make([]string, 0, len(moves)+1)
	lines = append(lines, "Moves")

	for i, move := range moves {
		lines = append(lines, view.MoveLabel(i+1, move))
	}

	return m.styles.Moves.Render(strings.Join(lines, "\n"))
}
