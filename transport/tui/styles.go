package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("205")
	success = lipgloss.Color("#22c55e")
	danger  = lipgloss.Color("#ef4444")
	muted   = lipgloss.Color("241")
)

type styles struct {
	Title       lipgloss.Style
	Banner      lipgloss.Style
	Panel       lipgloss.Style
	ActivePanel lipgloss.Style
	Cell        lipgloss.Style
	Winning     lipgloss.Style
	Disabled    lipgloss.Style
	Moves       lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
}

func defaultStyles() styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1).
		Width(20)

	cell := lipgloss.NewStyle().
		Width(5).
		Align(lipgloss.Center).
		Border(lipgloss.NormalBorder()).
		BorderForeground(muted)

	return styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Banner:      lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Panel:       panel,
		ActivePanel: panel.BorderForeground(accent).Bold(true),
		Cell:        cell,
		Winning:     cell.Foreground(success).Bold(true),
		Disabled:    cell.Faint(true),
		Moves:       lipgloss.NewStyle().MarginLeft(2),
		Error:       lipgloss.NewStyle().Foreground(danger),
		Help:        lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
