package tui

import "github.com/charmbracelet/lipgloss"

var (
	Red   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Green = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Gray  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	Bold  = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Faint(true)

	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	detailsStyle      = lipgloss.NewStyle().PaddingLeft(4).PaddingTop(1)
)
