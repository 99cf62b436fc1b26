package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.Color("#1D63ED")
	textMuted = lipgloss.Color("#6C7A89")
	errorRed  = lipgloss.Color("#E74C3C")
	border    = lipgloss.Color("#2D3748")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			MarginRight(1)

	itemStyle = lipgloss.NewStyle()

	contentStyle = lipgloss.NewStyle().
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorRed)
)
