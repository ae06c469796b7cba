package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	optionStyle   = lipgloss.NewStyle().PaddingLeft(2)
	cursorStyle   = lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("170"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	appStyle      = lipgloss.NewStyle().Margin(1, 2)

	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2).
			Width(60)
	noticeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

const (
	markCorrect = "✓"
	markWrong   = "✗"
)
