package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shaun/quotewidget/internal/status"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	quoteStyle   = lipgloss.NewStyle().Italic(true)
	authorStyle  = lipgloss.NewStyle().Faint(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Width(9)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	toastStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusStyles = map[status.Kind]lipgloss.Style{
		status.Neutral: lipgloss.NewStyle(),
		status.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		status.Loading: lipgloss.NewStyle().Faint(true),
		status.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func statusStyle(k status.Kind) lipgloss.Style {
	if s, ok := statusStyles[k]; ok {
		return s
	}
	return statusStyles[status.Neutral]
}
