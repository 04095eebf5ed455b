package main

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")
	dimColor     = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")
	textColor    = lipgloss.Color("#FAFAFA")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 2).
			MarginRight(2)

	labelStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	valueStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			MarginTop(1)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "Filled":
		return lipgloss.NewStyle().Foreground(successColor).Bold(true)
	case "Rejected", "Cancelled", "Expired":
		return lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	default:
		return valueStyle
	}
}
