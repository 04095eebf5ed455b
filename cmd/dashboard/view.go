package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("BrokerX Queue Monitor"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(m.baseURL))
	b.WriteString("\n\n")

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.lastErr)))
		b.WriteString("\n\n")
	}

	queuePanel := panelStyle.Render(fmt.Sprintf(
		"%s\n%s",
		labelStyle.Render("Queue length"),
		valueStyle.Render(fmt.Sprintf("%d", m.queueLength)),
	))
	workerPanel := panelStyle.Render(fmt.Sprintf(
		"%s\n%s",
		labelStyle.Render("Workers"),
		valueStyle.Render(fmt.Sprintf("%d", m.workerCount)),
	))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, queuePanel, workerPanel))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Orders by status"))
	b.WriteString("\n")
	for _, status := range m.sortedStatuses() {
		b.WriteString(fmt.Sprintf("  %-16s %s\n", status, statusStyle(status).Render(fmt.Sprintf("%d", m.statusCounts[status]))))
	}

	if !m.lastUpdated.IsZero() {
		b.WriteString(footerStyle.Render(fmt.Sprintf("updated %s  ·  q to quit", m.lastUpdated.Format("15:04:05"))))
	} else {
		b.WriteString(footerStyle.Render("loading…  ·  q to quit"))
	}

	return b.String()
}
