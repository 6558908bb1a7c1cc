package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(1)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
)

const listHelp = "a add • x/enter complete • d delete • c clear • q quit"

// ModelView renders the TUI model's view as a string.
func ModelView(m model) string {
	switch m.ActiveView {
	case ViewQuitting:
		return quittingView()
	case ViewAdding:
		return addingView(m)
	case ViewConfirmDelete:
		title := ""
		if t, ok := m.store.Get(m.pending); ok {
			title = t.Title
		}
		return confirmView(fmt.Sprintf("Are you sure you want to delete %s? (y/n)", title))
	case ViewConfirmClear:
		return confirmView(fmt.Sprintf("Clear all %d todos? (y/n)", m.store.Len()))
	default:
		return taskListView(m)
	}
}

func quittingView() string {
	return "Goodbye!\n"
}

func addingView(m model) string {
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		"Type in your todo",
		m.input.View(),
		helpStyle.Render("enter save • esc cancel"),
	))
}

func confirmView(question string) string {
	return frameStyle.Render(warnStyle.Render(question))
}

func taskListView(m model) string {
	body := m.list.View()
	if m.store.Len() == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, m.list.Title, "", "No todos yet.")
	}

	parts := []string{frameStyle.Render(body)}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(listHelp))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
