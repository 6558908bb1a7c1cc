// Package tui is an interactive terminal browser over the todo store.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/store"
)

// Init initializes the TUI model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Run launches the TUI over s and blocks until the user quits. Every
// change is written to the store as it is made.
func Run(s *store.Store, opts ...tea.ProgramOption) error {
	m := InitialModel(s, 24)
	p := tea.NewProgram(&teaModelAdapter{m}, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)

	_, err := p.Run()
	return err
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
