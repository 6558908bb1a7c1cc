package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"todo/internal/store"
	"todo/pkg/task"
)

// View identifies which screen the TUI is showing.
type View int

const (
	ViewTaskList View = iota
	ViewAdding
	ViewConfirmDelete
	ViewConfirmClear
	ViewQuitting
)

// TaskItem represents a task for the list.
type TaskItem struct {
	Task task.Task
	N    int // 1-based display position
}

func (t TaskItem) Title() string       { return t.Task.Line(t.N) }
func (t TaskItem) Description() string { return "" }
func (t TaskItem) FilterValue() string { return t.Task.Title }

// model is the Bubbletea model for the TUI.
type model struct {
	list       list.Model
	input      textinput.Model
	store      *store.Store
	ActiveView View
	pending    int    // index awaiting delete confirmation
	status     string // one-line feedback under the list
	height     int    // Track terminal height for dynamic resizing
	width      int    // Track terminal width for dynamic resizing
}

// InitialModel creates the TUI model over s.
func InitialModel(s *store.Store, height int) model {
	listDelegate := list.NewDefaultDelegate()
	listDelegate.ShowDescription = false

	defaultWidth := 80
	l := list.New(itemsFrom(s.All()), listDelegate, defaultWidth, max(height-6, 5))
	l.Title = "Todos"
	// Positions must match the store, so the list is never filtered.
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	ti := textinput.New()
	ti.Placeholder = "Type in your todo"
	ti.CharLimit = 256
	ti.Width = defaultWidth - 4

	return model{
		list:   l,
		input:  ti,
		store:  s,
		height: height,
		width:  defaultWidth,
	}
}

func itemsFrom(tasks []task.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = TaskItem{Task: t, N: i + 1}
	}
	return items
}

// reload refreshes the list from the store and keeps the cursor on a
// valid row.
func (m *model) reload() {
	items := itemsFrom(m.store.All())
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}
