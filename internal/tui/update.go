package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/pkg/task"
)

// Update handles all Bubbletea update logic for the TUI model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	default:
		switch m.ActiveView {
		case ViewTaskList:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		case ViewAdding:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// HandleKeyMsg dispatches a key press according to the active view.
func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		m.ActiveView = ViewQuitting
		return m, tea.Quit
	}

	switch m.ActiveView {
	case ViewQuitting:
		// If quitting, ignore further input
		return m, nil

	case ViewAdding:
		switch k {
		case "enter":
			title := strings.TrimSpace(m.input.Value())
			m.input.Blur()
			m.input.Reset()
			m.ActiveView = ViewTaskList
			if title == "" {
				m.status = "todo title cannot be empty"
				return m, nil
			}
			if err := m.store.Append(task.New(title)); err != nil {
				m.status = fmt.Sprintf("error: %v", err)
				m.reload()
				return m, nil
			}
			m.reload()
			m.list.Select(m.store.Len() - 1)
			m.status = fmt.Sprintf("Added %q", title)
			return m, nil
		case "esc":
			m.input.Blur()
			m.input.Reset()
			m.ActiveView = ViewTaskList
			m.status = ""
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case ViewConfirmDelete:
		m.ActiveView = ViewTaskList
		if k != "y" && k != "Y" {
			m.status = "ok"
			return m, nil
		}
		removed, err := m.store.RemoveAt(m.pending)
		if err != nil {
			m.status = fmt.Sprintf("error: %v", err)
			m.reload()
			return m, nil
		}
		m.reload()
		m.status = fmt.Sprintf("%s has been deleted", removed.Title)
		return m, nil

	case ViewConfirmClear:
		m.ActiveView = ViewTaskList
		if k != "y" && k != "Y" {
			m.status = "ok"
			return m, nil
		}
		if err := m.store.Clear(); err != nil {
			m.status = fmt.Sprintf("error: %v", err)
			m.reload()
			return m, nil
		}
		m.reload()
		m.status = "cleared"
		return m, nil

	case ViewTaskList:
		switch k {
		case "q":
			m.ActiveView = ViewQuitting
			return m, tea.Quit

		case "a":
			m.ActiveView = ViewAdding
			m.status = ""
			return m, tea.Batch(m.input.Focus(), textinput.Blink)

		case "x", "enter":
			idx, ok := m.selected()
			if !ok {
				return m, nil
			}
			if err := m.store.SetComplete(idx); err != nil {
				m.status = fmt.Sprintf("error: %v", err)
				m.reload()
				return m, nil
			}
			m.reload()
			m.status = fmt.Sprintf("%d marked complete", idx+1)
			return m, nil

		case "d":
			idx, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.pending = idx
			m.ActiveView = ViewConfirmDelete
			return m, nil

		case "c":
			if m.store.Len() == 0 {
				return m, nil
			}
			m.ActiveView = ViewConfirmClear
			return m, nil

		default:
			// Forward other keys to the list's update for navigation, selection, etc.
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// selected returns the store index under the cursor.
func (m model) selected() (int, bool) {
	if _, ok := m.list.SelectedItem().(TaskItem); !ok {
		return 0, false
	}
	idx := m.list.Index()
	return idx, idx >= 0 && idx < m.store.Len()
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.height = msg.Height
	m.width = msg.Width
	m.list.SetSize(msg.Width, max(msg.Height-6, 5))
	m.input.Width = max(msg.Width-4, 10)
	return m, nil
}
