package task

import (
	"fmt"
	"strings"
)

// CheckMark is appended to the display line of a completed task.
const CheckMark = "✔"

// Task is a single todo entry as persisted in the store.
type Task struct {
	Title    string `json:"title"`    // Free-form text typed by the user
	Complete bool   `json:"complete"` // True once the task has been marked complete
}

// New returns an incomplete task with the given title.
func New(title string) Task {
	return Task{Title: title}
}

// Line returns the numbered display form of the task, e.g. "2. buy milk ✔".
// n is the 1-based display position.
func (t Task) Line(n int) string {
	line := fmt.Sprintf("%d. %s", n, t.Title)
	if t.Complete {
		line += " " + CheckMark
	}
	return line
}

// String returns a markdown task list item representation of the task.
func (t Task) String() string {
	checkMark := " "

	if t.Complete {
		checkMark = "x"
	}

	return fmt.Sprintf("- [%s] %s", checkMark, singleLine(t.Title))
}

// singleLine folds line breaks so a title always renders as one list item.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
