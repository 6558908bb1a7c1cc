// Package core implements the user-facing todo commands on top of the
// store and the prompter.
//
// Tasks are addressed by their 1-based display position, recomputed from
// the store on every command.
package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/markdown"
	"todo/internal/prompt"
	"todo/internal/store"
	"todo/pkg/task"
)

// Env is what a handler needs to run one command. It is built once per
// invocation and passed explicitly; nothing in this package holds state.
type Env struct {
	Store  *store.Store
	Prompt *prompt.Prompter
	Out    io.Writer
	Styles Styles
	Log    *log.Logger
}

func (e *Env) logger() *log.Logger {
	if e.Log == nil {
		return log.New(io.Discard)
	}
	return e.Log
}

// New asks for a title and appends it as an incomplete task. Surrounding
// whitespace is trimmed; an empty title is rejected.
func New(env *Env) error {
	answer, err := env.Prompt.Ask(env.Styles.Prompt.Render("Type in your todo") + "\n")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &InputError{Reason: "no todo entered", Err: err}
		}
		return err
	}

	title := strings.TrimSpace(answer)
	if title == "" {
		return &InputError{Reason: "todo title cannot be empty"}
	}
	if err := env.Store.Append(task.New(title)); err != nil {
		return err
	}

	env.logger().Debug("todo added", "n", env.Store.Len(), "title", title)
	fmt.Fprintf(env.Out, "Added %q\n", title)
	return nil
}

// Get lists every task as "<n>. <title>", marking completed ones.
func Get(env *Env) error {
	for i, t := range env.Store.All() {
		style := env.Styles.Incomplete
		if t.Complete {
			style = env.Styles.Complete
		}
		if _, err := fmt.Fprintln(env.Out, style.Render(t.Line(i+1))); err != nil {
			return err
		}
	}
	return nil
}

// Complete marks the task at the position given in args complete. Nothing
// is written unless the position names an existing task.
func Complete(env *Env, args []string) error {
	n, err := parsePosition("complete", args, env.Store.Len())
	if err != nil {
		return err
	}
	if err := env.Store.SetComplete(n - 1); err != nil {
		return err
	}
	env.logger().Debug("todo completed", "n", n)
	return nil
}

// Delete asks for confirmation and removes the task at the position given
// in args. Only a "y" answer changes the store.
func Delete(env *Env, args []string) error {
	n, err := parsePosition("delete", args, env.Store.Len())
	if err != nil {
		return err
	}
	t, _ := env.Store.Get(n - 1)

	question := env.Styles.Error.Render("Are you sure you want to delete ") +
		env.Styles.Highlight.Render(t.Title) +
		env.Styles.Error.Render("? (Y/N)") + "\n"
	answer, err := env.Prompt.Confirm(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &InputError{Reason: "no answer received", Err: err}
		}
		return err
	}

	switch answer {
	case prompt.Yes:
		removed, err := env.Store.RemoveAt(n - 1)
		if err != nil {
			return err
		}
		env.logger().Debug("todo deleted", "n", n, "title", removed.Title)
		fmt.Fprintln(env.Out, env.Styles.Deleted.Render(removed.Title)+env.Styles.Success.Render(" has been deleted"))
		fmt.Fprintln(env.Out, env.Styles.Success.Render("run todo get to check todos"))
	case prompt.No:
		fmt.Fprintln(env.Out, "ok")
	default:
		fmt.Fprintln(env.Out, "Command not found")
	}
	return nil
}

// Clear removes every task without asking.
func Clear(env *Env) error {
	count := env.Store.Len()
	if err := env.Store.Clear(); err != nil {
		return err
	}
	env.logger().Debug("todos cleared", "removed", count)
	return nil
}

// Import appends the task list items of the markdown file named in args,
// keeping their order and checked state.
func Import(env *Env, args []string) error {
	if len(args) != 1 {
		return &ArgumentCountError{Command: "import", Got: len(args)}
	}

	tasks, err := markdown.ParseFile(args[0])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &InputError{Reason: fmt.Sprintf("cannot import %s", args[0]), Err: fs.ErrNotExist}
		}
		return err
	}
	if err := env.Store.AppendAll(tasks); err != nil {
		return err
	}

	env.logger().Debug("todos imported", "file", args[0], "count", len(tasks))
	fmt.Fprintf(env.Out, "Imported %d %s from %s\n", len(tasks), plural(len(tasks), "todo", "todos"), args[0])
	return nil
}

// Export prints the collection as a markdown checklist.
func Export(env *Env) error {
	return markdown.Render(env.Out, env.Store.All())
}

// parsePosition validates a single 1-based task number argument against
// the current collection length.
func parsePosition(command string, args []string, length int) (int, error) {
	if len(args) != 1 {
		return 0, &ArgumentCountError{Command: command, Got: len(args)}
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if errors.Is(err, strconv.ErrRange) {
		// Too large to be any position, but still a number.
		return 0, &ArgumentRangeError{Command: command, N: n, Len: length}
	}
	if err != nil {
		return 0, &ArgumentTypeError{Command: command, Value: args[0]}
	}
	if n < 1 || n > length {
		return 0, &ArgumentRangeError{Command: command, N: n, Len: length}
	}
	return n, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
