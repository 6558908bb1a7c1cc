package core

import (
	"fmt"
	"io"
)

// Version is the application version printed by --version.
const Version = "1.0.0"

// UsageText is the static help printed by `todo help` and after usage
// errors.
const UsageText = `
  todo helps you manage your todo tasks.

  usage:
    todo <command>

    commands can be:

    n means the todo number

    new:              used to create a new todo
    get:              used to retrieve your todos
    complete <n>:     used to mark a todo as complete
    delete <n>:       used to delete a todo
    clear:            used to clear todos
    import <file>:    used to add the checklist items of a markdown file
    export:           used to print your todos as a markdown checklist
    tui:              used to browse your todos interactively
    help:             used to print the usage guide
    --version or -v:  used to check app version

    global flags:

    --db <path>          todo store file (default db.json)
    --config <path>      config file (.toml, .yaml or .yml)
    --log-level <level>  debug, info, warn or error
    --no-color           disable colored output
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, UsageText+"\n")
}

// PrintVersion writes the version literal to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintln(w, Version)
}

// Report writes a user error to w in the error style, followed by the
// usage text when the error calls for it.
func Report(w io.Writer, styles Styles, err error) {
	fmt.Fprintln(w, styles.Error.Render(err.Error()))
	if NeedsUsage(err) {
		PrintUsage(w)
	}
}
