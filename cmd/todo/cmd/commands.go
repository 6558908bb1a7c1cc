package cmd

import (
	"github.com/spf13/cobra"

	"todo/internal/core"
)

// handler is the shape shared by the store-backed commands.
type handler func(env *core.Env, args []string) error

func (a *app) runE(h handler) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := a.env(cmd)
		if err != nil {
			return err
		}
		return h(env, args)
	}
}

func newNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a new todo",
		Args:  noArgs,
		RunE: a.runE(func(env *core.Env, _ []string) error {
			return core.New(env)
		}),
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "List your todos",
		Args:  noArgs,
		RunE: a.runE(func(env *core.Env, _ []string) error {
			return core.Get(env)
		}),
	}
}

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <n>",
		Short: "Mark a todo as complete",
		Args:  cobra.ArbitraryArgs,
		RunE:  a.runE(core.Complete),
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <n>",
		Short: "Delete a todo after confirmation",
		Args:  cobra.ArbitraryArgs,
		RunE:  a.runE(core.Delete),
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every todo",
		Args:  noArgs,
		RunE: a.runE(func(env *core.Env, _ []string) error {
			return core.Clear(env)
		}),
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Append the checklist items of a markdown file",
		Args:  cobra.ArbitraryArgs,
		RunE:  a.runE(core.Import),
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print your todos as a markdown checklist",
		Args:  noArgs,
		RunE: a.runE(func(env *core.Env, _ []string) error {
			return core.Export(env)
		}),
	}
}
