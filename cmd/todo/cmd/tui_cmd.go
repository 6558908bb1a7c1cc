package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"todo/internal/tui"
)

// newTUICmd launches the interactive todo browser.
func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse your todos interactively",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			a.log.Debug("starting tui", "db", s.Location())
			return tui.Run(s, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		},
	}
}
