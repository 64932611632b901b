package cmd

import (
	"github.com/bnema/task-list-cli/internal/adapters/tui"
	"github.com/spf13/cobra"
)

func newUICmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive task screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.logger.Debug("opening task screen", "theme", app.theme.Name, "count", app.store.Len())
			return tui.Run(cmd.Context(), app.store, app.theme, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
