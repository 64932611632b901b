package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Append a task to the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if len(args) > 1 {
				title = strings.Join(args, " ")
			}

			if err := app.store.Add(cmd.Context(), title); err != nil {
				if errors.Is(err, domain.ErrBlankTitle) {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Please type a task first.")
				}
				return fmt.Errorf("add task: %w", err)
			}

			app.logger.Debug("task added", "count", app.store.Len())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Task added.")
			return nil
		},
	}
}
