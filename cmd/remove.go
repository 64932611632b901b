package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <number>",
		Aliases: []string{"remove"},
		Short:   "Remove the task with the number shown by list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid task number %q", args[0])
			}

			if err := app.store.Remove(cmd.Context(), number-1); err != nil {
				if errors.Is(err, domain.ErrPositionOutOfRange) {
					return fmt.Errorf("no task number %d (list has %d): %w", number, app.store.Len(), domain.ErrPositionOutOfRange)
				}
				return fmt.Errorf("remove task: %w", err)
			}

			app.logger.Debug("task removed", "number", number, "count", app.store.Len())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Task removed.")
			return nil
		},
	}
}
