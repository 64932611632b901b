package cmd

import (
	"encoding/json"
	"fmt"

	tasksrender "github.com/bnema/task-list-cli/internal/adapters/render/tasks"
	"github.com/spf13/cobra"
)

type listOutput struct {
	Tasks []string `json:"tasks"`
}

func newListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the task list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks := app.store.Tasks()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(listOutput{Tasks: tasks.Titles()})
			}

			rendered, err := app.renderer(tasks, tasksrender.DefaultRenderOptions(app.theme))
			if err != nil {
				return fmt.Errorf("render tasks: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
