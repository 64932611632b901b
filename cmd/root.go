package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const skipWireAnnotation = "tl/skip-wire"

type rootOptions struct {
	configFile string
	theme      string
	verbose    bool
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd, app := buildRootCmd()
	defer app.close()

	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd, _ := buildRootCmd()
	return rootCmd
}

func buildRootCmd() (*cobra.Command, *app) {
	opts := &rootOptions{}
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "tl",
		Short:         "tl: a small local task list",
		Long:          "tl keeps one ordered list of tasks on this machine. Add tasks, remove them by number, list them, or open the interactive screen.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsWiring(cmd) {
				return nil
			}
			return app.wire(cmd.Context(), *opts, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/tl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.theme, "theme", "", "Theme override: aurora, paper or midnight")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAddCmd(app),
		newRemoveCmd(app),
		newListCmd(app),
		newUICmd(app),
	)

	return rootCmd, app
}

// skipsWiring reports whether cmd runs without config or storage: annotated
// commands and cobra's own help and completion commands, subcommands included.
func skipsWiring(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c.HasParent(); c = c.Parent() {
		if c.Annotations[skipWireAnnotation] == "true" {
			return true
		}
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return true
		}
	}
	return false
}
