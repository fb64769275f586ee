package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/categories"
	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/featured"
	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/ids"
	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/list"
	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/search"
	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/serve"
	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/stores"
	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/validate"
)

// registerCommands adds every subcommand to rootCmd.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		list.NewCommand(a),
		search.NewCommand(a),
		featured.NewCommand(a),
		categories.NewCommand(a),
		stores.NewCommand(a),
		serve.NewCommand(a),
		validate.NewCommand(a),
		ids.NewCommand(a),
		a.newVersionCommand(),
	)
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "dappregistry %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
			}
		},
	}
}
