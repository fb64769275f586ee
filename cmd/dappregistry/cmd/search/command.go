// Package search provides the command that searches registry dApps by text.
package search

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/cmd/dappregistry/cmd/list"
	"github.com/agentstation/dappregistry/internal/cmd/output"
	"github.com/agentstation/dappregistry/pkg/catalogs"
)

// NewCommand creates the search command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <text>",
		GroupID: "core",
		Short:   "Search dApps by name, description, tags and more",
		Long: `Search matches text against each dApp's name, description, identifier,
tags, chains and category, best match first. Results are narrowed by the
same filter flags as list.

With --id, every term of text must match the dApp identifier instead.`,
		Example: `  dappregistry search uniswap
  dappregistry search "swap" --chain 1
  dappregistry search --id app.uniswap`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			byID, _ := cmd.Flags().GetBool("id")

			reg, err := app.Registry()
			if err != nil {
				return err
			}

			var dapps []catalogs.Dapp
			if byID {
				dapps, err = reg.SearchByID(cmd.Context(), text)
			} else {
				opts, perr := list.ParseFlags(cmd)
				if perr != nil {
					return perr
				}
				dapps, err = reg.Search(cmd.Context(), text, opts)
			}
			if err != nil {
				return err
			}

			cmd.PrintErrf("Found %d dApps matching %q\n", len(dapps), text)
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), dapps, func(wide bool) output.Data {
				return output.DappsTable(dapps, wide)
			})
		},
	}

	cmd.Flags().Bool("id", false, "match dApp identifiers only")
	list.AddFlags(cmd)
	return cmd
}
