// Package stores provides the command that lists dApp stores.
package stores

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/cmd/output"
)

// NewCommand creates the stores command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "stores [key]",
		GroupID: "core",
		Short:   "List dApp stores, or show one store",
		Example: `  dappregistry stores
  dappregistry stores meroku -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Stores()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				store, err := client.Store(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return output.Render(cmd.OutOrStdout(), app.OutputFormat(), store, func(bool) output.Data {
					return output.SectionsTable(store.FeaturedSections)
				})
			}

			doc, err := client.Stores(cmd.Context())
			if err != nil {
				return err
			}
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), doc, func(bool) output.Data {
				return output.StoresTable(doc.DappStores)
			})
		},
	}
}
