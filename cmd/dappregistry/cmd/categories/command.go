// Package categories provides the command that prints the category taxonomy.
package categories

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/cmd/output"
)

// NewCommand creates the categories command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"taxonomy"},
		GroupID: "core",
		Short:   "Show dApp categories and their sub-categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			tax, err := reg.Categories()
			if err != nil {
				return err
			}
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), tax, func(bool) output.Data {
				return output.TaxonomyTable(tax)
			})
		},
	}
}
