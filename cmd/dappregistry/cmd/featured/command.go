// Package featured provides the command that shows featured sections.
package featured

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/cmd/output"
	"github.com/agentstation/dappregistry/pkg/catalogs"
)

// NewCommand creates the featured command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "featured",
		GroupID: "core",
		Short:   "Show featured dApp sections",
		Example: `  dappregistry featured
  dappregistry featured --store meroku`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _ := cmd.Flags().GetString("store")

			var sections []catalogs.FeaturedSection
			if store != "" {
				stores, err := app.Stores()
				if err != nil {
					return err
				}
				if sections, err = stores.FeaturedSections(cmd.Context(), store); err != nil {
					return err
				}
			} else {
				reg, err := app.Registry()
				if err != nil {
					return err
				}
				if sections, err = reg.FeaturedSections(cmd.Context()); err != nil {
					return err
				}
			}

			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), sections, func(bool) output.Data {
				return output.SectionsTable(sections)
			})
		},
	}

	cmd.Flags().StringP("store", "s", "", "show the sections of this dApp store instead of the registry")
	return cmd
}
