// Package list provides the command that lists and filters registry dApps.
package list

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/cmd/output"
	"github.com/agentstation/dappregistry/internal/utils/ptr"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/filter"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "dapps"},
		GroupID: "core",
		Short:   "List dApps in the registry",
		Long: `List shows the dApps in the registry, narrowed by any filter flags.

Only listed dApps are shown unless --all or --listed=false is given. Filter
flags combine with AND; a flag that is not given does not filter.`,
		Example: `  dappregistry list
  dappregistry list --chain 137 --category defi
  dappregistry list --allowed-in US,GB --platform web
  dappregistry list --listed-after 2023-01-01 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := ParseFlags(cmd)
			if err != nil {
				return err
			}

			reg, err := app.Registry()
			if err != nil {
				return err
			}
			dapps, err := reg.Dapps(cmd.Context(), opts)
			if err != nil {
				return err
			}

			cmd.PrintErrf("Found %d dApps\n", len(dapps))
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), dapps, func(wide bool) output.Data {
				return output.DappsTable(dapps, wide)
			})
		},
	}

	AddFlags(cmd)
	return cmd
}

// AddFlags registers the dApp filter flags on cmd.
func AddFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("all", false, "include unlisted dApps")
	flags.Bool("listed", true, "show listed (true) or unlisted (false) dApps")
	flags.Int("chain", 0, "only dApps deployed on this chain ID")
	flags.String("language", "", "only dApps supporting this language")
	flags.StringSlice("platform", nil, "only dApps available on one of these platforms")
	flags.Bool("mature", false, "only dApps for (true) or not for (false) mature audiences")
	flags.Int("min-age", 0, "only dApps whose minimum age is above this")
	flags.String("listed-after", "", "only dApps listed on or after this date (YYYY-MM-DD)")
	flags.String("listed-before", "", "only dApps listed on or before this date (YYYY-MM-DD)")
	flags.StringSlice("allowed-in", nil, "only dApps allowed in one of these country codes")
	flags.StringSlice("blocked-in", nil, "only dApps blocked in one of these country codes")
	flags.StringSlice("category", nil, "only dApps in one of these categories")
	flags.StringSlice("sub-category", nil, "narrow --category to these sub-categories")
	flags.String("developer", "", "only dApps by this developer GitHub ID")
}

// ParseFlags builds filter options from the flags registered by AddFlags.
// Flags that were not set leave the matching option absent.
func ParseFlags(cmd *cobra.Command) (*filter.Options, error) {
	flags := cmd.Flags()
	opts := filter.Default()

	all, _ := flags.GetBool("all")
	if all {
		opts.IsListed = nil
	} else if flags.Changed("listed") {
		opts.IsListed = ptr.To(boolFlag(flags.GetBool("listed")))
	}

	if flags.Changed("chain") {
		opts.ChainID = ptr.To(intFlag(flags.GetInt("chain")))
	}
	if flags.Changed("language") {
		opts.Language, _ = flags.GetString("language")
	}
	if flags.Changed("platform") {
		opts.AvailableOnPlatform = nonNil(flags.GetStringSlice("platform"))
	}
	if flags.Changed("mature") {
		opts.ForMatureAudience = ptr.To(boolFlag(flags.GetBool("mature")))
	}
	if flags.Changed("min-age") {
		opts.MinAge = ptr.To(intFlag(flags.GetInt("min-age")))
	}

	if flags.Changed("listed-after") {
		s, _ := flags.GetString("listed-after")
		t, err := catalogs.ParseDate(s)
		if err != nil {
			return nil, errors.NewValidationError("listed-after", s, "expected a YYYY-MM-DD date")
		}
		opts.ListedOnOrAfter = &t
	}
	if flags.Changed("listed-before") {
		s, _ := flags.GetString("listed-before")
		t, err := catalogs.ParseDate(s)
		if err != nil {
			return nil, errors.NewValidationError("listed-before", s, "expected a YYYY-MM-DD date")
		}
		opts.ListedOnOrBefore = &t
	}

	if flags.Changed("allowed-in") {
		opts.AllowedInCountries = upper(nonNil(flags.GetStringSlice("allowed-in")))
	}
	if flags.Changed("blocked-in") {
		opts.BlockedInCountries = upper(nonNil(flags.GetStringSlice("blocked-in")))
	}
	if flags.Changed("category") {
		opts.Categories = nonNil(flags.GetStringSlice("category"))
	}
	if flags.Changed("sub-category") {
		opts.SubCategory = nonNil(flags.GetStringSlice("sub-category"))
	}
	if flags.Changed("developer") {
		id, _ := flags.GetString("developer")
		opts.Developer = &filter.Developer{GithubID: id}
	}
	return opts, nil
}

// Flag lookups cannot fail for flags registered by AddFlags.
func boolFlag(v bool, _ error) bool { return v }

func intFlag(v int, _ error) int { return v }

// nonNil keeps a set-but-empty flag present as an empty list.
func nonNil(values []string, _ error) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func upper(codes []string) []string {
	for i, c := range codes {
		codes[i] = strings.ToUpper(strings.TrimSpace(c))
	}
	return codes
}
