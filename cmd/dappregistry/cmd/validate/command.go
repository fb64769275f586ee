// Package validate provides the command that checks a registry or store
// document against the bundled schemas.
package validate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/cmd/emoji"
	"github.com/agentstation/dappregistry/internal/cmd/output"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/errors"
)

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate <file>",
		GroupID: "management",
		Short:   "Validate a registry or dApp store document",
		Long: `Validate checks a registry.json (or, with --stores, a dappStore.json)
against the bundled JSON schemas. Duplicate identifiers are reported before
any schema violation.`,
		Example: `  dappregistry validate registry.json
  dappregistry validate --stores dappStore.json -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, _ := cmd.Flags().GetBool("stores")
			kind := validation.KindRegistry
			if stores {
				kind = validation.KindStores
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return errors.WrapResource("read", "file", args[0], err)
			}

			v, err := app.Validator()
			if err != nil {
				return err
			}
			result, err := v.Validate(kind, raw)
			if err != nil {
				return err
			}

			return report(cmd, app.OutputFormat(), args[0], result)
		},
	}

	cmd.Flags().Bool("stores", false, "validate a dApp store document instead of a registry")
	return cmd
}

func report(cmd *cobra.Command, format, file string, result validation.Result) error {
	w := cmd.OutOrStdout()
	if f := output.DetectFormat(format); !f.Tabular() {
		if err := output.NewFormatter(f).Format(w, result); err != nil {
			return err
		}
		return result.Err()
	}

	switch {
	case result.Valid:
		fmt.Fprintf(w, "%s %s is a valid %s document\n", emoji.Success, file, result.Kind)
	case len(result.Duplicates) > 0:
		fmt.Fprintf(w, "%s %s has duplicate identifiers:\n", emoji.Error, file)
		for _, id := range result.Duplicates {
			fmt.Fprintf(w, "  %s\n", id)
		}
	default:
		fmt.Fprintf(w, "%s %s failed schema validation:\n", emoji.Error, file)
		if err := output.NewFormatter(output.FormatTable).Format(w, output.DiagnosticsTable(result.Diagnostics)); err != nil {
			return err
		}
	}
	return result.Err()
}
