// Package ids provides the command that derives dApp identifiers from URLs.
package ids

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/cmd/emoji"
	"github.com/agentstation/dappregistry/internal/cmd/output"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/constants"
)

// Derivation is the identifier derived from one dApp's URL.
type Derivation struct {
	DappID    string `json:"dappId" yaml:"dappId"`
	AppURL    string `json:"appUrl" yaml:"appUrl"`
	DerivedID string `json:"derivedId,omitempty" yaml:"derivedId,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewCommand creates the ids command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "ids",
		GroupID: "management",
		Short:   "Derive identifiers from every dApp URL and check they are unique",
		Long: `ids derives a reverse-domain identifier from each dApp's URL, so
"https://app.uniswap.org" becomes "org.uniswap.app". It exits with an error
when a URL cannot be parsed or two URLs derive the same identifier.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			doc, err := reg.Document(cmd.Context())
			if err != nil {
				return err
			}

			derivations := Derive(doc.Dapps)
			err = output.Render(cmd.OutOrStdout(), app.OutputFormat(), derivations, func(bool) output.Data {
				return table(derivations)
			})
			if err != nil {
				return err
			}

			if status := reg.AllDappIDs(cmd.Context()); status != constants.StatusOK {
				cmd.PrintErrf("%s dApp identifiers are not unique (status %d)\n", emoji.Error, status)
				return fmt.Errorf("deriving dApp identifiers failed with status %d", status)
			}
			cmd.PrintErrf("%s %d dApp identifiers derived\n", emoji.Success, len(derivations))
			return nil
		},
	}
}

// Derive derives an identifier for each dApp and flags parse failures and
// identifiers already derived from an earlier dApp.
func Derive(dapps []catalogs.Dapp) []Derivation {
	owners := make(map[string]catalogs.Dapp, len(dapps))
	out := make([]Derivation, 0, len(dapps))
	for _, d := range dapps {
		row := Derivation{DappID: d.DappID, AppURL: d.AppURL}
		id, err := catalogs.DeriveDappID(d.AppURL)
		if err != nil {
			row.Error = err.Error()
			out = append(out, row)
			continue
		}
		row.DerivedID = id
		if owner, ok := owners[id]; ok {
			row.Error = "duplicate of " + label(owner)
		} else {
			owners[id] = d
		}
		out = append(out, row)
	}
	return out
}

// label names a dApp by its identifier, or by its URL when it has none.
func label(d catalogs.Dapp) string {
	if d.DappID != "" {
		return d.DappID
	}
	return d.AppURL
}

func table(derivations []Derivation) output.Data {
	rows := make([][]string, 0, len(derivations))
	for _, d := range derivations {
		status := emoji.Success
		if d.Error != "" {
			status = emoji.Error + " " + d.Error
		}
		rows = append(rows, []string{d.DappID, d.AppURL, d.DerivedID, status})
	}
	return output.Data{Headers: []string{"dApp", "URL", "Derived ID", "Status"}, Rows: rows}
}
