package output

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/catalogs"
)

// Humanize turns a taxonomy key such as "play-to-earn" into "Play To Earn".
func Humanize(key string) string {
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(key))
}

// DappsTable lays out dApps one per row. Wide adds chains, platforms and developer.
func DappsTable(dapps []catalogs.Dapp, wide bool) Data {
	headers := []string{"ID", "Name", "Category", "Listed", "Listed On"}
	if wide {
		headers = append(headers, "Chains", "Platforms", "Developer")
	}

	rows := make([][]string, 0, len(dapps))
	for _, d := range dapps {
		category := Humanize(d.Category)
		if d.SubCategory != "" {
			category += " / " + Humanize(d.SubCategory)
		}
		row := []string{d.DappID, d.Name, category, yesNo(d.IsListed), d.ListDate}
		if wide {
			dev := ""
			if d.Developer != nil {
				dev = d.Developer.GithubID
			}
			row = append(row, joinInts(d.Chains), strings.Join(d.AvailableOnPlatform, ", "), dev)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// SectionsTable lays out featured sections.
func SectionsTable(sections []catalogs.FeaturedSection) Data {
	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		rows = append(rows, []string{s.Key, s.Title, strconv.Itoa(len(s.DappIDs)), strings.Join(s.DappIDs, ", ")})
	}
	return Data{
		Headers:         []string{"Key", "Title", "Count", "dApps"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// StoresTable lays out dApp stores.
func StoresTable(stores []catalogs.Store) Data {
	rows := make([][]string, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, []string{s.Key, s.Name, s.URL, strconv.Itoa(len(s.FeaturedSections))})
	}
	return Data{
		Headers:         []string{"Key", "Name", "URL", "Sections"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
}

// TaxonomyTable lays out the category taxonomy with readable names.
func TaxonomyTable(tax catalogs.Taxonomy) Data {
	rows := make([][]string, 0, len(tax))
	for _, c := range tax {
		subs := make([]string, len(c.SubCategory))
		for i, s := range c.SubCategory {
			subs[i] = Humanize(s)
		}
		rows = append(rows, []string{c.Category, Humanize(c.Category), strings.Join(subs, ", ")})
	}
	return Data{Headers: []string{"Key", "Category", "Sub-categories"}, Rows: rows}
}

// DiagnosticsTable lays out schema violations.
func DiagnosticsTable(diags validation.Diagnostics) Data {
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		loc := d.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		rows = append(rows, []string{loc, d.KeywordLocation, d.Message})
	}
	return Data{Headers: []string{"Location", "Keyword", "Message"}, Rows: rows}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func joinInts(in []int) string {
	parts := make([]string, len(in))
	for i, n := range in {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
