// Package filter narrows a list of dApps by the registry's filter vocabulary.
//
// Every option is optional. A nil pointer or nil slice means the option is
// absent and does not filter; a non-nil empty slice is present and filters
// against the empty set. Options combine with logical AND and are applied in
// a fixed order.
package filter

import (
	"slices"
	"time"

	"github.com/agentstation/dappregistry/internal/utils/ptr"
	"github.com/agentstation/dappregistry/pkg/catalogs"
)

// Options holds the filter criteria.
type Options struct {
	IsListed            *bool      `json:"isListed,omitempty" yaml:"isListed,omitempty"`
	ChainID             *int       `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Language            string     `json:"language,omitempty" yaml:"language,omitempty"`
	AvailableOnPlatform []string   `json:"availableOnPlatform,omitempty" yaml:"availableOnPlatform,omitempty"`
	ForMatureAudience   *bool      `json:"forMatureAudience,omitempty" yaml:"forMatureAudience,omitempty"`
	MinAge              *int       `json:"minAge,omitempty" yaml:"minAge,omitempty"`
	ListedOnOrAfter     *time.Time `json:"listedOnOrAfter,omitempty" yaml:"listedOnOrAfter,omitempty"`
	ListedOnOrBefore    *time.Time `json:"listedOnOrBefore,omitempty" yaml:"listedOnOrBefore,omitempty"`
	AllowedInCountries  []string   `json:"allowedInCountries,omitempty" yaml:"allowedInCountries,omitempty"`
	BlockedInCountries  []string   `json:"blockedInCountries,omitempty" yaml:"blockedInCountries,omitempty"`
	Categories          []string   `json:"categories,omitempty" yaml:"categories,omitempty"`
	SubCategory         []string   `json:"subCategory,omitempty" yaml:"subCategory,omitempty"`
	Developer           *Developer `json:"developer,omitempty" yaml:"developer,omitempty"`
}

// Developer filters on developer identity.
type Developer struct {
	GithubID string `json:"githubID" yaml:"githubID"`
}

// Default returns the options used when a caller passes none: listed dApps only.
func Default() *Options {
	return &Options{IsListed: ptr.To(true)}
}

// CategoryPair restricts one category to a set of sub-categories.
type CategoryPair struct {
	Category    string
	SubCategory []string
}

// Pairs derives the category/sub-category pairing for opts. Each requested
// category is paired with the requested sub-categories the taxonomy places
// under it.
func Pairs(opts *Options, taxonomy catalogs.Taxonomy) []CategoryPair {
	if opts == nil || opts.Categories == nil {
		return nil
	}
	pairs := make([]CategoryPair, 0, len(opts.Categories))
	for _, cat := range opts.Categories {
		known := taxonomy.SubCategoriesOf(cat)
		var subs []string
		for _, sub := range opts.SubCategory {
			if slices.Contains(known, sub) {
				subs = append(subs, sub)
			}
		}
		pairs = append(pairs, CategoryPair{Category: cat, SubCategory: subs})
	}
	return pairs
}

// Apply returns the dApps matching opts, in their original order. A nil opts
// keeps everything. The input slice is not modified.
func Apply(dapps []catalogs.Dapp, opts *Options, taxonomy catalogs.Taxonomy) []catalogs.Dapp {
	res := slices.Clone(dapps)
	if res == nil {
		res = []catalogs.Dapp{}
	}
	if opts == nil {
		return res
	}

	if opts.IsListed != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return d.IsListed == *opts.IsListed })
	}
	if opts.ChainID != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return slices.Contains(d.Chains, *opts.ChainID) })
	}
	if opts.Language != "" {
		res = keep(res, func(d catalogs.Dapp) bool { return slices.Contains(d.Language, opts.Language) })
	}
	if opts.AvailableOnPlatform != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return intersects(d.AvailableOnPlatform, opts.AvailableOnPlatform) })
	}
	if opts.ForMatureAudience != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return d.IsForMatureAudience == *opts.ForMatureAudience })
	}
	if opts.MinAge != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return d.MinAge > *opts.MinAge })
	}
	if opts.ListedOnOrAfter != nil {
		res = keep(res, func(d catalogs.Dapp) bool {
			t, err := d.ListedOn()
			return err == nil && !t.Before(*opts.ListedOnOrAfter)
		})
	}
	if opts.ListedOnOrBefore != nil {
		res = keep(res, func(d catalogs.Dapp) bool {
			t, err := d.ListedOn()
			return err == nil && !t.After(*opts.ListedOnOrBefore)
		})
	}
	if opts.AllowedInCountries != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return AllowedIn(d, opts.AllowedInCountries) })
	}
	if opts.BlockedInCountries != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return BlockedIn(d, opts.BlockedInCountries) })
	}

	pairs := Pairs(opts, taxonomy)
	if opts.Categories != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return slices.Contains(opts.Categories, d.Category) })
	}
	for _, p := range pairs {
		if len(p.SubCategory) == 0 {
			continue
		}
		res = keep(res, func(d catalogs.Dapp) bool {
			return d.Category != p.Category || (d.SubCategory != "" && slices.Contains(p.SubCategory, d.SubCategory))
		})
	}

	if opts.Developer != nil {
		res = keep(res, func(d catalogs.Dapp) bool { return githubID(d) == opts.Developer.GithubID })
	}

	return res
}

// AllowedIn reports whether d may be offered in any of countries.
// An allow list decides first, then a block list; with neither the dApp is allowed.
func AllowedIn(d catalogs.Dapp, countries []string) bool {
	if geo := d.GeoRestrictions; geo != nil {
		if geo.AllowedCountries != nil {
			return intersects(geo.AllowedCountries, countries)
		}
		if geo.BlockedCountries != nil {
			return !intersects(geo.BlockedCountries, countries)
		}
	}
	return true
}

// BlockedIn reports whether d is blocked in any of countries.
// A block list decides first, then an allow list; with neither the dApp is
// not reported as blocked and is dropped by the filter.
func BlockedIn(d catalogs.Dapp, countries []string) bool {
	if geo := d.GeoRestrictions; geo != nil {
		if geo.BlockedCountries != nil {
			return intersects(geo.BlockedCountries, countries)
		}
		if geo.AllowedCountries != nil {
			return !intersects(geo.AllowedCountries, countries)
		}
	}
	return false
}

func keep(dapps []catalogs.Dapp, pred func(catalogs.Dapp) bool) []catalogs.Dapp {
	out := dapps[:0]
	for _, d := range dapps {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}

func githubID(d catalogs.Dapp) string {
	if d.Developer == nil {
		return ""
	}
	return d.Developer.GithubID
}
