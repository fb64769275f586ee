package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/dappregistry/internal/utils/ptr"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/filter"
)

func ids(dapps []catalogs.Dapp) []string {
	out := make([]string, len(dapps))
	for i, d := range dapps {
		out[i] = d.DappID
	}
	return out
}

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

var taxonomy = catalogs.Taxonomy{
	{Category: "defi", SubCategory: []string{"dex", "lending"}},
	{Category: "games", SubCategory: []string{"rpg", "strategy"}},
}

func dapp(id string, mutate func(*catalogs.Dapp)) catalogs.Dapp {
	d := catalogs.NewTestDapp(id)
	if mutate != nil {
		mutate(&d)
	}
	return d
}

func TestApplyNilOptionsKeepsEverything(t *testing.T) {
	in := []catalogs.Dapp{dapp("a", nil), dapp("b", func(d *catalogs.Dapp) { d.IsListed = false })}
	assert.Equal(t, []string{"a", "b"}, ids(filter.Apply(in, nil, taxonomy)))
	assert.Equal(t, []string{"a"}, ids(filter.Apply(in, filter.Default(), taxonomy)))
	assert.NotNil(t, filter.Apply(nil, nil, taxonomy))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	in := []catalogs.Dapp{dapp("a", nil), dapp("b", func(d *catalogs.Dapp) { d.IsListed = false }), dapp("c", nil)}
	_ = filter.Apply(in, filter.Default(), taxonomy)
	assert.Equal(t, []string{"a", "b", "c"}, ids(in))
}

func TestApply(t *testing.T) {
	in := []catalogs.Dapp{
		dapp("listed", nil),
		dapp("unlisted", func(d *catalogs.Dapp) { d.IsListed = false }),
		dapp("polygon", func(d *catalogs.Dapp) { d.Chains = []int{137} }),
		dapp("chinese", func(d *catalogs.Dapp) { d.Language = []string{"zh"} }),
		dapp("mobile", func(d *catalogs.Dapp) { d.AvailableOnPlatform = []string{"android", "ios"} }),
		dapp("mature", func(d *catalogs.Dapp) { d.IsForMatureAudience = true; d.MinAge = 18 }),
		dapp("teen", func(d *catalogs.Dapp) { d.MinAge = 13 }),
		dapp("twelve", func(d *catalogs.Dapp) { d.MinAge = 12 }),
		dapp("recent", func(d *catalogs.Dapp) { d.ListDate = "2023-09-01" }),
		dapp("baddate", func(d *catalogs.Dapp) { d.ListDate = "someday" }),
		dapp("nodev", func(d *catalogs.Dapp) { d.Developer = nil }),
	}

	tests := []struct {
		name string
		opts filter.Options
		want []string
	}{
		{
			name: "unlisted only",
			opts: filter.Options{IsListed: ptr.To(false)},
			want: []string{"unlisted"},
		},
		{
			name: "chain",
			opts: filter.Options{ChainID: ptr.To(137)},
			want: []string{"polygon"},
		},
		{
			name: "language",
			opts: filter.Options{Language: "zh"},
			want: []string{"chinese"},
		},
		{
			name: "platform intersection",
			opts: filter.Options{AvailableOnPlatform: []string{"ios", "windows"}},
			want: []string{"mobile"},
		},
		{
			name: "empty platform set matches nothing",
			opts: filter.Options{AvailableOnPlatform: []string{}},
			want: []string{},
		},
		{
			name: "mature",
			opts: filter.Options{ForMatureAudience: ptr.To(true)},
			want: []string{"mature"},
		},
		{
			name: "min age is strict",
			opts: filter.Options{MinAge: ptr.To(12)},
			want: []string{"mature", "teen"},
		},
		{
			name: "listed on or after",
			opts: filter.Options{ListedOnOrAfter: date("2023-06-01")},
			want: []string{"recent"},
		},
		{
			name: "listed on or before is inclusive",
			opts: filter.Options{ListedOnOrBefore: date("2023-01-01"), IsListed: ptr.To(false)},
			want: []string{"unlisted"},
		},
		{
			name: "developer",
			opts: filter.Options{Developer: &filter.Developer{GithubID: "test-labs"}, ChainID: ptr.To(137)},
			want: []string{"polygon"},
		},
		{
			name: "developer mismatch",
			opts: filter.Options{Developer: &filter.Developer{GithubID: "someone-else"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			assert.Equal(t, tt.want, ids(filter.Apply(in, &opts, taxonomy)))
		})
	}
}

func TestListDateExample(t *testing.T) {
	in := []catalogs.Dapp{dapp("old", func(d *catalogs.Dapp) { d.ListDate = "2023-01-01" })}
	got := filter.Apply(in, &filter.Options{ListedOnOrAfter: date("2023-06-01")}, taxonomy)
	assert.Empty(t, got)
}

func TestAllowedInCountries(t *testing.T) {
	in := []catalogs.Dapp{
		dapp("us-ca", func(d *catalogs.Dapp) {
			d.GeoRestrictions = &catalogs.GeoRestrictions{AllowedCountries: []string{"US", "CA"}}
		}),
		dapp("ca", func(d *catalogs.Dapp) {
			d.GeoRestrictions = &catalogs.GeoRestrictions{AllowedCountries: []string{"CA"}}
		}),
		dapp("unrestricted", nil),
		dapp("blocks-us", func(d *catalogs.Dapp) {
			d.GeoRestrictions = &catalogs.GeoRestrictions{BlockedCountries: []string{"US"}}
		}),
		dapp("blocks-kp", func(d *catalogs.Dapp) {
			d.GeoRestrictions = &catalogs.GeoRestrictions{BlockedCountries: []string{"KP"}}
		}),
		dapp("empty-geo", func(d *catalogs.Dapp) { d.GeoRestrictions = &catalogs.GeoRestrictions{} }),
	}

	got := filter.Apply(in, &filter.Options{AllowedInCountries: []string{"US"}}, taxonomy)
	assert.Equal(t, []string{"us-ca", "unrestricted", "blocks-kp", "empty-geo"}, ids(got))
}

func TestBlockedInCountries(t *testing.T) {
	in := []catalogs.Dapp{
		dapp("blocks-us", func(d *catalogs.Dapp) {
			d.GeoRestrictions = &catalogs.GeoRestrictions{BlockedCountries: []string{"US", "KP"}}
		}),
		dapp("blocks-kp", func(d *catalogs.Dapp) {
			d.GeoRestrictions = &catalogs.GeoRestrictions{BlockedCountries: []string{"KP"}}
		}),
		dapp("allows-ca", func(d *catalogs.Dapp) {
			d.GeoRestrictions = &catalogs.GeoRestrictions{AllowedCountries: []string{"CA"}}
		}),
		dapp("allows-us", func(d *catalogs.Dapp) {
			d.GeoRestrictions = &catalogs.GeoRestrictions{AllowedCountries: []string{"US"}}
		}),
		dapp("unrestricted", nil),
	}

	got := filter.Apply(in, &filter.Options{BlockedInCountries: []string{"US"}}, taxonomy)
	assert.Equal(t, []string{"blocks-us", "allows-ca"}, ids(got), "entries without geo data are dropped")
}

func TestGeoPresentButEmptyList(t *testing.T) {
	d := dapp("empty-allow", func(d *catalogs.Dapp) {
		d.GeoRestrictions = &catalogs.GeoRestrictions{AllowedCountries: []string{}, BlockedCountries: []string{"US"}}
	})
	assert.False(t, filter.AllowedIn(d, []string{"US"}))
	assert.True(t, filter.BlockedIn(d, []string{"US"}))
}

func TestCategories(t *testing.T) {
	in := []catalogs.Dapp{
		dapp("dex", func(d *catalogs.Dapp) { d.Category = "defi"; d.SubCategory = "dex" }),
		dapp("lending", func(d *catalogs.Dapp) { d.Category = "defi"; d.SubCategory = "lending" }),
		dapp("defi-plain", func(d *catalogs.Dapp) { d.Category = "defi" }),
		dapp("rpg", func(d *catalogs.Dapp) { d.Category = "games"; d.SubCategory = "rpg" }),
		dapp("social", func(d *catalogs.Dapp) { d.Category = "social" }),
	}

	t.Run("categories only", func(t *testing.T) {
		got := filter.Apply(in, &filter.Options{Categories: []string{"defi", "games"}}, taxonomy)
		assert.Equal(t, []string{"dex", "lending", "defi-plain", "rpg"}, ids(got))
	})

	t.Run("sub-category narrows only its own category", func(t *testing.T) {
		got := filter.Apply(in, &filter.Options{
			Categories:  []string{"defi", "games"},
			SubCategory: []string{"dex"},
		}, taxonomy)
		assert.Equal(t, []string{"dex", "rpg"}, ids(got))
	})

	t.Run("sub-categories across categories", func(t *testing.T) {
		got := filter.Apply(in, &filter.Options{
			Categories:  []string{"defi", "games"},
			SubCategory: []string{"lending", "strategy"},
		}, taxonomy)
		assert.Equal(t, []string{"lending"}, ids(got))
	})

	t.Run("sub-category without categories has no effect", func(t *testing.T) {
		got := filter.Apply(in, &filter.Options{SubCategory: []string{"dex"}}, taxonomy)
		assert.Len(t, got, len(in))
	})
}

func TestPairs(t *testing.T) {
	pairs := filter.Pairs(&filter.Options{
		Categories:  []string{"defi", "games", "social"},
		SubCategory: []string{"dex", "rpg", "unknown"},
	}, taxonomy)

	assert.Equal(t, []filter.CategoryPair{
		{Category: "defi", SubCategory: []string{"dex"}},
		{Category: "games", SubCategory: []string{"rpg"}},
		{Category: "social"},
	}, pairs)
	assert.Nil(t, filter.Pairs(nil, taxonomy))
}
