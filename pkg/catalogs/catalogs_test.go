package catalogs_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
)

func TestRegistryCopy(t *testing.T) {
	d := catalogs.NewTestDapp("uniswap")
	d.Tags = []string{"dex", "swap"}
	d.GeoRestrictions = &catalogs.GeoRestrictions{AllowedCountries: []string{"US"}, BlockedCountries: []string{}}
	d.Images = &catalogs.Images{Logo: "https://x/logo.png", Screenshots: []string{"a", "b"}}
	d.Developer.Support = &catalogs.Support{Email: "help@example.org"}

	original := catalogs.NewTestRegistry("Registry", d)
	original.FeaturedSections = []catalogs.FeaturedSection{{Title: "Top", Key: "top", DappIDs: []string{"uniswap"}}}

	cp := original.Copy()
	require.Empty(t, cmp.Diff(original, cp))

	t.Run("mutating the copy leaves the original untouched", func(t *testing.T) {
		cp.Title = "changed"
		cp.Dapps[0].Tags[0] = "changed"
		cp.Dapps[0].GeoRestrictions.AllowedCountries[0] = "CA"
		cp.Dapps[0].Images.Screenshots[0] = "changed"
		cp.Dapps[0].Developer.Support.Email = "changed"
		cp.FeaturedSections[0].DappIDs[0] = "changed"

		assert.Equal(t, "Registry", original.Title)
		assert.Equal(t, "dex", original.Dapps[0].Tags[0])
		assert.Equal(t, "US", original.Dapps[0].GeoRestrictions.AllowedCountries[0])
		assert.Equal(t, "a", original.Dapps[0].Images.Screenshots[0])
		assert.Equal(t, "help@example.org", original.Dapps[0].Developer.Support.Email)
		assert.Equal(t, "uniswap", original.FeaturedSections[0].DappIDs[0])
	})

	t.Run("nil and empty restriction lists stay distinct", func(t *testing.T) {
		assert.Nil(t, catalogs.NewTestDapp("x").Clone().Tags)
		geo := original.Copy().Dapps[0].GeoRestrictions
		assert.NotNil(t, geo.BlockedCountries)
		assert.Empty(t, geo.BlockedCountries)
	})

	t.Run("nil registry", func(t *testing.T) {
		var r *catalogs.Registry
		assert.Nil(t, r.Copy())
	})
}

func TestChecksum(t *testing.T) {
	a := catalogs.NewTestRegistry("R", catalogs.NewTestDapp("a"))
	b := a.Copy()

	sumA, err := catalogs.Checksum(a)
	require.NoError(t, err)
	sumB, err := catalogs.Checksum(b)
	require.NoError(t, err)
	assert.Equal(t, sumA, sumB)

	b.Dapps[0].Name = "renamed"
	sumB, err = catalogs.Checksum(b)
	require.NoError(t, err)
	assert.NotEqual(t, sumA, sumB)
}

func TestChecksumGeoPresence(t *testing.T) {
	empty, err := catalogs.Checksum(&catalogs.GeoRestrictions{AllowedCountries: []string{}})
	require.NoError(t, err)
	absent, err := catalogs.Checksum(&catalogs.GeoRestrictions{})
	require.NoError(t, err)
	assert.NotEqual(t, empty, absent)

	raw, err := json.Marshal(&catalogs.GeoRestrictions{BlockedCountries: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"blockedCountries":[]}`, string(raw))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2023-01-01", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"2023-06-01T12:00:00Z", time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC), false},
		{"June 1st", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := catalogs.ParseDate(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestDeriveDappID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://app.uniswap.org", "org.uniswap.app", false},
		{"https://www.Aave.com/", "com.aave", false},
		{"https://app.uniswap.org/swap", "org.uniswap.app.swap", false},
		{"http://localhost:3000/a/b", "localhost.a.b", false},
		{"ftp://files.example.org", "", true},
		{"not a url", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := catalogs.DeriveDappID(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveDappIDs(t *testing.T) {
	ids, err := catalogs.DeriveDappIDs([]string{"https://a.org", "https://b.org"})
	require.NoError(t, err)
	assert.Equal(t, []string{"org.a", "org.b"}, ids)

	_, err = catalogs.DeriveDappIDs([]string{"https://a.org", "https://www.a.org/"})
	assert.True(t, errors.IsValidationError(err))
}

func TestStoresDocument(t *testing.T) {
	doc := &catalogs.StoresDocument{DappStores: []catalogs.Store{
		{Name: "Meroku", Key: "meroku", FeaturedSections: []catalogs.FeaturedSection{{Key: "f", DappIDs: []string{"x"}}}},
		{Name: "Other", Key: "other"},
	}}

	assert.Equal(t, []string{"meroku", "other"}, doc.Keys())

	st, ok := doc.Find("other")
	assert.True(t, ok)
	assert.Equal(t, "Other", st.Name)

	_, ok = doc.Find("missing")
	assert.False(t, ok)

	cp := doc.Copy()
	cp.DappStores[0].FeaturedSections[0].DappIDs[0] = "y"
	assert.Equal(t, "x", doc.DappStores[0].FeaturedSections[0].DappIDs[0])
}

func TestTaxonomy(t *testing.T) {
	tax := catalogs.Taxonomy{
		{Category: "defi", SubCategory: []string{"dex", "lending"}},
		{Category: "games", SubCategory: []string{"rpg"}},
	}
	assert.Equal(t, []string{"rpg"}, tax.SubCategoriesOf("games"))
	assert.Nil(t, tax.SubCategoriesOf("social"))
}
