// Package catalogs defines the dApp registry data model: the registry document,
// its dApp entries and featured sections, the store list, and the category taxonomy.
// Documents are plain values; the cache hands out deep copies so callers own
// everything they receive.
package catalogs

import (
	"time"

	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/errors"
)

// Dapp is one application descriptor in the registry.
type Dapp struct {
	Name                string           `json:"name" yaml:"name"`
	Description         string           `json:"description" yaml:"description"`
	AppURL              string           `json:"appUrl,omitempty" yaml:"appUrl,omitempty"`
	DownloadBaseURLs    []DownloadURL    `json:"downloadBaseUrls,omitempty" yaml:"downloadBaseUrls,omitempty"`
	Contracts           []Contract       `json:"contracts,omitempty" yaml:"contracts,omitempty"`
	Images              *Images          `json:"images,omitempty" yaml:"images,omitempty"`
	RepoURL             string           `json:"repoUrl,omitempty" yaml:"repoUrl,omitempty"`
	DappID              string           `json:"dappId" yaml:"dappId"`
	MinAge              int              `json:"minAge" yaml:"minAge"`
	IsForMatureAudience bool             `json:"isForMatureAudience" yaml:"isForMatureAudience"`
	IsSelfModerated     bool             `json:"isSelfModerated" yaml:"isSelfModerated"`
	Language            []string         `json:"language" yaml:"language"`
	Version             string           `json:"version,omitempty" yaml:"version,omitempty"`
	VersionCode         int              `json:"versionCode,omitempty" yaml:"versionCode,omitempty"`
	IsListed            bool             `json:"isListed" yaml:"isListed"`
	ListDate            string           `json:"listDate" yaml:"listDate"`
	ExpiryDate          string           `json:"expiryDate,omitempty" yaml:"expiryDate,omitempty"`
	AvailableOnPlatform []string         `json:"availableOnPlatform" yaml:"availableOnPlatform"`
	GeoRestrictions     *GeoRestrictions `json:"geoRestrictions,omitempty" yaml:"geoRestrictions,omitempty"`
	Developer           *Developer       `json:"developer,omitempty" yaml:"developer,omitempty"`
	Tags                []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Chains              []int            `json:"chains" yaml:"chains"`
	Category            string           `json:"category" yaml:"category"`
	SubCategory         string           `json:"subCategory,omitempty" yaml:"subCategory,omitempty"`
	PackageID           string           `json:"packageId,omitempty" yaml:"packageId,omitempty"`
	WalletAPIVersion    string           `json:"walletApiVersion,omitempty" yaml:"walletApiVersion,omitempty"`
	ReferredBy          string           `json:"referredBy,omitempty" yaml:"referredBy,omitempty"`
}

// GeoRestrictions limits where a dApp may be offered.
// A nil list means the restriction is absent; an empty list is present but matches nothing.
type GeoRestrictions struct {
	AllowedCountries []string `json:"allowedCountries,omitzero" yaml:"allowedCountries,omitempty"`
	BlockedCountries []string `json:"blockedCountries,omitzero" yaml:"blockedCountries,omitempty"`
}

// Developer identifies who publishes a dApp.
type Developer struct {
	LegalName        string   `json:"legalName,omitempty" yaml:"legalName,omitempty"`
	Logo             string   `json:"logo,omitempty" yaml:"logo,omitempty"`
	Website          string   `json:"website,omitempty" yaml:"website,omitempty"`
	PrivacyPolicyURL string   `json:"privacyPolicyUrl,omitempty" yaml:"privacyPolicyUrl,omitempty"`
	Support          *Support `json:"support,omitempty" yaml:"support,omitempty"`
	GithubID         string   `json:"githubID" yaml:"githubID"`
}

// Support holds developer support contacts.
type Support struct {
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// DownloadURL points at a platform-specific build.
type DownloadURL struct {
	URL          string `json:"url" yaml:"url"`
	Platform     string `json:"platform" yaml:"platform"`
	Architecture string `json:"architecture,omitempty" yaml:"architecture,omitempty"`
}

// Contract is a smart contract a dApp interacts with.
type Contract struct {
	Address string `json:"address" yaml:"address"`
	ChainID int    `json:"chainId" yaml:"chainId"`
}

// Images holds the dApp's artwork.
type Images struct {
	Logo        string   `json:"logo,omitempty" yaml:"logo,omitempty"`
	Banner      string   `json:"banner,omitempty" yaml:"banner,omitempty"`
	Screenshots []string `json:"screenshots,omitempty" yaml:"screenshots,omitempty"`
}

// ListedOn parses the listing date. Both calendar dates and RFC 3339 timestamps are accepted.
func (d Dapp) ListedOn() (time.Time, error) {
	return ParseDate(d.ListDate)
}

// ParseDate parses an ISO 8601 calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.WrapParse("date", s, err)
	}
	return t, nil
}

// Clone returns a deep copy of the dApp.
func (d Dapp) Clone() Dapp {
	c := d
	c.DownloadBaseURLs = cloneSlice(d.DownloadBaseURLs)
	c.Contracts = cloneSlice(d.Contracts)
	c.Language = cloneSlice(d.Language)
	c.AvailableOnPlatform = cloneSlice(d.AvailableOnPlatform)
	c.Tags = cloneSlice(d.Tags)
	c.Chains = cloneSlice(d.Chains)
	if d.Images != nil {
		images := *d.Images
		images.Screenshots = cloneSlice(d.Images.Screenshots)
		c.Images = &images
	}
	if d.GeoRestrictions != nil {
		c.GeoRestrictions = &GeoRestrictions{
			AllowedCountries: cloneSlice(d.GeoRestrictions.AllowedCountries),
			BlockedCountries: cloneSlice(d.GeoRestrictions.BlockedCountries),
		}
	}
	if d.Developer != nil {
		dev := *d.Developer
		if d.Developer.Support != nil {
			support := *d.Developer.Support
			dev.Support = &support
		}
		c.Developer = &dev
	}
	return c
}

// CloneDapps deep-copies a slice of dApps.
func CloneDapps(dapps []Dapp) []Dapp {
	if dapps == nil {
		return nil
	}
	out := make([]Dapp, len(dapps))
	for i := range dapps {
		out[i] = dapps[i].Clone()
	}
	return out
}

// cloneSlice copies s, keeping nil and empty distinct.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
