package catalogs

// NewTestDapp returns a listed, schema-valid dApp for tests. Callers adjust
// the fields they care about.
func NewTestDapp(id string) Dapp {
	return Dapp{
		Name:                id,
		Description:         "Test dApp " + id,
		AppURL:              "https://" + id + ".example.org",
		DappID:              id,
		MinAge:              0,
		IsForMatureAudience: false,
		IsSelfModerated:     true,
		Language:            []string{"en"},
		IsListed:            true,
		ListDate:            "2023-01-01",
		AvailableOnPlatform: []string{"web"},
		Chains:              []int{1},
		Category:            "defi",
		Developer:           &Developer{LegalName: "Test Labs", GithubID: "test-labs"},
	}
}

// NewTestRegistry returns a registry holding the given dApps.
func NewTestRegistry(title string, dapps ...Dapp) *Registry {
	if dapps == nil {
		dapps = []Dapp{}
	}
	return &Registry{Title: title, Dapps: dapps}
}
