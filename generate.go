//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/dappregistry --repository.default-branch main --repository.path /

// Package dappregistry is a client for the published dApp registry.
//
// It fetches the registry document from GitHub, validates it against the
// bundled JSON schemas, and keeps it in memory for ten minutes at a time.
// When the remote document cannot be fetched or fails validation the bundled
// snapshot is served instead, so reads never fail on network conditions.
//
// Example usage:
//
//	reg, err := dappregistry.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := reg.Init(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Listed dApps on Polygon
//	chain := 137
//	dapps, err := reg.Dapps(ctx, &filter.Options{ChainID: &chain})
//
//	// Full-text search
//	hits, err := reg.Search(ctx, "swap", nil)
package dappregistry
