package dappregistry

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/internal/cache"
	"github.com/agentstation/dappregistry/internal/search"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/filter"
)

// Registry gives read access to the dApp registry.
//
// The search index is built by Init from the document current at that time
// and is not rebuilt when the cache later picks up new content; call Reindex
// for that. Filtering always runs against the current document.
type Registry struct {
	opts   *options
	logger *zerolog.Logger
	deps   *components
	cache  *cache.Cache[*catalogs.Registry]
	index  *search.Index

	initMu      sync.Mutex
	initialized bool
}

// New creates a registry client. Nothing is fetched until the first read.
func New(opts ...Option) (*Registry, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.ttl <= 0 {
		o.ttl = constants.RegistryTTL
	}

	deps, err := newComponents(o, "registry")
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cache.Config[*catalogs.Registry]{
		Name:     "registry",
		Strategy: o.strategy,
		TTL:      o.ttl,
		Fetch: func(ctx context.Context) (*catalogs.Registry, error) {
			return deps.fetcher.Registry(ctx, o.registryURL)
		},
		Snapshot: deps.snapshot.Registry,
		Copy:     (*catalogs.Registry).Copy,
		Checksum: func(r *catalogs.Registry) (string, error) { return catalogs.Checksum(r) },
		Clock:    o.clock,
		Logger:   deps.logger,
		Observer: o.observer,
	})
	if err != nil {
		return nil, err
	}

	return &Registry{
		opts:   o,
		logger: deps.logger,
		deps:   deps,
		cache:  c,
		index:  search.New(deps.logger),
	}, nil
}

// Init fetches the registry and builds the search index. Calls after the
// first successful one do nothing.
func (r *Registry) Init(ctx context.Context) error {
	r.initMu.Lock()
	defer r.initMu.Unlock()

	if r.initialized {
		return nil
	}
	if err := r.buildIndex(ctx); err != nil {
		return err
	}
	r.initialized = true
	return nil
}

// Reindex rebuilds the search index from the current document.
func (r *Registry) Reindex(ctx context.Context) error {
	r.initMu.Lock()
	defer r.initMu.Unlock()

	if err := r.buildIndex(ctx); err != nil {
		return err
	}
	r.initialized = true
	return nil
}

func (r *Registry) buildIndex(ctx context.Context) error {
	doc, err := r.cache.Current(ctx)
	if err != nil {
		return err
	}
	return r.index.Build(doc.Dapps)
}

// Document returns a deep copy of the current registry document.
func (r *Registry) Document(ctx context.Context) (*catalogs.Registry, error) {
	return r.cache.Current(ctx)
}

// Title returns the registry title.
func (r *Registry) Title(ctx context.Context) (string, error) {
	doc, err := r.cache.Current(ctx)
	if err != nil {
		return "", err
	}
	return doc.Title, nil
}

// Dapps returns the dApps matching opts. A nil opts lists listed dApps only.
func (r *Registry) Dapps(ctx context.Context, opts *filter.Options) ([]catalogs.Dapp, error) {
	doc, err := r.cache.Current(ctx)
	if err != nil {
		return nil, err
	}
	return r.apply(doc.Dapps, opts)
}

// Search returns dApps matching text, best match first, narrowed by opts.
// A nil opts keeps listed dApps only.
func (r *Registry) Search(ctx context.Context, text string, opts *filter.Options) ([]catalogs.Dapp, error) {
	if err := r.Init(ctx); err != nil {
		return nil, err
	}
	defer r.observeSearch("text", time.Now())

	hits, err := r.index.Search(text)
	if err != nil {
		return nil, err
	}
	return r.apply(hits, opts)
}

// SearchByID returns dApps whose identifier matches every term of text.
func (r *Registry) SearchByID(ctx context.Context, text string) ([]catalogs.Dapp, error) {
	if err := r.Init(ctx); err != nil {
		return nil, err
	}
	defer r.observeSearch("id", time.Now())

	return r.index.SearchByID(text)
}

// FeaturedSections returns the registry's featured sections. A registry
// without any yields an empty slice.
func (r *Registry) FeaturedSections(ctx context.Context) ([]catalogs.FeaturedSection, error) {
	doc, err := r.cache.Current(ctx)
	if err != nil {
		return nil, err
	}
	if doc.FeaturedSections == nil {
		return []catalogs.FeaturedSection{}, nil
	}
	return doc.FeaturedSections, nil
}

// Categories returns the bundled category taxonomy.
func (r *Registry) Categories() (catalogs.Taxonomy, error) {
	return r.deps.snapshot.Taxonomy()
}

// AllDappIDs derives an identifier from every dApp's URL and reports
// constants.StatusOK when all of them derive cleanly and uniquely, or
// constants.StatusFailed otherwise.
func (r *Registry) AllDappIDs(ctx context.Context) int {
	doc, err := r.cache.Current(ctx)
	if err != nil {
		r.logger.Debug().Err(err).Msg("registry unavailable")
		return constants.StatusFailed
	}

	urls := make([]string, len(doc.Dapps))
	for i, d := range doc.Dapps {
		urls[i] = d.AppURL
	}
	ids, err := catalogs.DeriveDappIDs(urls)
	if err != nil {
		r.logger.Debug().Err(err).Msg("deriving dApp IDs failed")
		return constants.StatusFailed
	}
	r.logger.Debug().Strs("ids", ids).Msg("derived dApp IDs")
	return constants.StatusOK
}

// Strategy returns the configured strategy.
func (r *Registry) Strategy() Strategy {
	return r.cache.Strategy()
}

// LastChecked returns when the remote registry was last consulted.
func (r *Registry) LastChecked() time.Time {
	return r.cache.LastChecked()
}

// Stats returns cache counters.
func (r *Registry) Stats() CacheStats {
	return r.cache.Stats()
}

// Close releases the search index. A later search initializes again.
func (r *Registry) Close() error {
	r.initMu.Lock()
	defer r.initMu.Unlock()
	r.initialized = false
	return r.index.Close()
}

func (r *Registry) apply(dapps []catalogs.Dapp, opts *filter.Options) ([]catalogs.Dapp, error) {
	if opts == nil {
		opts = filter.Default()
	}
	tax, err := r.deps.snapshot.Taxonomy()
	if err != nil {
		return nil, err
	}
	return filter.Apply(dapps, opts, tax), nil
}

func (r *Registry) observeSearch(kind string, start time.Time) {
	if obs, ok := r.opts.observer.(searchObserver); ok {
		obs.ObserveSearch(kind, start)
	}
}
