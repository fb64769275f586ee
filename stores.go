package dappregistry

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/internal/cache"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/errors"
)

// Stores gives read access to the published list of dApp stores and their
// featured sections. It follows the same fetch, fallback and TTL rules as
// Registry.
type Stores struct {
	logger *zerolog.Logger
	cache  *cache.Cache[*catalogs.StoresDocument]

	initMu sync.Mutex
	ready  bool
}

// NewStores creates a store list client.
func NewStores(opts ...Option) (*Stores, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.ttl <= 0 {
		o.ttl = constants.StoresTTL
	}

	deps, err := newComponents(o, "stores")
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cache.Config[*catalogs.StoresDocument]{
		Name:     "stores",
		Strategy: o.strategy,
		TTL:      o.ttl,
		Fetch: func(ctx context.Context) (*catalogs.StoresDocument, error) {
			return deps.fetcher.Stores(ctx, o.storesURL)
		},
		Snapshot: deps.snapshot.Stores,
		Copy:     (*catalogs.StoresDocument).Copy,
		Checksum: func(s *catalogs.StoresDocument) (string, error) { return catalogs.Checksum(s) },
		Clock:    o.clock,
		Logger:   deps.logger,
		Observer: o.observer,
	})
	if err != nil {
		return nil, err
	}

	return &Stores{logger: deps.logger, cache: c}, nil
}

// Init fetches the store list. Calls after the first successful one do nothing.
func (s *Stores) Init(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.ready {
		return nil
	}
	if _, err := s.cache.Current(ctx); err != nil {
		return err
	}
	s.ready = true
	return nil
}

// Stores returns a deep copy of the current store list.
func (s *Stores) Stores(ctx context.Context) (*catalogs.StoresDocument, error) {
	return s.cache.Current(ctx)
}

// Store returns the store with the given key, or a NotFoundError.
func (s *Stores) Store(ctx context.Context, key string) (catalogs.Store, error) {
	doc, err := s.cache.Current(ctx)
	if err != nil {
		return catalogs.Store{}, err
	}
	st, ok := doc.Find(key)
	if !ok {
		return catalogs.Store{}, errors.NewNotFoundError("store", key)
	}
	return st, nil
}

// FeaturedSections returns the featured sections of one store. An unknown
// store is a NotFoundError; a store without sections yields an empty slice.
func (s *Stores) FeaturedSections(ctx context.Context, key string) ([]catalogs.FeaturedSection, error) {
	st, err := s.Store(ctx, key)
	if err != nil {
		s.logger.Debug().Str("store", key).Msg("no store with key")
		return nil, err
	}
	if st.FeaturedSections == nil {
		return []catalogs.FeaturedSection{}, nil
	}
	return st.FeaturedSections, nil
}

// Strategy returns the configured strategy.
func (s *Stores) Strategy() Strategy {
	return s.cache.Strategy()
}

// LastChecked returns when the remote store list was last consulted.
func (s *Stores) LastChecked() time.Time {
	return s.cache.LastChecked()
}

// Stats returns cache counters.
func (s *Stores) Stats() CacheStats {
	return s.cache.Stats()
}
