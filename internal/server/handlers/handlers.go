// Package handlers provides HTTP request handlers for the dappregistry API.
package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	regcache "github.com/agentstation/dappregistry/internal/cache"
	"github.com/agentstation/dappregistry/internal/server/cache"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/filter"
)

// Registry is the registry view the handlers serve. *dappregistry.Registry
// implements it.
type Registry interface {
	Init(ctx context.Context) error
	Title(ctx context.Context) (string, error)
	Dapps(ctx context.Context, opts *filter.Options) ([]catalogs.Dapp, error)
	Search(ctx context.Context, text string, opts *filter.Options) ([]catalogs.Dapp, error)
	SearchByID(ctx context.Context, text string) ([]catalogs.Dapp, error)
	FeaturedSections(ctx context.Context) ([]catalogs.FeaturedSection, error)
	Categories() (catalogs.Taxonomy, error)
	Strategy() regcache.Strategy
	LastChecked() time.Time
	Stats() regcache.Stats
}

// Stores is the store list view the handlers serve. *dappregistry.Stores
// implements it.
type Stores interface {
	Init(ctx context.Context) error
	Stores(ctx context.Context) (*catalogs.StoresDocument, error)
	Store(ctx context.Context, key string) (catalogs.Store, error)
	FeaturedSections(ctx context.Context, key string) ([]catalogs.FeaturedSection, error)
	LastChecked() time.Time
	Stats() regcache.Stats
}

// Handlers holds the dependencies shared by every handler.
type Handlers struct {
	registry Registry
	stores   Stores
	cache    *cache.Cache
	logger   *zerolog.Logger
}

// New creates a Handlers instance.
func New(registry Registry, stores Stores, c *cache.Cache, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		registry: registry,
		stores:   stores,
		cache:    c,
		logger:   logger,
	}
}
