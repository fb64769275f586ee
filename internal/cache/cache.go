// Package cache holds one registry document in memory and decides when it
// must be checked against the remote source again.
//
// A document is fetched on first use. While it is younger than the TTL every
// read is served from memory. Once it is older, the next read fetches a
// candidate and replaces the held document only when the checksums differ.
// Either way the check time advances. Every read returns a deep copy.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/agentstation/dappregistry/internal/sources/remote"
	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// Observer receives cache events. The metrics package implements it.
type Observer interface {
	ObserveFetch(document, origin string)
	ObserveHit(document string)
	ObserveReplace(document string)
}

// Config configures a Cache.
type Config[T any] struct {
	// Name labels logs and metrics, e.g. "registry" or "stores".
	Name     string
	Strategy Strategy
	TTL      time.Duration

	Fetch    func(context.Context) (T, error)
	Snapshot func() (T, error)
	Copy     func(T) T
	Checksum func(T) (string, error)

	Clock    func() time.Time
	Logger   *zerolog.Logger
	Observer Observer
}

// Stats counts what the cache has done since it was created.
type Stats struct {
	Hits         uint64 `json:"hits"`
	Refreshes    uint64 `json:"refreshes"`
	Replacements uint64 `json:"replacements"`
	Fallbacks    uint64 `json:"fallbacks"`
}

// Cache is a TTL-checked, checksum-gated holder for one document.
type Cache[T any] struct {
	cfg    Config[T]
	logger *zerolog.Logger
	group  singleflight.Group

	mu          sync.Mutex
	doc         T
	loaded      bool
	checksum    string
	lastChecked time.Time

	hits         atomic.Uint64
	refreshes    atomic.Uint64
	replacements atomic.Uint64
	fallbacks    atomic.Uint64
}

// New creates an empty cache.
func New[T any](cfg Config[T]) (*Cache[T], error) {
	if cfg.Snapshot == nil || cfg.Copy == nil || cfg.Checksum == nil {
		return nil, errors.NewConfigError("cache", "snapshot, copy and checksum functions are required", nil)
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyGitHub
	}
	if cfg.Strategy == StrategyGitHub && cfg.Fetch == nil {
		return nil, errors.NewConfigError("cache", "the github strategy needs a fetch function", nil)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = constants.RegistryTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Name == "" {
		cfg.Name = "document"
	}

	logger := logging.Named(cfg.Logger, "cache").With().Str("document", cfg.Name).Logger()
	return &Cache[T]{cfg: cfg, logger: &logger}, nil
}

// Current returns a deep copy of the current document, fetching or
// re-checking it first when needed. Remote failures are absorbed by falling
// back to the snapshot; only a snapshot failure is returned.
func (c *Cache[T]) Current(ctx context.Context) (T, error) {
	if doc, ok := c.fresh(); ok {
		return doc, nil
	}

	// Concurrent callers share one in-flight refresh.
	if _, err, _ := c.group.Do(c.cfg.Name, func() (any, error) {
		return nil, c.refresh(ctx)
	}); err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Copy(c.doc), nil
}

// Strategy returns the configured strategy.
func (c *Cache[T]) Strategy() Strategy {
	return c.cfg.Strategy
}

// LastChecked returns when the remote source was last consulted. It is zero
// before the first fetch and always zero for the static strategy.
func (c *Cache[T]) LastChecked() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastChecked
}

// Checksum returns the checksum of the held document, or "" when empty.
func (c *Cache[T]) Checksum() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checksum
}

// Stats returns the cache counters.
func (c *Cache[T]) Stats() Stats {
	return Stats{
		Hits:         c.hits.Load(),
		Refreshes:    c.refreshes.Load(),
		Replacements: c.replacements.Load(),
		Fallbacks:    c.fallbacks.Load(),
	}
}

// fresh returns a copy of the held document when no fetch is needed.
func (c *Cache[T]) fresh() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.usable() {
		var zero T
		return zero, false
	}
	c.hits.Add(1)
	if c.cfg.Observer != nil {
		c.cfg.Observer.ObserveHit(c.cfg.Name)
	}
	c.logger.Debug().Msg("serving cached document")
	return c.cfg.Copy(c.doc), true
}

// usable reports whether the held document can be served as is. c.mu must be held.
func (c *Cache[T]) usable() bool {
	if !c.loaded {
		return false
	}
	if c.cfg.Strategy == StrategyStatic {
		return true
	}
	return c.cfg.Clock().Sub(c.lastChecked) < c.cfg.TTL
}

func (c *Cache[T]) refresh(ctx context.Context) error {
	c.mu.Lock()
	done := c.usable()
	c.mu.Unlock()
	if done {
		// A refresh that finished while this caller waited already did the work.
		return nil
	}

	if c.cfg.Strategy == StrategyStatic {
		doc, err := c.cfg.Snapshot()
		if err != nil {
			return err
		}
		sum := c.sum(doc)
		c.mu.Lock()
		c.doc, c.checksum, c.loaded = doc, sum, true
		c.mu.Unlock()
		c.logger.Debug().Str("checksum", sum).Msg("loaded bundled snapshot")
		return nil
	}

	c.refreshes.Add(1)
	out, err := remote.Resolve(ctx, c.logger, c.cfg.Fetch, c.cfg.Snapshot)
	if err != nil {
		return err
	}
	if out.Origin == remote.FellBackToSnapshot {
		c.fallbacks.Add(1)
	}
	if c.cfg.Observer != nil {
		c.cfg.Observer.ObserveFetch(c.cfg.Name, out.Origin.String())
	}
	sum := c.sum(out.Document)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.cfg.Clock()
	switch {
	case !c.loaded:
		c.doc, c.checksum, c.loaded = out.Document, sum, true
		c.logger.Debug().Str("origin", out.Origin.String()).Str("checksum", sum).Msg("document cached")
	case sum == "" || sum != c.checksum:
		c.doc, c.checksum = out.Document, sum
		c.replacements.Add(1)
		if c.cfg.Observer != nil {
			c.cfg.Observer.ObserveReplace(c.cfg.Name)
		}
		c.logger.Debug().Str("origin", out.Origin.String()).Str("checksum", sum).Msg("document changed, replaced")
	default:
		c.logger.Debug().Str("checksum", sum).Msg("document unchanged")
	}
	c.lastChecked = now
	return nil
}

// sum returns "" when the checksum cannot be computed, which always counts as a change.
func (c *Cache[T]) sum(doc T) string {
	sum, err := c.cfg.Checksum(doc)
	if err != nil {
		c.logger.Warn().Err(err).Msg("checksum failed")
		return ""
	}
	return sum
}
