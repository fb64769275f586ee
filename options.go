package dappregistry

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/internal/cache"
	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/errors"
)

// Strategy selects where documents come from.
type Strategy = cache.Strategy

// Strategies.
const (
	StrategyGitHub = cache.StrategyGitHub
	StrategyStatic = cache.StrategyStatic
)

// Observer receives fetch and cache events. *metrics.Metrics implements it.
type Observer = cache.Observer

// CacheStats counts cache activity.
type CacheStats = cache.Stats

// Option configures a Registry or Stores instance.
type Option func(*options) error

type options struct {
	strategy    Strategy
	registryURL string
	storesURL   string
	httpClient  *http.Client
	token       string
	timeout     time.Duration
	retries     int
	ttl         time.Duration
	clock       func() time.Time
	logger      *zerolog.Logger
	observer    Observer
	snapshotFS  fs.FS
}

func defaults() *options {
	return &options{
		strategy:    StrategyGitHub,
		registryURL: constants.RegistryURL,
		storesURL:   constants.StoresURL,
		timeout:     constants.DefaultHTTPTimeout,
		retries:     constants.DefaultRetries,
		clock:       time.Now,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithStrategy sets the source strategy. The default is StrategyGitHub.
func WithStrategy(s Strategy) Option {
	return func(o *options) error {
		parsed, err := cache.ParseStrategy(string(s))
		if err != nil {
			return err
		}
		o.strategy = parsed
		return nil
	}
}

// WithRegistryURL overrides the remote registry location.
func WithRegistryURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return errors.NewValidationError("registryURL", url, "must not be empty")
		}
		o.registryURL = url
		return nil
	}
}

// WithStoresURL overrides the remote store list location.
func WithStoresURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return errors.NewValidationError("storesURL", url, "must not be empty")
		}
		o.storesURL = url
		return nil
	}
}

// WithHTTPClient sets the underlying HTTP client. Its timeout wins over WithTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) error {
		o.httpClient = c
		return nil
	}
}

// WithToken authenticates remote requests with a bearer token.
func WithToken(token string) Option {
	return func(o *options) error {
		o.token = token
		return nil
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.NewValidationError("timeout", d, "must be positive")
		}
		o.timeout = d
		return nil
	}
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.NewValidationError("retries", n, "must not be negative")
		}
		o.retries = n
		return nil
	}
}

// WithTTL sets how long a fetched document is served before it is checked
// again. The default is ten minutes.
func WithTTL(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.NewValidationError("ttl", d, "must be positive")
		}
		o.ttl = d
		return nil
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return errors.NewValidationError("clock", nil, "must not be nil")
		}
		o.clock = now
		return nil
	}
}

// WithLogger sets the logger. The default is the package-level logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithMetrics reports fetch and cache events to obs.
func WithMetrics(obs Observer) Option {
	return func(o *options) error {
		o.observer = obs
		return nil
	}
}

// WithSnapshot reads the fallback documents from fsys instead of the
// bundled files. fsys must use the same layout as the bundled files.
func WithSnapshot(fsys fs.FS) Option {
	return func(o *options) error {
		o.snapshotFS = fsys
		return nil
	}
}
