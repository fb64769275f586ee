// Package app wires configuration, logging and the registry clients for the
// dappregistry CLI and hands them to commands through application.Application.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry"
	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/metrics"
	"github.com/agentstation/dappregistry/internal/server"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/errors"
)

// App holds the CLI's configuration and lazily created clients.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	metricsOnce sync.Once
	metrics     *metrics.Metrics

	mu       sync.Mutex
	registry *dappregistry.Registry
	stores   *dappregistry.Stores
}

var _ application.Application = (*App)(nil)

// New creates an App. Configuration is loaded from the environment and the
// default config file unless WithConfig is given.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.config == nil {
		config, err := LoadConfig("")
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		a.config = config
	}
	if a.logger == nil {
		logger := NewLogger(a.config)
		a.logger = &logger
	}
	return a, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Metrics returns the collectors shared by the clients and the server.
func (a *App) Metrics() *metrics.Metrics {
	a.metricsOnce.Do(func() { a.metrics = metrics.New() })
	return a.metrics
}

// Registry returns the registry client, creating it on first use.
func (a *App) Registry() (*dappregistry.Registry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.registry != nil {
		return a.registry, nil
	}
	reg, err := dappregistry.New(a.clientOptions(a.config.RegistryURL, dappregistry.WithRegistryURL)...)
	if err != nil {
		return nil, errors.WrapResource("create", "registry", "", err)
	}
	a.registry = reg
	return reg, nil
}

// Stores returns the store list client, creating it on first use.
func (a *App) Stores() (*dappregistry.Stores, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stores != nil {
		return a.stores, nil
	}
	stores, err := dappregistry.NewStores(a.clientOptions(a.config.StoresURL, dappregistry.WithStoresURL)...)
	if err != nil {
		return nil, errors.WrapResource("create", "stores", "", err)
	}
	a.stores = stores
	return stores, nil
}

// Validator returns a new schema validator.
func (a *App) Validator() (*validation.Validator, error) {
	return validation.New(a.logger)
}

// ServerConfig returns server defaults from the configuration.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	if a.config.Host != "" {
		cfg.Host = a.config.Host
	}
	if a.config.Port != 0 {
		cfg.Port = a.config.Port
	}
	if a.config.CacheTTL > 0 {
		cfg.CacheTTL = a.config.CacheTTL
	}
	if len(a.config.CORSOrigins) > 0 {
		cfg.CORSOrigins = a.config.CORSOrigins
	}
	return cfg
}

// Shutdown releases the registry's search index.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	reg := a.registry
	a.mu.Unlock()

	if reg != nil {
		return reg.Close()
	}
	return nil
}

// clientOptions builds facade options from the configuration. url is
// applied with withURL when set.
func (a *App) clientOptions(url string, withURL func(string) dappregistry.Option) []dappregistry.Option {
	opts := []dappregistry.Option{
		dappregistry.WithLogger(a.logger),
		dappregistry.WithMetrics(a.Metrics()),
		dappregistry.WithStrategy(dappregistry.Strategy(a.config.Strategy)),
		dappregistry.WithRetries(max(a.config.HTTPRetries, 0)),
	}
	if url != "" {
		opts = append(opts, withURL(url))
	}
	if a.config.Token != "" {
		opts = append(opts, dappregistry.WithToken(a.config.Token))
	}
	if a.config.HTTPTimeout > 0 {
		opts = append(opts, dappregistry.WithTimeout(a.config.HTTPTimeout))
	}
	if a.config.TTL > 0 {
		opts = append(opts, dappregistry.WithTTL(a.config.TTL))
	}
	return opts
}

// Option configures the App.
type Option func(*App) error

// WithConfig sets the configuration instead of loading it.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
