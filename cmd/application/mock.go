package application

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry"
	"github.com/agentstation/dappregistry/internal/metrics"
	"github.com/agentstation/dappregistry/internal/server"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// Mock implements Application for tests. Unset function fields fall back to
// clients backed by the bundled snapshot.
type Mock struct {
	RegistryFunc     func() (*dappregistry.Registry, error)
	StoresFunc       func() (*dappregistry.Stores, error)
	ValidatorFunc    func() (*validation.Validator, error)
	LoggerFunc       func() *zerolog.Logger
	ServerConfigFunc func() server.Config
	Format           string

	once    sync.Once
	metrics *metrics.Metrics
}

var _ Application = (*Mock)(nil)

// Registry implements Application.
func (m *Mock) Registry() (*dappregistry.Registry, error) {
	if m.RegistryFunc != nil {
		return m.RegistryFunc()
	}
	return dappregistry.New(m.staticOptions()...)
}

// Stores implements Application.
func (m *Mock) Stores() (*dappregistry.Stores, error) {
	if m.StoresFunc != nil {
		return m.StoresFunc()
	}
	return dappregistry.NewStores(m.staticOptions()...)
}

// Validator implements Application.
func (m *Mock) Validator() (*validation.Validator, error) {
	if m.ValidatorFunc != nil {
		return m.ValidatorFunc()
	}
	return validation.New(m.Logger())
}

// Metrics implements Application.
func (m *Mock) Metrics() *metrics.Metrics {
	m.once.Do(func() { m.metrics = metrics.New() })
	return m.metrics
}

// ServerConfig implements Application.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger implements Application.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat implements Application.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Version implements Application.
func (m *Mock) Version() string {
	return "test"
}

func (m *Mock) staticOptions() []dappregistry.Option {
	return []dappregistry.Option{
		dappregistry.WithStrategy(dappregistry.StrategyStatic),
		dappregistry.WithLogger(m.Logger()),
		dappregistry.WithMetrics(m.Metrics()),
	}
}
