// Package application defines what dappregistry commands need from the
// application layer.
//
// Commands accept the Application interface rather than the concrete App so
// they can be tested with Mock:
//
//	mock := &application.Mock{
//	    RegistryFunc: func() (*dappregistry.Registry, error) {
//	        return dappregistry.New(dappregistry.WithStrategy(dappregistry.StrategyStatic))
//	    },
//	}
//	cmd := list.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry"
	"github.com/agentstation/dappregistry/internal/metrics"
	"github.com/agentstation/dappregistry/internal/server"
	"github.com/agentstation/dappregistry/internal/validation"
)

// Application provides the dependencies commands use. All methods must be
// safe for concurrent use.
type Application interface {
	// Registry returns the shared registry client, creating it on first use.
	Registry() (*dappregistry.Registry, error)

	// Stores returns the shared store list client, creating it on first use.
	Stores() (*dappregistry.Stores, error)

	// Validator returns a schema validator for standalone documents.
	Validator() (*validation.Validator, error)

	// Metrics returns the collectors shared by the clients and the server.
	Metrics() *metrics.Metrics

	// ServerConfig returns the configured server defaults.
	ServerConfig() server.Config

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string
}
