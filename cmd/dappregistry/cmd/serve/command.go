// Package serve provides the command that runs the read-only HTTP API.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dappregistry/cmd/application"
	"github.com/agentstation/dappregistry/internal/server"
	"github.com/agentstation/dappregistry/pkg/constants"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Serve the registry and store list as a JSON API",
		Long: `Serve starts a read-only REST API over the registry and the dApp store
list. List and search responses are cached for --cache-ttl. Prometheus
metrics are served on /metrics and the OpenAPI document on
<prefix>/openapi.json.`,
		Example: `  dappregistry serve
  dappregistry serve --host 0.0.0.0 --port 3000
  dappregistry serve --cors-origins https://example.com --cache-ttl 5m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ParseConfig(cmd, app.ServerConfig())
			logger := app.Logger()

			reg, err := app.Registry()
			if err != nil {
				return err
			}
			stores, err := app.Stores()
			if err != nil {
				return err
			}

			m := app.Metrics()
			if !cfg.MetricsEnabled {
				m = nil
			}

			logger.Info().
				Str("addr", cfg.Addr()).
				Str("prefix", cfg.PathPrefix).
				Str("strategy", string(reg.Strategy())).
				Dur("cache_ttl", cfg.CacheTTL).
				Bool("metrics", cfg.MetricsEnabled).
				Msg("Starting API server")

			srv := server.New(reg, stores, m, cfg, logger)
			return srv.ListenAndServe(cmd.Context(), constants.ShutdownTimeout)
		},
	}

	flags := cmd.Flags()
	flags.String("host", "", "bind address (default localhost)")
	flags.Int("port", 0, "server port (default 8080)")
	flags.String("prefix", "", "API path prefix (default /api/v1)")
	flags.Duration("cache-ttl", 0, "lifetime of cached list and search responses (default 1m)")
	flags.StringSlice("cors-origins", nil, "allowed CORS origins (default all)")
	flags.Bool("no-cors", false, "disable CORS headers")
	flags.Bool("metrics", true, "serve Prometheus metrics on /metrics")
	flags.Duration("read-timeout", 0, "HTTP read timeout")
	flags.Duration("write-timeout", 0, "HTTP write timeout")
	flags.Duration("idle-timeout", 0, "HTTP idle timeout")
	return cmd
}

// ParseConfig overlays the flags that were set onto base.
func ParseConfig(cmd *cobra.Command, base server.Config) server.Config {
	flags := cmd.Flags()
	cfg := base

	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("prefix") {
		cfg.PathPrefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("cache-ttl") {
		cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	}
	if noCORS, _ := flags.GetBool("no-cors"); noCORS {
		cfg.CORSEnabled = false
	}
	if flags.Changed("metrics") {
		cfg.MetricsEnabled, _ = flags.GetBool("metrics")
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")
	}
	return cfg
}
