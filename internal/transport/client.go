// Package transport is the HTTP layer used to reach the published registry
// documents. Requests are retried with exponential backoff on transport
// errors and 5xx responses.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// Config configures a Client. Timeout is ignored when HTTPClient is set.
type Config struct {
	Timeout      time.Duration
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Token        string
	UserAgent    string
	HTTPClient   *http.Client
	Logger       *zerolog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:      constants.DefaultHTTPTimeout,
		Retries:      constants.DefaultRetries,
		RetryWaitMin: constants.RetryWaitMin,
		RetryWaitMax: constants.RetryWaitMax,
		UserAgent:    "dappregistry",
	}
}

// Client performs retried HTTP requests with authentication applied.
type Client struct {
	http      *retryablehttp.Client
	auth      Authenticator
	token     string
	userAgent string
}

// New creates a client from cfg. Zero values fall back to DefaultConfig.
func New(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = def.RetryWaitMin
	}
	if cfg.RetryWaitMax <= 0 {
		cfg.RetryWaitMax = def.RetryWaitMax
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	rc := retryablehttp.NewClient()
	if cfg.HTTPClient != nil {
		rc.HTTPClient = cfg.HTTPClient
	} else {
		rc.HTTPClient.Timeout = cfg.Timeout
	}
	rc.RetryMax = cfg.Retries
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.Logger = NewLeveledLogger(logging.Named(cfg.Logger, "transport"))
	// Hand the final response back so callers see the real status code.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		http:      rc,
		auth:      AuthFor(cfg.Token),
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
	}
}

// Get performs a GET request against url.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	c.auth.Apply(req.Request, c.token)

	return c.http.Do(req)
}
