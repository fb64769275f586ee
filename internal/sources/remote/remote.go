// Package remote fetches registry documents from their published location
// and validates them before they are trusted.
package remote

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/internal/transport"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// sourceName labels errors raised by this package.
const sourceName = "remote"

// Fetcher retrieves and validates remote documents.
type Fetcher struct {
	client    *transport.Client
	validator *validation.Validator
	logger    *zerolog.Logger
}

// NewFetcher creates a fetcher. A nil client gets the default transport configuration.
func NewFetcher(client *transport.Client, v *validation.Validator, logger *zerolog.Logger) *Fetcher {
	logger = logging.Named(logger, "remote")
	if client == nil {
		cfg := transport.DefaultConfig()
		cfg.Logger = logger
		client = transport.New(cfg)
	}
	return &Fetcher{client: client, validator: v, logger: logger}
}

// Raw fetches url and validates the body as a document of the given kind.
// Transport failures, statuses of 400 and above, malformed JSON and schema
// failures are all returned as errors.
func (f *Fetcher) Raw(ctx context.Context, url string, kind validation.Kind) ([]byte, error) {
	f.logger.Debug().Str("url", url).Str("kind", string(kind)).Msg("fetching remote document")

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, &errors.APIError{
			Source:   sourceName,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}

	body, err := transport.ReadBody(resp, sourceName)
	if err != nil {
		return nil, err
	}
	f.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("remote document fetched")

	res, err := f.validator.Validate(kind, body)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, res.Err()
	}
	return body, nil
}

// Fetch fetches, validates and decodes a document into T.
func Fetch[T any](ctx context.Context, f *Fetcher, url string, kind validation.Kind) (*T, error) {
	body, err := f.Raw(ctx, url, kind)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.WrapParse("json", url, err)
	}
	return &doc, nil
}

// Registry fetches the registry document at url.
func (f *Fetcher) Registry(ctx context.Context, url string) (*catalogs.Registry, error) {
	return Fetch[catalogs.Registry](ctx, f, url, validation.KindRegistry)
}

// Stores fetches the store list at url.
func (f *Fetcher) Stores(ctx context.Context, url string) (*catalogs.StoresDocument, error) {
	return Fetch[catalogs.StoresDocument](ctx, f, url, validation.KindStores)
}
