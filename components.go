package dappregistry

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/internal/sources/remote"
	"github.com/agentstation/dappregistry/internal/sources/snapshot"
	"github.com/agentstation/dappregistry/internal/transport"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// components are the collaborators both facades are built from.
type components struct {
	logger    *zerolog.Logger
	validator *validation.Validator
	snapshot  *snapshot.Source
	fetcher   *remote.Fetcher
}

func newComponents(o *options, name string) (*components, error) {
	logger := logging.Named(o.logger, name)

	v, err := validation.New(logger)
	if err != nil {
		return nil, err
	}

	snapOpts := []snapshot.Option{snapshot.WithLogger(logger)}
	if o.snapshotFS != nil {
		snapOpts = append(snapOpts, snapshot.WithFS(o.snapshotFS))
	}

	client := transport.New(transport.Config{
		Timeout:    o.timeout,
		Retries:    o.retries,
		Token:      o.token,
		HTTPClient: o.httpClient,
		Logger:     logger,
	})

	return &components{
		logger:    logger,
		validator: v,
		snapshot:  snapshot.New(v, snapOpts...),
		fetcher:   remote.NewFetcher(client, v, logger),
	}, nil
}

// searchObserver is implemented by observers that also time searches.
type searchObserver interface {
	ObserveSearch(kind string, start time.Time)
}
