//go:build integration

// Package integration exercises the clients against the published documents
// on GitHub. Run with: go test -tags integration ./test/integration/...
package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dappregistry"
	"github.com/agentstation/dappregistry/internal/transport"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/constants"
	"github.com/agentstation/dappregistry/pkg/logging"
)

func options() []dappregistry.Option {
	opts := []dappregistry.Option{dappregistry.WithLogger(logging.NewNopLogger())}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		opts = append(opts, dappregistry.WithToken(token))
	}
	return opts
}

func TestPublishedRegistryIsServed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reg, err := dappregistry.New(options()...)
	require.NoError(t, err)
	defer reg.Close()

	require.NoError(t, reg.Init(ctx))

	dapps, err := reg.Dapps(ctx, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, dapps)
	assert.False(t, reg.LastChecked().IsZero())

	stats := reg.Stats()
	if stats.Fallbacks > 0 {
		t.Logf("published registry was rejected; served the bundled snapshot")
	}
}

func TestPublishedStoresAreServed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stores, err := dappregistry.NewStores(options()...)
	require.NoError(t, err)
	require.NoError(t, stores.Init(ctx))

	doc, err := stores.Stores(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.DappStores)
}

func TestPublishedRegistryValidates(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := transport.DefaultConfig()
	cfg.Logger = logging.NewNopLogger()
	cfg.Token = os.Getenv("GITHUB_TOKEN")
	resp, err := transport.New(cfg).Get(ctx, constants.RegistryURL)
	require.NoError(t, err)
	raw, err := transport.ReadBody(resp, "registry")
	require.NoError(t, err)

	v, err := validation.New(logging.NewNopLogger())
	require.NoError(t, err)
	result, err := v.ValidateRegistry(raw)
	require.NoError(t, err)
	if !result.Valid {
		t.Logf("published registry does not validate: %v", result.Err())
	}
}
