package dappregistry_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dappregistry"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

func remoteStores() *catalogs.StoresDocument {
	return &catalogs.StoresDocument{DappStores: []catalogs.Store{
		{
			Name: "Alpha",
			Key:  "alpha",
			URL:  "https://alpha.example.org",
			FeaturedSections: []catalogs.FeaturedSection{
				{Title: "New", Key: "new", DappIDs: []string{"org.uniswap.app"}},
			},
		},
		{Name: "Beta", Key: "beta"},
	}}
}

func newStores(t *testing.T, opts ...dappregistry.Option) *dappregistry.Stores {
	t.Helper()
	base := []dappregistry.Option{
		dappregistry.WithLogger(logging.NewNopLogger()),
		dappregistry.WithRetries(0),
	}
	s, err := dappregistry.NewStores(append(base, opts...)...)
	require.NoError(t, err)
	return s
}

func TestStoresRemote(t *testing.T) {
	rs := newRemote(t, remoteStores())
	s := newStores(t, dappregistry.WithStoresURL(rs.URL))
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.Init(ctx))

	doc, err := s.Stores(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, doc.Keys())

	st, err := s.Store(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", st.Name)

	sections, err := s.FeaturedSections(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "new", sections[0].Key)

	sections, err = s.FeaturedSections(ctx, "beta")
	require.NoError(t, err)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)

	_, err = s.FeaturedSections(ctx, "gamma")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = s.Store(ctx, "gamma")
	var nf *errors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "gamma", nf.ID)

	assert.Equal(t, int32(1), rs.hits.Load())
}

func TestStoresFallback(t *testing.T) {
	rs := newRemote(t, remoteStores())
	rs.fail(http.StatusNotFound)

	s := newStores(t, dappregistry.WithStoresURL(rs.URL))
	ctx := context.Background()

	st, err := s.Store(ctx, "meroku")
	require.NoError(t, err)
	assert.Equal(t, "Meroku", st.Name)
	assert.Equal(t, uint64(1), s.Stats().Fallbacks)
}

func TestStoresStatic(t *testing.T) {
	s := newStores(t, dappregistry.WithStrategy(dappregistry.StrategyStatic))
	ctx := context.Background()

	assert.Equal(t, dappregistry.StrategyStatic, s.Strategy())
	sections, err := s.FeaturedSections(ctx, "meroku")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "editors-picks", sections[0].Key)

	sections, err = s.FeaturedSections(ctx, "polygon")
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestStoresReturnsCopies(t *testing.T) {
	s := newStores(t, dappregistry.WithStrategy(dappregistry.StrategyStatic))
	ctx := context.Background()

	sections, err := s.FeaturedSections(ctx, "meroku")
	require.NoError(t, err)
	sections[0].DappIDs[0] = "mutated"

	again, err := s.FeaturedSections(ctx, "meroku")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].DappIDs[0])
}
