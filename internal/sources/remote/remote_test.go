package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dappregistry/internal/sources/remote"
	"github.com/agentstation/dappregistry/internal/transport"
	"github.com/agentstation/dappregistry/internal/validation"
	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

func newFetcher(t *testing.T) *remote.Fetcher {
	t.Helper()
	v, err := validation.New(logging.NewNopLogger())
	require.NoError(t, err)
	client := transport.New(transport.Config{
		Retries:      0,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: time.Millisecond,
		Logger:       logging.NewNopLogger(),
	})
	return remote.NewFetcher(client, v, logging.NewNopLogger())
}

func serve(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func registryJSON(t *testing.T, dapps ...catalogs.Dapp) []byte {
	t.Helper()
	data, err := json.Marshal(catalogs.NewTestRegistry("Remote", dapps...))
	require.NoError(t, err)
	return data
}

func TestFetcherRegistry(t *testing.T) {
	f := newFetcher(t)
	ctx := context.Background()

	t.Run("valid document", func(t *testing.T) {
		srv := serve(t, http.StatusOK, registryJSON(t, catalogs.NewTestDapp("a")))
		reg, err := f.Registry(ctx, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "Remote", reg.Title)
		assert.Equal(t, []string{"a"}, reg.DappIDs())
	})

	t.Run("status 400 is a failure", func(t *testing.T) {
		srv := serve(t, http.StatusBadRequest, registryJSON(t, catalogs.NewTestDapp("a")))
		_, err := f.Registry(ctx, srv.URL)
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("status 500 is unavailable", func(t *testing.T) {
		srv := serve(t, http.StatusInternalServerError, nil)
		_, err := f.Registry(ctx, srv.URL)
		assert.True(t, errors.IsProviderUnavailable(err))
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := serve(t, http.StatusOK, []byte(`{"title":`))
		_, err := f.Registry(ctx, srv.URL)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("schema failure", func(t *testing.T) {
		srv := serve(t, http.StatusOK, []byte(`{"title":"x","dapps":[{"dappId":"a"}]}`))
		_, err := f.Registry(ctx, srv.URL)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("duplicate identifiers", func(t *testing.T) {
		srv := serve(t, http.StatusOK, registryJSON(t, catalogs.NewTestDapp("x1"), catalogs.NewTestDapp("x1")))
		_, err := f.Registry(ctx, srv.URL)
		var dup *errors.DuplicateIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, []string{"x1"}, dup.IDs)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := serve(t, http.StatusOK, nil)
		srv.Close()
		_, err := f.Registry(ctx, srv.URL)
		assert.True(t, errors.IsProviderUnavailable(err))
	})
}

func TestFetcherStores(t *testing.T) {
	f := newFetcher(t)
	srv := serve(t, http.StatusOK, []byte(`{"dappStores":[{"name":"A","key":"a"}]}`))

	doc, err := f.Stores(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, doc.Keys())
}

func TestResolve(t *testing.T) {
	logger := logging.NewTestLogger(t)
	ctx := context.Background()
	snapshot := func() (string, error) { return "snapshot", nil }

	out, err := remote.Resolve(ctx, logger.Logger, func(context.Context) (string, error) { return "remote", nil }, snapshot)
	require.NoError(t, err)
	assert.Equal(t, "remote", out.Document)
	assert.Equal(t, remote.FetchedRemote, out.Origin)
	assert.NoError(t, out.Reason)

	cause := errors.NewAPIError("remote", 500, "boom")
	out, err = remote.Resolve(ctx, logger.Logger, func(context.Context) (string, error) { return "", cause }, snapshot)
	require.NoError(t, err)
	assert.Equal(t, "snapshot", out.Document)
	assert.Equal(t, remote.FellBackToSnapshot, out.Origin)
	assert.Equal(t, "snapshot", out.Origin.String())
	assert.ErrorIs(t, out.Reason, cause)
	assert.True(t, logger.Contains("falling back"))

	fatal := errors.NewConfigError("snapshot", "invalid", nil)
	_, err = remote.Resolve(ctx, logger.Logger, func(context.Context) (string, error) { return "", cause }, func() (string, error) { return "", fatal })
	assert.True(t, errors.IsConfigError(err))
}
