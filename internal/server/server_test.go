package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dappregistry"
	"github.com/agentstation/dappregistry/internal/metrics"
	"github.com/agentstation/dappregistry/internal/server"
	"github.com/agentstation/dappregistry/pkg/logging"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type page struct {
	Dapps []struct {
		DappID string `json:"dappId"`
	} `json:"dapps"`
	Total int `json:"total"`
	Count int `json:"count"`
}

func newTestServer(t *testing.T) (*httptest.Server, *metrics.Metrics) {
	t.Helper()
	logger := logging.NewNopLogger()
	m := metrics.New()
	opts := []dappregistry.Option{
		dappregistry.WithStrategy(dappregistry.StrategyStatic),
		dappregistry.WithLogger(logger),
		dappregistry.WithMetrics(m),
	}

	reg, err := dappregistry.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })
	stores, err := dappregistry.NewStores(opts...)
	require.NoError(t, err)

	srv := server.New(reg, stores, m, server.DefaultConfig(), logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, m
}

func get(t *testing.T, ts *httptest.Server, path string) (int, envelope) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func ids(t *testing.T, raw json.RawMessage) (page, []string) {
	t.Helper()
	var p page
	require.NoError(t, json.Unmarshal(raw, &p))
	out := make([]string, len(p.Dapps))
	for i, d := range p.Dapps {
		out[i] = d.DappID
	}
	return p, out
}

func TestDappsEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	t.Run("listed by default", func(t *testing.T) {
		code, env := get(t, ts, "/api/v1/dapps")
		require.Equal(t, http.StatusOK, code)
		p, got := ids(t, env.Data)
		assert.Equal(t, 7, p.Total)
		assert.NotContains(t, got, "me.zkga")
	})

	t.Run("listed any", func(t *testing.T) {
		_, env := get(t, ts, "/api/v1/dapps?listed=any")
		p, _ := ids(t, env.Data)
		assert.Equal(t, 8, p.Total)
	})

	t.Run("filters", func(t *testing.T) {
		_, env := get(t, ts, "/api/v1/dapps?chainId=137&category=defi")
		_, got := ids(t, env.Data)
		assert.ElementsMatch(t, []string{"org.uniswap.app", "com.aave.app"}, got)
	})

	t.Run("pagination", func(t *testing.T) {
		_, env := get(t, ts, "/api/v1/dapps?limit=2&offset=1")
		p, got := ids(t, env.Data)
		assert.Equal(t, 7, p.Total)
		assert.Equal(t, 2, p.Count)
		assert.Len(t, got, 2)
	})

	t.Run("bad filter", func(t *testing.T) {
		code, env := get(t, ts, "/api/v1/dapps?chainId=mainnet")
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	})

	t.Run("search", func(t *testing.T) {
		code, env := get(t, ts, "/api/v1/dapps/search?q=uni")
		require.Equal(t, http.StatusOK, code)
		_, got := ids(t, env.Data)
		assert.Contains(t, got, "org.uniswap.app")
	})

	t.Run("search requires text", func(t *testing.T) {
		code, _ := get(t, ts, "/api/v1/dapps/search")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("search by id", func(t *testing.T) {
		code, env := get(t, ts, "/api/v1/dapps/id?q=curve")
		require.Equal(t, http.StatusOK, code)
		var hits []struct {
			DappID string `json:"dappId"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &hits))
		require.Len(t, hits, 1)
		assert.Equal(t, "fi.curve", hits[0].DappID)
	})
}

func TestRegistryEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	_, env := get(t, ts, "/api/v1/title")
	assert.JSONEq(t, `{"title":"Meroku dApp Registry"}`, string(env.Data))

	_, env = get(t, ts, "/api/v1/featured")
	var sections []struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sections))
	require.Len(t, sections, 2)
	assert.Equal(t, "top-defi", sections[0].Key)

	code, env := get(t, ts, "/api/v1/categories")
	assert.Equal(t, http.StatusOK, code)
	assert.NotEqual(t, "null", string(env.Data))
}

func TestStoreEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	code, env := get(t, ts, "/api/v1/stores")
	require.Equal(t, http.StatusOK, code)
	var stores []struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stores))
	assert.Len(t, stores, 2)

	code, env = get(t, ts, "/api/v1/stores/meroku")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"key":"meroku"`)

	code, env = get(t, ts, "/api/v1/stores/polygon/featured")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))

	code, env = get(t, ts, "/api/v1/stores/nowhere/featured")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, _ = get(t, ts, "/api/v1/stores/nowhere")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthAndReady(t *testing.T) {
	ts, _ := newTestServer(t)

	code, env := get(t, ts, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "healthy")

	code, env = get(t, ts, "/api/v1/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"strategy":"static"`)
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/dapps", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	ts, _ := newTestServer(t)
	code, env := get(t, ts, "/api/v2/anything")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	get(t, ts, "/api/v1/dapps")
	get(t, ts, "/api/v1/dapps/search?q=aave")

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `route="dapps"`)
	assert.Contains(t, string(body), "dappregistry_search_duration_seconds")
}

func TestRequestIDHeader(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "trace-1", resp.Header.Get("X-Request-ID"))
}

func TestOpenAPI(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(t, doc, "paths")
}
