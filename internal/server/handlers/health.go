package handlers

import (
	"net/http"

	"github.com/agentstation/dappregistry/internal/server/response"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// HandleHealth handles GET /health.
// @Summary Health check
// @Description Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "dappregistry-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready.
// @Summary Readiness check
// @Description Loads the registry and store list and reports cache state
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Init(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("registry not ready")
		response.ServiceUnavailable(w, "Registry not available")
		return
	}
	if err := h.stores.Init(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("store list not ready")
		response.ServiceUnavailable(w, "Store list not available")
		return
	}

	response.OK(w, map[string]any{
		"status":   "ready",
		"strategy": h.registry.Strategy(),
		"registry": map[string]any{
			"lastChecked": h.registry.LastChecked(),
			"stats":       h.registry.Stats(),
		},
		"stores": map[string]any{
			"lastChecked": h.stores.LastChecked(),
			"stats":       h.stores.Stats(),
		},
		"responseCache": map[string]any{
			"items": h.cache.ItemCount(),
		},
	})
}

// fail logs err through the request logger and writes the matching response.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Debug().Err(err).Msg("request failed")
	response.ErrorFromType(w, err)
}
