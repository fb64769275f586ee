package handlers

import (
	"net/http"

	"github.com/agentstation/dappregistry/internal/server/response"
)

// HandleListStores handles GET /api/v1/stores.
// @Summary List dApp stores
// @Tags stores
// @Produce json
// @Success 200 {object} response.Response{data=[]catalogs.Store}
// @Router /api/v1/stores [get].
func (h *Handlers) HandleListStores(w http.ResponseWriter, r *http.Request) {
	doc, err := h.stores.Stores(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, doc.DappStores)
}

// HandleGetStore handles GET /api/v1/stores/{key}.
// @Summary Get a dApp store
// @Tags stores
// @Produce json
// @Param key path string true "Store key"
// @Success 200 {object} response.Response{data=catalogs.Store}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/stores/{key} [get].
func (h *Handlers) HandleGetStore(w http.ResponseWriter, r *http.Request) {
	st, err := h.stores.Store(r.Context(), r.PathValue("key"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, st)
}

// HandleStoreFeatured handles GET /api/v1/stores/{key}/featured.
// @Summary Featured sections of a dApp store
// @Tags stores
// @Produce json
// @Param key path string true "Store key"
// @Success 200 {object} response.Response{data=[]catalogs.FeaturedSection}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/stores/{key}/featured [get].
func (h *Handlers) HandleStoreFeatured(w http.ResponseWriter, r *http.Request) {
	sections, err := h.stores.FeaturedSections(r.Context(), r.PathValue("key"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, sections)
}
