package handlers

import (
	"net/http"
	"strings"

	"github.com/agentstation/dappregistry/internal/server/cache"
	"github.com/agentstation/dappregistry/internal/server/filter"
	"github.com/agentstation/dappregistry/internal/server/response"
)

// HandleListDapps handles GET /api/v1/dapps.
// @Summary List dApps
// @Description List dApps matching the filter parameters, listed dApps only by default
// @Tags dapps
// @Produce json
// @Param chainId query integer false "Supported chain"
// @Param platform query string false "Platforms (comma-separated)"
// @Param category query string false "Category"
// @Param listed query string false "true, false or any"
// @Param limit query integer false "Page size (default: 100, max: 1000)"
// @Param offset query integer false "Page offset"
// @Success 200 {object} response.Response{data=filter.Page}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/dapps [get].
func (h *Handlers) HandleListDapps(w http.ResponseWriter, r *http.Request) {
	q, err := filter.ParseQuery(r.URL.Query())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	page, err := h.cache.Remember(cache.Key("dapps", r.URL.RawQuery), func() (any, error) {
		dapps, err := h.registry.Dapps(r.Context(), q.Options)
		if err != nil {
			return nil, err
		}
		return q.Paginate(dapps), nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, page)
}

// HandleSearch handles GET /api/v1/dapps/search.
// @Summary Search dApps
// @Description Prefix search over name, description, tags and ID, narrowed by the filter parameters
// @Tags dapps
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} response.Response{data=filter.Page}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/dapps/search [get].
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	text, ok := searchText(w, r)
	if !ok {
		return
	}
	q, err := filter.ParseQuery(r.URL.Query())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	page, err := h.cache.Remember(cache.Key("search", r.URL.RawQuery), func() (any, error) {
		hits, err := h.registry.Search(r.Context(), text, q.Options)
		if err != nil {
			return nil, err
		}
		return q.Paginate(hits), nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, page)
}

// HandleSearchByID handles GET /api/v1/dapps/id.
// @Summary Search dApp IDs
// @Description Returns dApps whose ID matches every term of q
// @Tags dapps
// @Produce json
// @Param q query string true "ID terms"
// @Success 200 {object} response.Response{data=[]catalogs.Dapp}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/dapps/id [get].
func (h *Handlers) HandleSearchByID(w http.ResponseWriter, r *http.Request) {
	text, ok := searchText(w, r)
	if !ok {
		return
	}

	hits, err := h.cache.Remember(cache.Key("id", r.URL.RawQuery), func() (any, error) {
		return h.registry.SearchByID(r.Context(), text)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, hits)
}

// HandleFeatured handles GET /api/v1/featured.
// @Summary Registry featured sections
// @Tags registry
// @Produce json
// @Success 200 {object} response.Response{data=[]catalogs.FeaturedSection}
// @Router /api/v1/featured [get].
func (h *Handlers) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	sections, err := h.registry.FeaturedSections(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, sections)
}

// HandleCategories handles GET /api/v1/categories.
// @Summary Category taxonomy
// @Tags registry
// @Produce json
// @Success 200 {object} response.Response{data=catalogs.Taxonomy}
// @Router /api/v1/categories [get].
func (h *Handlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	tax, err := h.registry.Categories()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, tax)
}

// HandleTitle handles GET /api/v1/title.
// @Summary Registry title
// @Tags registry
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/title [get].
func (h *Handlers) HandleTitle(w http.ResponseWriter, r *http.Request) {
	title, err := h.registry.Title(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, map[string]string{"title": title})
}

func searchText(w http.ResponseWriter, r *http.Request) (string, bool) {
	text := strings.TrimSpace(r.URL.Query().Get("q"))
	if text == "" {
		response.BadRequest(w, "missing search text", "Provide the q query parameter")
		return "", false
	}
	return text, true
}
