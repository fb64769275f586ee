package server

import (
	"net/http"

	"github.com/agentstation/dappregistry/internal/server/handlers"
	"github.com/agentstation/dappregistry/internal/server/middleware"
	"github.com/agentstation/dappregistry/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	h := handlers.New(s.registry, s.stores, s.cache, s.logger)

	s.registerRoutes(mux, h)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found", "No route for "+r.URL.Path)
	})

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s.handle(mux, "/health", "health", h.HandleHealth)
	s.handle(mux, prefix+"/health", "health", h.HandleHealth)
	s.handle(mux, prefix+"/ready", "ready", h.HandleReady)

	s.handle(mux, prefix+"/dapps", "dapps", h.HandleListDapps)
	s.handle(mux, prefix+"/dapps/search", "search", h.HandleSearch)
	s.handle(mux, prefix+"/dapps/id", "search_id", h.HandleSearchByID)
	s.handle(mux, prefix+"/featured", "featured", h.HandleFeatured)
	s.handle(mux, prefix+"/categories", "categories", h.HandleCategories)
	s.handle(mux, prefix+"/title", "title", h.HandleTitle)

	s.handle(mux, prefix+"/stores", "stores", h.HandleListStores)
	s.handle(mux, prefix+"/stores/{key}", "store", h.HandleGetStore)
	s.handle(mux, prefix+"/stores/{key}/featured", "store_featured", h.HandleStoreFeatured)

	s.handle(mux, prefix+"/openapi.json", "openapi", h.HandleOpenAPIJSON)
	s.handle(mux, prefix+"/openapi.yaml", "openapi", h.HandleOpenAPIYAML)

	if s.config.MetricsEnabled && s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// handle registers a read-only route. Other methods get a 405 in the API's
// response format.
func (s *Server) handle(mux *http.ServeMux, path, route string, fn http.HandlerFunc) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		fn(w, r)
	})
	if s.metrics != nil {
		handler = middleware.Metrics(s.metrics, route)(handler)
	}
	mux.Handle(path, handler)
}

// applyMiddleware wraps handler with the middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logger(s.logger),
	}
	if s.config.CORSEnabled {
		cfg := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			cfg.AllowAll = false
			cfg.AllowedOrigins = s.config.CORSOrigins
		}
		chain = append(chain, middleware.CORS(cfg))
	}
	return middleware.Chain(chain...)(handler)
}
