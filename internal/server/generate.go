// Package server provides the HTTP server for the dappregistry API.
//
// The layering is CLI → Server → Router → Handlers → facade:
//
//   - Server: lifecycle and the response cache
//   - Config: listen address, CORS, timeouts and cache TTL
//   - Router: route registration and the middleware chain
//   - Handlers: request handlers grouped by resource
//
// Usage:
//
//	reg, _ := dappregistry.New()
//	stores, _ := dappregistry.NewStores()
//	srv := server.New(reg, stores, metrics.New(), server.DefaultConfig(), logger)
//	err := srv.ListenAndServe(ctx, 10*time.Second)
package server

//go:generate gomarkdoc --output README.md .
