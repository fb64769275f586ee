// Package handlers provides HTTP request handlers for the dappregistry API.
//
// Handlers are organized by resource:
//
//   - dapps.go: dApp listing, search and ID search, featured sections, categories, title
//   - stores.go: store listing, lookup and store featured sections
//   - health.go: liveness and readiness
//   - openapi.go: OpenAPI document endpoints
//
// List and search results are memoized in the response cache keyed by
// route and raw query.
package handlers

//go:generate gomarkdoc --output README.md .
