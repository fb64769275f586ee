// Package constants provides shared constants used throughout the dappregistry codebase.
// This includes source URLs, cache lifetimes, timeouts, and file permissions
// that should be consistent across the library, the CLI and the API server.
package constants

import "time"

// Source constants define where the published documents live
const (
	// GitHubOwner is the GitHub organization publishing the registry
	GitHubOwner = "merokudao"

	// GitHubRepo is the repository holding registry.json and dappStore.json
	GitHubRepo = "dapp-store-registry"

	// RegistryURL is the raw URL of the published dApp registry
	RegistryURL = "https://raw.githubusercontent.com/" + GitHubOwner + "/" + GitHubRepo + "/main/src/registry.json"

	// StoresURL is the raw URL of the published dApp store list
	StoresURL = "https://raw.githubusercontent.com/" + GitHubOwner + "/" + GitHubRepo + "/main/src/dappStore.json"
)

// Cache constants
const (
	// RegistryTTL is how long a cached registry is served before it is re-checked against the remote
	RegistryTTL = 10 * time.Minute

	// StoresTTL is how long the cached store list is served before it is re-checked
	StoresTTL = 10 * time.Minute

	// ResponseCacheTTL is the default lifetime of cached API responses
	ResponseCacheTTL = 1 * time.Minute
)

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for fetching remote documents
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetries is the number of retries for a failed remote fetch
	DefaultRetries = 2

	// RetryWaitMin is the minimum backoff between retries
	RetryWaitMin = 500 * time.Millisecond

	// RetryWaitMax is the maximum backoff between retries
	RetryWaitMax = 5 * time.Second

	// ShutdownTimeout bounds graceful shutdown of the API server
	ShutdownTimeout = 5 * time.Second
)

// Size limits
const (
	// MaxResponseBytes bounds how much of a remote response body is read
	MaxResponseBytes = 10 << 20
)

// File permission constants
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Status codes reported by diagnostic operations
const (
	// StatusOK reports a diagnostic run that found no problems
	StatusOK = 200

	// StatusFailed reports a diagnostic run that found at least one problem
	StatusFailed = 400
)

// Date formats accepted for listing and expiry dates
const (
	// DateFormat is the ISO calendar date format used by the registry
	DateFormat = "2006-01-02"
)
