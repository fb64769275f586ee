// Package openapi embeds the OpenAPI description of the dappregistry HTTP API.
package openapi

import (
	_ "embed"
	"sync"

	"github.com/goccy/go-yaml"
)

// SpecYAML is the OpenAPI document as written.
// Served at: GET /api/v1/openapi.yaml
//
//go:embed openapi.yaml
var SpecYAML []byte

// SpecJSON returns the OpenAPI document converted to JSON.
// Served at: GET /api/v1/openapi.json
var SpecJSON = sync.OnceValues(func() ([]byte, error) {
	return yaml.YAMLToJSON(SpecYAML)
})
