// Package embedded bundles the static registry snapshot, the store list, the
// category taxonomy and the JSON schemas used to validate them.
package embedded

import (
	"embed"
)

// FS holds the snapshot documents under catalog/ and the schemas under schemas/.
//
//go:embed catalog/* schemas/*
var FS embed.FS

// Paths of the bundled documents inside FS.
const (
	RegistryPath = "catalog/registry.json"
	StoresPath   = "catalog/dappStore.json"
	TaxonomyPath = "catalog/dappCategory.json"

	RegistrySchemaPath = "schemas/registry.schema.json"
	DappSchemaPath     = "schemas/dapp.schema.json"
	FeaturedSchemaPath = "schemas/featured.schema.json"
	StoresSchemaPath   = "schemas/stores.schema.json"
)

// SchemaBaseURL is the base the schema $id and $ref values resolve against.
const SchemaBaseURL = "https://schemas.dappregistry.dev/"

// Read returns the bundled file at path.
func Read(path string) ([]byte, error) {
	return FS.ReadFile(path)
}
