// Package configs holds the built-in value-set catalog and a sample
// application config.
package configs

import _ "embed"

//go:embed catalog.json
var Catalog []byte

const CatalogName = "catalog.json"
