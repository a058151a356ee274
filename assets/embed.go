package assets

import "embed"

//go:embed catalog.json
var FS embed.FS

// CatalogJSON returns the embedded default game catalog.
func CatalogJSON() ([]byte, error) {
	return FS.ReadFile("catalog.json")
}
