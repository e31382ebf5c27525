package frontend

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// GetAssetFS returns the static landing page files rooted at the static folder.
func GetAssetFS() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
