package public

import (
	"embed"
	"io/fs"
)

//go:embed assets/*
var assets embed.FS

// AssetsFS is the embedded asset tree rooted at assets/.
func AssetsFS() (fs.FS, error) {
	return fs.Sub(assets, "assets")
}
