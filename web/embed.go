// Package web embeds the static catalog frontend.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// Assets returns the frontend files rooted at static/.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// static/ is embedded at build time; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
